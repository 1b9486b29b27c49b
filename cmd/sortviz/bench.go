package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/bench"
	"github.com/san-kum/sortviz/internal/cells"
)

func benchSorts(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	arrShape, err := cells.ParseShape(cfg.Shape)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = newSeed()
	}

	reg := algorithms.NewRegistry()
	names := args
	if len(names) == 0 {
		names = reg.Names()
	}

	ens := bench.NewEnsemble(reg, cfg.Size, arrShape, trials, cfg.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "size %d, shape %s, %d trials from seed %d\n\n", cfg.Size, arrShape, trials, cfg.Seed)
	fmt.Fprintln(w, "ALGORITHM\tCOMPARISONS\tMIN\tMAX\tSWAPS")
	for _, name := range names {
		sum, err := ens.Run(cmd.Context(), name)
		if err != nil {
			return err
		}
		logger.Debug("bench finished", "algorithm", name, "trials", len(sum.Trials))
		fmt.Fprintf(w, "%s\t%.1f\t%d\t%d\t%.1f\n",
			sum.Algorithm,
			sum.MeanComparisons,
			sum.MinComparisons,
			sum.MaxComparisons,
			sum.MeanSwaps,
		)
	}
	return w.Flush()
}
