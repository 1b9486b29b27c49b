package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/step"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/viz"
)

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(fs, cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tSEED\tSTATUS\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Seed,
			run.Status,
			run.Steps,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	log, err := st.LoadLog(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("status: %s\n", meta.Status)
	fmt.Printf("steps: %d\n\n", meta.Steps)
	fmt.Println(log)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	if jsonOut {
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}

	log, err := st.LoadLog(args[0])
	if err != nil {
		return err
	}
	if err := storage.WriteFileAtomic(fs, outPath, []byte(log)); err != nil {
		return err
	}
	fmt.Printf("log written to %s\n", outPath)

	if svgPath == "" {
		return nil
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	svg := export.BarsToSVG(meta.Initial, slices.Max(append([]int{1}, meta.Initial...)), 800, 300, string(viz.CurrentTheme.Bar))
	if svg == "" {
		return fmt.Errorf("no data to draw")
	}
	if err := storage.WriteFileAtomic(fs, svgPath, []byte(svg)); err != nil {
		return err
	}
	fmt.Printf("chart written to %s\n", svgPath)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if len(meta.Initial) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("size: %d\n\n", meta.Size)

	graph := asciigraph.PlotMany([][]float64{toFloats(meta.Initial), toFloats(meta.Final)},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption("initial (red) vs final (green)"),
	)
	fmt.Println(graph)
	fmt.Println()

	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}
	if swaps := cumulativeSwaps(steps); len(swaps) > 1 {
		fmt.Println(asciigraph.Plot(swaps,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("swaps over steps"),
		))

		if svgPath != "" {
			svg := export.SeriesToSVG(swaps, 800, 300, string(viz.CurrentTheme.Primary))
			if err := storage.WriteFileAtomic(fs, svgPath, []byte(svg)); err != nil {
				return err
			}
			fmt.Printf("chart written to %s\n", svgPath)
		}
	}
	return nil
}

func toFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func cumulativeSwaps(steps []step.Step) []float64 {
	out := make([]float64, 0, len(steps))
	n := 0.0
	for _, s := range steps {
		if s.Kind == step.KindSwap {
			n++
		}
		out = append(out, n)
	}
	return out
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tAVG\tWORST\tSPACE")
	for _, info := range algorithms.NewRegistry().List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.Key, info.Name, info.Avg, info.Worst, info.Space)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tALGORITHM\tSIZE\tSPEED\tSHAPE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		shape := p.Shape
		if shape == "" {
			shape = config.DefaultShape
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", name, p.Algorithm, p.Size, p.Speed, shape)
	}
	return w.Flush()
}
