package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/viz"
)

// newSeed picks a reproducible seed so saved runs can be regenerated.
func newSeed() int64 {
	return int64(uint32(time.Now().UnixNano()) | 1)
}

func prepare(cmd *cobra.Command) (*config.Config, cells.Shape, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	arrShape, err := cells.ParseShape(cfg.Shape)
	if err != nil {
		return nil, "", err
	}
	if cfg.Seed == 0 {
		cfg.Seed = newSeed()
	}
	if !headless {
		if err := requireTerminal(); err != nil {
			return nil, "", err
		}
	}
	return cfg, arrShape, nil
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, arrShape, err := prepare(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}

	logger, err := newLogger(cfg, !headless)
	if err != nil {
		return err
	}

	opts := []session.Option{session.WithSpeed(cfg.Speed), session.WithLogger(logger)}
	if headless {
		opts = append(opts, session.WithObserver(viz.NewPrinter(os.Stdout, noColor)))
	}
	sess := session.New(cells.NewBoard(cells.Generate(cfg.Size, cfg.Seed, arrShape)), opts...)
	if _, err := sess.Registry().Lookup(cfg.Algorithm); err != nil {
		return err
	}

	ctx := cmd.Context()
	var res session.Result
	if headless {
		if err := sess.Start(ctx, cfg.Algorithm); err != nil {
			return err
		}
		res = sess.Wait()
		printSummary(os.Stderr, []*session.Session{sess}, []session.Result{res})
	} else {
		viz.SetTheme(cfg.Theme)
		if err := viz.Run(ctx, sess, viz.Options{Algorithm: cfg.Algorithm, ExportPath: cfg.ExportFile, Speed: cfg.Speed, Fs: fs}); err != nil {
			return err
		}
		sess.Cancel()
		res = sess.Wait()
	}

	if exportPath == "-" {
		if _, err := sess.History().WriteTo(os.Stdout); err != nil {
			return err
		}
		fmt.Println()
	} else if exportPath != "" {
		path, err := sess.Export(fs, exportPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "log written to %s\n", path)
	}

	if save && res.Status != session.StatusIdle {
		id, err := saveRun(cfg, sess, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", id)
	}

	if res.Status == session.StatusFailed {
		return res.Err
	}
	return nil
}

func compareSorts(cmd *cobra.Command, args []string) error {
	cfg, arrShape, err := prepare(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, !headless)
	if err != nil {
		return err
	}

	values := cells.Generate(cfg.Size, cfg.Seed, arrShape)
	var printer *viz.Printer
	if headless {
		printer = viz.NewPrinter(os.Stdout, noColor)
	}

	sessions := make([]*session.Session, len(args))
	for i, algo := range args {
		opts := []session.Option{
			session.WithSpeed(cfg.Speed),
			session.WithLogger(logger.With("panel", i)),
		}
		if printer != nil {
			opts = append(opts, session.WithObserver(printer.WithPrefix("["+algo+"]")))
		}
		sessions[i] = session.New(cells.NewBoard(values), opts...)
		if _, err := sessions[i].Registry().Lookup(algo); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	results := make([]session.Result, len(sessions))
	if headless {
		g, gctx := errgroup.WithContext(ctx)
		for i := range sessions {
			i := i
			g.Go(func() error {
				if err := sessions[i].Start(gctx, args[i]); err != nil {
					return err
				}
				results[i] = sessions[i].Wait()
				if results[i].Status == session.StatusFailed {
					return fmt.Errorf("%s: %w", args[i], results[i].Err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		printSummary(os.Stderr, sessions, results)
	} else {
		viz.SetTheme(cfg.Theme)
		if err := viz.RunCompare(ctx, sessions[0], sessions[1], args[0], args[1]); err != nil {
			return err
		}
		for i, s := range sessions {
			s.Cancel()
			results[i] = s.Wait()
		}
	}

	if save {
		for i, s := range sessions {
			if results[i].Status == session.StatusIdle {
				continue
			}
			cfg.Algorithm = args[i]
			id, err := saveRun(cfg, s, results[i])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s run id: %s\n", args[i], id)
		}
	}
	return nil
}

func saveRun(cfg *config.Config, sess *session.Session, res session.Result) (string, error) {
	st := storage.New(fs, cfg.DataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(storage.RunMetadata{
		Algorithm: res.Algorithm,
		Seed:      cfg.Seed,
		Shape:     cfg.Shape,
		Size:      cfg.Size,
		Speed:     cfg.Speed,
		Status:    res.Status.String(),
		Initial:   sess.Original(),
		Final:     sess.Board().Values(),
		Metrics:   sess.Metrics().Values(),
	}, sess.History().Steps())
}

func printSummary(out io.Writer, sessions []*session.Session, results []session.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nALGORITHM\tSTATUS\tCOMPARISONS\tSWAPS\tSTEPS\tELAPSED")
	for i, s := range sessions {
		vals := s.Metrics().Values()
		res := results[i]
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%d\t%s\n",
			res.Algorithm,
			res.Status,
			vals["comparisons"],
			vals["swaps"],
			res.Steps,
			res.Elapsed.Round(time.Millisecond),
		)
	}
	w.Flush()
}
