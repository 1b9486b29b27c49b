package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logFile  string
	noColor  bool

	size       int
	speed      int
	seed       int64
	shape      string
	theme      string
	configFile string
	preset     string
	headless   bool
	exportPath string
	save       bool

	outPath  string
	jsonOut  bool
	svgPath  string
	trials   int
	logClose func() error
)

// fs is the filesystem behind run storage and log exports.
var fs = afero.NewOsFs()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "sortviz",
		Short:         "step-by-step sorting algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				viz.DisableColor()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logClose != nil {
				logClose()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := requireTerminal(); err != nil {
				return err
			}
			logger, err := newLogger(cfg, true)
			if err != nil {
				return err
			}
			viz.SetTheme(cfg.Theme)
			return viz.RunInteractive(cmd.Context(), viz.AppOptions{Config: cfg, Logger: logger, Fs: fs})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "run data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "run one sorting algorithm",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSort,
	}
	addArrayFlags(runCmd)
	runCmd.Flags().BoolVar(&headless, "headless", false, "print steps to stdout instead of the UI")
	runCmd.Flags().StringVar(&exportPath, "export", "", "write the step log to this file when the run ends (- for stdout)")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm] [algorithm]",
		Short: "run two algorithms side by side on the same array",
		Args:  cobra.ExactArgs(2),
		RunE:  compareSorts,
	}
	addArrayFlags(compareCmd)
	compareCmd.Flags().BoolVar(&headless, "headless", false, "run both without the UI and print a summary")
	compareCmd.Flags().BoolVar(&save, "save", false, "save both runs to the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print the step log of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export the step log of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", config.DefaultExport, "output file")
	exportCmd.Flags().BoolVar(&jsonOut, "json", false, "print run metadata as json instead")
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "also draw the initial array as an svg bar chart")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the initial and final arrays of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the swap curve as svg")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm...]",
		Short: "count comparisons and swaps over many seeded arrays",
		RunE:  benchSorts,
	}
	addArrayFlags(benchCmd)
	benchCmd.Flags().IntVar(&trials, "trials", 10, "arrays per algorithm")

	algosCmd := &cobra.Command{
		Use:   "algos",
		Short: "list available algorithms",
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, compareCmd, listCmd, showCmd, exportCmd, plotCmd, benchCmd, algosCmd, presetsCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addArrayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "number of elements")
	cmd.Flags().IntVar(&speed, "speed", config.DefaultSpeed, "speed multiplier (delay is 400ms / speed)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "array seed (0 picks one)")
	cmd.Flags().StringVar(&shape, "shape", config.DefaultShape, "array shape (random, sorted, reversed)")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
}

// resolveConfig layers the config file, the preset and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("shape") {
		cfg.Shape = shape
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
	if cfg.ExportFile == "" {
		cfg.ExportFile = config.DefaultExport
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. The terminal UI owns the screen, so
// it only logs when --log-file is set.
func newLogger(cfg *config.Config, tui bool) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logClose = f.Close
		w = f
	} else if tui {
		return logging.NewNop(), nil
	}
	return logging.New(level, w), nil
}

func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal (use --headless)")
	}
	return nil
}
