package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/step"
	"github.com/san-kum/sortviz/internal/storage"
)

func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addArrayFlags(cmd)
	t.Cleanup(func() {
		preset, configFile = "", ""
	})
	return cmd
}

func TestResolveConfigLayers(t *testing.T) {
	cmd := newTestCommand(t)
	path := filepath.Join(t.TempDir(), "sortviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm: merge\nspeed: 3\ntheme: ocean\n"), 0644))

	configFile = path
	preset = "demo"
	require.NoError(t, cmd.Flags().Set("size", "30"))

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "bubble", cfg.Algorithm)
	assert.Equal(t, 30, cfg.Size)
	assert.Equal(t, 1, cfg.Speed)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "ocean", cfg.Theme)
}

func TestResolveConfigErrors(t *testing.T) {
	cmd := newTestCommand(t)
	preset = "nope"
	_, err := resolveConfig(cmd)
	assert.ErrorContains(t, err, "unknown preset")

	preset = ""
	require.NoError(t, cmd.Flags().Set("size", "1"))
	_, err = resolveConfig(cmd)
	assert.Error(t, err)
}

func TestCumulativeSwaps(t *testing.T) {
	steps := []step.Step{
		step.Comparison(0, 1, 5, 3),
		step.Swap(0, 1, 5, 3),
		step.Comparison(1, 2, 5, 8),
		step.Swap(1, 2, 8, 5),
	}
	assert.Equal(t, []float64{0, 1, 1, 2}, cumulativeSwaps(steps))
	assert.Equal(t, []float64{3, 1}, toFloats([]int{3, 1}))
}

func TestNewSeedIsNonZero(t *testing.T) {
	for i := 0; i < 10; i++ {
		s := newSeed()
		assert.NotZero(t, s)
		assert.Less(t, s, int64(1)<<32)
	}
}

func TestExportRunWritesLogAndChart(t *testing.T) {
	orig := fs
	fs = afero.NewMemMapFs()
	t.Cleanup(func() {
		fs = orig
		outPath, svgPath = config.DefaultExport, ""
	})

	steps := []step.Step{
		step.Comparison(0, 1, 5, 3),
		step.Swap(0, 1, 5, 3),
	}
	id, err := storage.New(fs, config.DefaultDataDir).Save(storage.RunMetadata{
		Algorithm: "bubble",
		Initial:   []int{5, 3},
		Final:     []int{3, 5},
	}, steps)
	require.NoError(t, err)

	outPath, svgPath = "out.txt", "out.svg"
	require.NoError(t, exportRun(newTestCommand(t), []string{id}))

	log, err := afero.ReadFile(fs, "out.txt")
	require.NoError(t, err)
	assert.Equal(t, "Comparing index 0 (5) with index 1 (3)\nSwapping index 0 (5) with index 1 (3)", string(log))

	svg, err := afero.ReadFile(fs, "out.svg")
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Equal(t, 2, strings.Count(string(svg), "<rect x="))
}

func TestBenchUnknownAlgorithm(t *testing.T) {
	trials = 2
	err := benchSorts(newTestCommand(t), []string{"bogo"})
	assert.Error(t, err)
}
