package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfiguration(t *testing.T) {
	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
students_file: in/s.csv
max_workshops: 2
trials: 40
seed: 18446744073709551615
allocation_mode: rounds
score_policy: quadratic
delimiter: ";"
`)

		cfg, err := LoadConfiguration(path)
		require.NoError(t, err)
		require.Equal(t, "in/s.csv", cfg.StudentsFile)
		require.Equal(t, "data/workshops.csv", cfg.WorkshopsFile)
		require.Equal(t, 2, cfg.MaxWorkshops)
		require.Equal(t, 40, cfg.Trials)
		require.NotNil(t, cfg.Seed)
		require.Equal(t, uint64(18446744073709551615), *cfg.Seed)
		require.Equal(t, ModeRounds, cfg.AllocationMode)
		require.Equal(t, ';', cfg.DelimiterRune())

		weights, err := cfg.Weights()
		require.NoError(t, err)
		require.Equal(t, []int64{0, 1, 4}, weights)
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfiguration(writeConfig(t, ""))
		require.NoError(t, err)
		require.Equal(t, NewDefaultConfiguration(), cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadConfiguration(writeConfig(t, "max_workshop: 2\n"))
		require.ErrorContains(t, err, "max_workshop")
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := LoadConfiguration(writeConfig(t, "trials: 0\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "does not exist")
	})
}

func TestReadConfiguration(t *testing.T) {
	path := writeConfig(t, "trials: 0\n")

	cfg, err := ReadConfiguration(path)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Trials)
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Trials = 5
	require.NoError(t, cfg.Validate())

	_, err = ReadConfiguration(writeConfig(t, "bogus: 1\n"))
	require.ErrorContains(t, err, "bogus")
}

func TestConfiguration_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Configuration)
		err    error
	}{
		{name: "defaults", modify: func(c *Configuration) {}},
		{name: "zero k", modify: func(c *Configuration) { c.MaxWorkshops = 0 }, err: ErrInvalidConfig},
		{name: "negative trials", modify: func(c *Configuration) { c.Trials = -1 }, err: ErrInvalidConfig},
		{name: "negative workers", modify: func(c *Configuration) { c.Workers = -2 }, err: ErrInvalidConfig},
		{name: "unknown mode", modify: func(c *Configuration) { c.AllocationMode = "greedy" }, err: ErrInvalidConfig},
		{name: "long delimiter", modify: func(c *Configuration) { c.Delimiter = ";;" }, err: ErrInvalidConfig},
		{name: "empty sentinel", modify: func(c *Configuration) { c.NoAssignment = "" }, err: ErrInvalidConfig},
		{name: "unknown policy", modify: func(c *Configuration) { c.ScorePolicy = "linear" }, err: ErrInvalidConfig},
		{name: "explicit weights", modify: func(c *Configuration) { c.ScoreWeights = []int64{0, 2, 5, 10} }},
		{name: "linear weights", modify: func(c *Configuration) { c.ScoreWeights = []int64{0, 1, 2, 3} }, err: ErrInvalidWeights},
		{name: "wrong weight count", modify: func(c *Configuration) { c.ScoreWeights = []int64{0, 1, 3} }, err: ErrInvalidWeights},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfiguration()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestConfiguration_WorkerCount(t *testing.T) {
	cfg := NewDefaultConfiguration()
	cfg.Workers = 0
	require.Equal(t, 1, cfg.WorkerCount())
	cfg.Workers = 6
	require.Equal(t, 6, cfg.WorkerCount())
}
