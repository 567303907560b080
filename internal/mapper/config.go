package mapper

import (
	"errors"
	"fmt"
	"hash/maphash"
	"io"
	"io/fs"
	"os"
	"runtime"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

type AllocationMode string

const (
	// ModeStudent fills one student up to the limit before moving to the next.
	ModeStudent AllocationMode = "student"
	// ModeRounds hands out at most one workshop per student per pass.
	ModeRounds AllocationMode = "rounds"
)

const (
	PolicyTriangular = "triangular"
	PolicyQuadratic  = "quadratic"
)

type Configuration struct {
	StudentsFile   string         `yaml:"students_file"`
	WorkshopsFile  string         `yaml:"workshops_file"`
	MappingFile    string         `yaml:"mapping_file"`
	Delimiter      string         `yaml:"delimiter"`
	MaxWorkshops   int            `yaml:"max_workshops"`
	Trials         int            `yaml:"trials"`
	Seed           *uint64        `yaml:"seed,omitempty"`
	Workers        int            `yaml:"workers"`
	AllocationMode AllocationMode `yaml:"allocation_mode"`
	ScorePolicy    string         `yaml:"score_policy"`
	ScoreWeights   []int64        `yaml:"score_weights,omitempty"`
	NoAssignment   string         `yaml:"no_assignment"`
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		StudentsFile:   "data/students.csv",
		WorkshopsFile:  "data/workshops.csv",
		MappingFile:    "data/mapping.csv",
		Delimiter:      ",",
		MaxWorkshops:   3,
		Trials:         10,
		Workers:        runtime.GOMAXPROCS(0),
		AllocationMode: ModeStudent,
		ScorePolicy:    PolicyTriangular,
		NoAssignment:   "NA",
	}
}

// LoadConfiguration reads a YAML file on top of the default configuration
// and validates the result. Keys missing from the file keep their default value.
func LoadConfiguration(path string) (*Configuration, error) {
	cfg, err := ReadConfiguration(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfiguration is LoadConfiguration without validation, for callers that
// merge further overrides before calling Validate.
func ReadConfiguration(path string) (*Configuration, error) {
	cfg := NewDefaultConfiguration()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: %s does not exist: %w", path, err)
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the run parameters.
func (c *Configuration) Validate() error {
	if c.MaxWorkshops <= 0 {
		return fmt.Errorf("%w: max_workshops must be positive, got %d", ErrInvalidConfig, c.MaxWorkshops)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	switch c.AllocationMode {
	case ModeStudent, ModeRounds:
	default:
		return fmt.Errorf("%w: unknown allocation_mode %q", ErrInvalidConfig, c.AllocationMode)
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("%w: delimiter must be a single character, got %q", ErrInvalidConfig, c.Delimiter)
	}
	if c.NoAssignment == "" {
		return fmt.Errorf("%w: no_assignment must not be empty", ErrInvalidConfig)
	}
	if _, err := c.Weights(); err != nil {
		return err
	}
	return nil
}

// DelimiterRune returns the CSV field separator.
func (c *Configuration) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// WorkerCount returns the number of concurrent trials, at least one.
func (c *Configuration) WorkerCount() int {
	if c.Workers <= 0 {
		return 1
	}
	return c.Workers
}

// Weights returns the score schedule for 0..MaxWorkshops assignments.
func (c *Configuration) Weights() ([]int64, error) {
	if len(c.ScoreWeights) > 0 {
		if err := checkWeights(c.ScoreWeights, c.MaxWorkshops); err != nil {
			return nil, err
		}
		return c.ScoreWeights, nil
	}
	switch c.ScorePolicy {
	case PolicyTriangular, "":
		return TriangularWeights(c.MaxWorkshops), nil
	case PolicyQuadratic:
		return QuadraticWeights(c.MaxWorkshops), nil
	default:
		return nil, fmt.Errorf("%w: unknown score_policy %q", ErrInvalidConfig, c.ScorePolicy)
	}
}

// Rand64 returns a fresh random seed.
func Rand64() uint64 {
	return new(maphash.Hash).Sum64()
}
