package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/rhyrak/go-workshop/internal/csvio"
	"github.com/rhyrak/go-workshop/internal/mapper"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := mapper.NewDefaultConfiguration()

	configPath := flag.String("config", "", "YAML configuration file (flags override it)")
	flag.StringVar(&cfg.StudentsFile, "students", cfg.StudentsFile, "path to students.csv")
	flag.StringVar(&cfg.WorkshopsFile, "workshops", cfg.WorkshopsFile, "path to workshops.csv")
	flag.StringVar(&cfg.MappingFile, "mapping", cfg.MappingFile, "path where the mapping csv is written")
	flag.StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "field separator of the input files")
	flag.IntVar(&cfg.MaxWorkshops, "k", cfg.MaxWorkshops, "maximum workshops per student")
	flag.IntVar(&cfg.Trials, "trials", cfg.Trials, "number of runs for best mapping")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "trials run concurrently")
	seed := flag.Uint64("seed", 0, "run seed (random if not set)")
	mode := flag.String("mode", string(cfg.AllocationMode), "allocation mode: student or rounds")
	stats := flag.Bool("stats", true, "print assignment statistics")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	cfg.AllocationMode = mapper.AllocationMode(*mode)

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := resolveConfig(*configPath, cfg, set)
	if err != nil {
		return err
	}
	if set["seed"] {
		cfg.Seed = seed
	}

	newLogger := zap.NewProduction
	if *debug {
		newLogger = zap.NewDevelopment
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	students, err := csvio.LoadStudents(cfg.StudentsFile, cfg.DelimiterRune())
	if err != nil {
		return err
	}
	workshops, err := csvio.LoadWorkshops(cfg.WorkshopsFile, cfg.DelimiterRune())
	if err != nil {
		return err
	}

	// Ctrl+C stops the search; the best mapping so far is still written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := mapper.ComputeMapping(ctx, students, workshops, cfg, mapper.WithLogger(logger))
	if err != nil {
		return err
	}

	outPath, err := csvio.ExportMapping(res.Mapping, cfg.MaxWorkshops, cfg.NoAssignment, cfg.MappingFile)
	if err != nil {
		return err
	}

	if *stats {
		csvio.PrintStats(os.Stdout, res.Mapping, workshops)
	}
	if res.Cancelled {
		fmt.Println("Search interrupted, writing best mapping so far")
	}
	fmt.Printf("Seed: %d\n", res.Seed)
	fmt.Printf("Score: %d\n", res.Score)
	fmt.Printf("Best trial: %d of %d completed\n", res.Trial, res.Trials)
	fmt.Printf("Timer: %f ms\n", float64(res.Duration.Nanoseconds())/1000000.0)
	fmt.Println("Exported output to: " + outPath)
	return nil
}

// resolveConfig merges the optional config file with the flags set on the
// command line, which win, and validates the result.
func resolveConfig(path string, flags *mapper.Configuration, set map[string]bool) (*mapper.Configuration, error) {
	cfg := flags
	if path != "" {
		fileCfg, err := mapper.ReadConfiguration(path)
		if err != nil {
			return nil, err
		}
		overrideFromFlags(fileCfg, flags, set)
		cfg = fileCfg
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrideFromFlags copies the explicitly set flag values onto the file configuration.
func overrideFromFlags(dst, flags *mapper.Configuration, set map[string]bool) {
	if set["students"] {
		dst.StudentsFile = flags.StudentsFile
	}
	if set["workshops"] {
		dst.WorkshopsFile = flags.WorkshopsFile
	}
	if set["mapping"] {
		dst.MappingFile = flags.MappingFile
	}
	if set["delimiter"] {
		dst.Delimiter = flags.Delimiter
	}
	if set["k"] {
		dst.MaxWorkshops = flags.MaxWorkshops
	}
	if set["trials"] {
		dst.Trials = flags.Trials
	}
	if set["workers"] {
		dst.Workers = flags.Workers
	}
	if set["mode"] {
		dst.AllocationMode = flags.AllocationMode
	}
}
