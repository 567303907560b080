package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rhyrak/go-workshop/internal/csvio"
	"github.com/rhyrak/go-workshop/internal/mapper"
)

func main() {
	cfg := mapper.NewDefaultConfiguration()
	flag.StringVar(&cfg.StudentsFile, "students", cfg.StudentsFile, "path to students.csv")
	flag.StringVar(&cfg.WorkshopsFile, "workshops", cfg.WorkshopsFile, "path to workshops.csv")
	flag.StringVar(&cfg.MappingFile, "mapping", cfg.MappingFile, "path to the mapping csv to test")
	flag.StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "field separator of the input files")
	flag.StringVar(&cfg.NoAssignment, "no-assignment", cfg.NoAssignment, "value used for empty workshop cells")
	flag.IntVar(&cfg.MaxWorkshops, "k", cfg.MaxWorkshops, "maximum workshops per student")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	students, err := csvio.LoadStudents(cfg.StudentsFile, cfg.DelimiterRune())
	if err != nil {
		fail(err)
	}
	workshops, err := csvio.LoadWorkshops(cfg.WorkshopsFile, cfg.DelimiterRune())
	if err != nil {
		fail(err)
	}
	mapping, err := csvio.LoadMapping(cfg.MappingFile, cfg.NoAssignment)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Loaded %d students, %d workshops, %d mappings\n", len(students), len(workshops), len(mapping))
	report := mapper.Validate(students, workshops, mapping, cfg.MaxWorkshops)
	fmt.Print(report)
	if !report.Valid() {
		fmt.Println("Invalid mapping")
		os.Exit(1)
	}
	fmt.Println("Passed all tests")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
