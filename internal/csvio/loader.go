package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-workshop/pkg/model"
)

var (
	ErrMissingColumn    = errors.New("missing column")
	ErrDuplicateStudent = errors.New("student listed twice")
)

const workshopColumnPrefix = "workshop_id_"

func init() {
	// Every struct field is a required column.
	gocsv.FailIfUnmatchedStructTags = true
}

func newReader(in io.Reader, delim rune) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.Comma = delim
	r.TrimLeadingSpace = true
	return r
}

// ReadStudents parses student rows.
func ReadStudents(in io.Reader, delim rune) ([]*model.Student, error) {
	students := []*model.Student{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &students); err != nil {
		return nil, fmt.Errorf("parse students: %w", err)
	}
	return students, nil
}

// ReadWorkshops parses workshop rows.
func ReadWorkshops(in io.Reader, delim rune) ([]*model.Workshop, error) {
	workshops := []*model.Workshop{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &workshops); err != nil {
		return nil, fmt.Errorf("parse workshops: %w", err)
	}
	return workshops, nil
}

// LoadStudents reads and parses the given csv file for student data.
func LoadStudents(path string, delim rune) ([]*model.Student, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	students, err := ReadStudents(f, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return students, nil
}

// LoadWorkshops reads and parses the given csv file for workshop data.
func LoadWorkshops(path string, delim rune) ([]*model.Workshop, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	workshops, err := ReadWorkshops(f, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return workshops, nil
}

// ReadMapping parses a mapping written by WriteMapping. Any number of
// workshop_id_N columns is accepted; empty cells and cells equal to
// noAssignment are skipped.
func ReadMapping(in io.Reader, noAssignment string) (model.Mapping, error) {
	rows, err := gocsv.CSVToMaps(in)
	if err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}

	mapping := model.Mapping{}
	for i, row := range rows {
		line := i + 2
		raw, ok := row["student_id"]
		if !ok {
			return nil, fmt.Errorf("parse mapping: %w: student_id", ErrMissingColumn)
		}
		var sid model.StudentID
		if err := sid.UnmarshalCSV(raw); err != nil {
			return nil, fmt.Errorf("parse mapping line %d: %w", line, err)
		}
		if _, dup := mapping[sid]; dup {
			return nil, fmt.Errorf("parse mapping line %d: %w: %s", line, ErrDuplicateStudent, sid)
		}
		mapping[sid] = []model.WorkshopID{}

		for col, cell := range row {
			if !strings.HasPrefix(col, workshopColumnPrefix) {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" || cell == noAssignment {
				continue
			}
			n, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse mapping line %d column %s: %w: %q", line, col, model.ErrInvalidID, cell)
			}
			mapping[sid] = append(mapping[sid], model.WorkshopID(n))
		}
		slices.Sort(mapping[sid])
	}
	return mapping, nil
}

// LoadMapping reads a mapping csv file.
func LoadMapping(path string, noAssignment string) (model.Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	mapping, err := ReadMapping(f, noAssignment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mapping, nil
}
