package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// LanguageSet is a sorted list of unique language codes.
// In CSV it is a single comma-separated cell, e.g. "en,it".
type LanguageSet []string

// NewLanguageSet trims, deduplicates and sorts the given codes.
func NewLanguageSet(codes ...string) LanguageSet {
	set := make(LanguageSet, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		set = append(set, c)
	}
	slices.Sort(set)
	return slices.Compact(set)
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (l *LanguageSet) UnmarshalCSV(s string) error {
	set := NewLanguageSet(strings.Split(s, ",")...)
	if len(set) == 0 {
		return fmt.Errorf("%w: %q", ErrNoLanguages, s)
	}
	*l = set
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (l LanguageSet) MarshalCSV() (string, error) {
	return strings.Join(l, ","), nil
}

// Intersects reports whether both sets share at least one code.
func (l LanguageSet) Intersects(other LanguageSet) bool {
	for _, code := range l {
		if slices.Contains(other, code) {
			return true
		}
	}
	return false
}

// Flag is a boolean CSV cell. Accepts "true"/"false" in any case,
// surrounding whitespace (including stray carriage returns) is ignored.
type Flag bool

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (f *Flag) UnmarshalCSV(s string) error {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRUE":
		*f = true
	case "FALSE":
		*f = false
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFlag, s)
	}
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (f Flag) MarshalCSV() (string, error) {
	if f {
		return "TRUE", nil
	}
	return "FALSE", nil
}

// Capacity is the desired exact number of participants of a workshop.
// NoTarget means the workshop has no numeric ceiling.
type Capacity int

const NoTarget Capacity = 0

// Bounded reports whether the capacity has a numeric target.
func (c Capacity) Bounded() bool {
	return c > NoTarget
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller. An empty cell means NoTarget.
func (c *Capacity) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*c = NoTarget
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidCapacity, s)
	}
	*c = Capacity(n)
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (c Capacity) MarshalCSV() (string, error) {
	if !c.Bounded() {
		return "", nil
	}
	return strconv.Itoa(int(c)), nil
}

func (c Capacity) String() string {
	if !c.Bounded() {
		return "-"
	}
	return strconv.Itoa(int(c))
}

func parseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidID)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return n, nil
}
