package mapper

import (
	"fmt"
	"strings"

	"github.com/rhyrak/go-workshop/pkg/model"
)

type CheckStatus int

const (
	CheckOK CheckStatus = iota
	CheckWarn
	CheckFail
)

func (s CheckStatus) String() string {
	switch s {
	case CheckOK:
		return "  OK"
	case CheckWarn:
		return "WARN"
	default:
		return "FAIL"
	}
}

// maxShown limits the violations printed per check.
const maxShown = 5

type Check struct {
	Name       string
	Status     CheckStatus
	Violations []string
}

// Report is the outcome of Validate. Warnings do not make a mapping invalid.
type Report struct {
	Checks []*Check
}

// Valid reports whether no check failed.
func (r *Report) Valid() bool {
	for _, c := range r.Checks {
		if c.Status == CheckFail {
			return false
		}
	}
	return true
}

// Check returns the check with the given name, or nil.
func (r *Report) Check(name string) *Check {
	for _, c := range r.Checks {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (r *Report) String() string {
	var sb strings.Builder
	for _, c := range r.Checks {
		fmt.Fprintf(&sb, "[%s]: %s check.\n", c.Status, c.Name)
		for i, v := range c.Violations {
			if i == maxShown {
				fmt.Fprintf(&sb, "    ... and %d more\n", len(c.Violations)-maxShown)
				break
			}
			fmt.Fprintf(&sb, "    %s\n", v)
		}
	}
	return sb.String()
}

// Check names used in a Report.
const (
	CheckUnknownIDs     = "Known id"
	CheckAssignmentSize = "Assignment count"
	CheckLanguage       = "Language"
	CheckLampedusa      = "Lampedusa"
	CheckSchool         = "School"
	CheckDuplicateName  = "Duplicate workshop"
	CheckSameSlot       = "Simultaneous workshop"
	CheckParticipants   = "Participant limit"
	CheckWorkshopsUsed  = "Workshop coverage"
	CheckStudentsFilled = "Student coverage"
)

// Validate checks a finished mapping against every hard constraint.
// Workshops left empty and students with fewer than k workshops are
// reported as warnings.
func Validate(students []*model.Student, workshops []*model.Workshop, mapping model.Mapping, k int) *Report {
	studentByID := make(map[model.StudentID]*model.Student, len(students))
	for _, s := range students {
		studentByID[s.ID] = s
	}
	workshopByID := make(map[model.WorkshopID]*model.Workshop, len(workshops))
	for _, w := range workshops {
		workshopByID[w.ID] = w
	}

	checks := map[string]*Check{}
	order := []string{
		CheckUnknownIDs, CheckAssignmentSize, CheckLanguage, CheckLampedusa, CheckSchool,
		CheckDuplicateName, CheckSameSlot, CheckParticipants, CheckWorkshopsUsed, CheckStudentsFilled,
	}
	for _, name := range order {
		checks[name] = &Check{Name: name}
	}
	fail := func(name, format string, args ...any) {
		c := checks[name]
		c.Status = CheckFail
		c.Violations = append(c.Violations, fmt.Sprintf(format, args...))
	}
	warn := func(name, format string, args ...any) {
		c := checks[name]
		c.Status = max(c.Status, CheckWarn)
		c.Violations = append(c.Violations, fmt.Sprintf(format, args...))
	}

	occupancy := map[model.WorkshopID]int{}
	for _, sid := range mapping.StudentIDs() {
		s, ok := studentByID[sid]
		if !ok {
			fail(CheckUnknownIDs, "student %s is not in the student list", sid)
			continue
		}
		ids := mapping[sid]
		if len(ids) > k {
			fail(CheckAssignmentSize, "student %s has %d workshops, limit is %d", sid, len(ids), k)
		}

		var taken []*model.Workshop
		for _, wid := range ids {
			w, ok := workshopByID[wid]
			if !ok {
				fail(CheckUnknownIDs, "student %s assigned to unknown workshop %s", sid, wid)
				continue
			}
			occupancy[wid]++
			if !w.Languages.Intersects(s.Languages) {
				fail(CheckLanguage, "student %s speaks %v but workshop %s is offered in %v", sid, s.Languages, wid, w.Languages)
			}
			if s.FromLampedusa && !w.DoableFromLampedusa {
				fail(CheckLampedusa, "student %s from Lampedusa assigned to workshop %s (%s)", sid, wid, w.Name)
			}
			if s.School == w.Organizer {
				fail(CheckSchool, "student %s from %s assigned to workshop %s organized by their own school", sid, s.School, wid)
			}
			for _, t := range taken {
				if t.ID == w.ID || t.Name == w.Name {
					fail(CheckDuplicateName, "student %s assigned to %q twice (workshops %s and %s)", sid, w.Name, t.ID, wid)
				}
				if t.ID != w.ID && t.Slot == w.Slot {
					fail(CheckSameSlot, "student %s assigned to workshops %s and %s in slot %s", sid, t.ID, wid, w.Slot)
				}
			}
			taken = append(taken, w)
		}
	}

	for _, s := range students {
		if _, ok := mapping[s.ID]; !ok {
			warn(CheckStudentsFilled, "student %s is missing from the mapping", s.ID)
			continue
		}
		if n := len(mapping[s.ID]); n < k {
			warn(CheckStudentsFilled, "student %s has %d workshops assigned", s.ID, n)
		}
	}

	for _, w := range workshops {
		n := occupancy[w.ID]
		if w.Participants.Bounded() && n > int(w.Participants) {
			fail(CheckParticipants, "workshop %s (%s) has %d students but limit is %d", w.ID, w.Name, n, w.Participants)
		}
		if n == 0 {
			warn(CheckWorkshopsUsed, "workshop %s (%s) in slot %s has no students", w.ID, w.Name, w.Slot)
		}
	}

	report := &Report{}
	for _, name := range order {
		report.Checks = append(report.Checks, checks[name])
	}
	return report
}
