package mapper

import (
	"cmp"
	"slices"

	"github.com/rhyrak/go-workshop/pkg/model"
)

// Index is the immutable data shared by every trial: students and workshops
// sorted by id, and the eligible workshops of every student.
//
// Workshop positions in the index follow ascending workshop id, so a lower
// position is a lower id.
type Index struct {
	students  []*model.Student
	workshops []*model.Workshop
	eligible  [][]int
	names     []int
	slots     []int
}

// NewIndex evaluates eligibility for every (student, workshop) pair once.
func NewIndex(students []*model.Student, workshops []*model.Workshop) *Index {
	ix := &Index{
		students:  slices.Clone(students),
		workshops: slices.Clone(workshops),
	}
	slices.SortFunc(ix.students, func(a, b *model.Student) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(ix.workshops, func(a, b *model.Workshop) int { return cmp.Compare(a.ID, b.ID) })

	// Names and slots are compared as small integers inside the hot loop.
	nameIDs := map[string]int{}
	slotIDs := map[string]int{}
	ix.names = make([]int, len(ix.workshops))
	ix.slots = make([]int, len(ix.workshops))
	for i, w := range ix.workshops {
		ix.names[i] = internID(nameIDs, w.Name)
		ix.slots[i] = internID(slotIDs, w.Slot)
	}

	ix.eligible = make([][]int, len(ix.students))
	for si, s := range ix.students {
		for wi, w := range ix.workshops {
			if w.Eligible(s) {
				ix.eligible[si] = append(ix.eligible[si], wi)
			}
		}
	}
	return ix
}

func internID(ids map[string]int, key string) int {
	id, ok := ids[key]
	if !ok {
		id = len(ids)
		ids[key] = id
	}
	return id
}

// Eligible reports whether the student at position si may attend the
// workshop at position wi.
func (ix *Index) Eligible(si, wi int) bool {
	_, found := slices.BinarySearch(ix.eligible[si], wi)
	return found
}

// EligibleCount returns how many workshops the student at position si may attend.
func (ix *Index) EligibleCount(si int) int {
	return len(ix.eligible[si])
}

// conflicts reports whether one student cannot attend both workshops.
func (ix *Index) conflicts(a, b int) bool {
	return ix.names[a] == ix.names[b] || ix.slots[a] == ix.slots[b]
}

func (ix *Index) Students() []*model.Student {
	return ix.students
}

func (ix *Index) Workshops() []*model.Workshop {
	return ix.workshops
}

// toMapping converts per-position assignments into a Mapping keyed by id.
func (ix *Index) toMapping(assigned [][]int) model.Mapping {
	m := model.NewMapping(ix.students)
	for si, ws := range assigned {
		for _, wi := range ws {
			m.Assign(ix.students[si].ID, ix.workshops[wi].ID)
		}
	}
	return m
}
