package model

import "slices"

// Mapping holds the workshops assigned to every student. Every student of
// the run has an entry, possibly empty. Workshop ids are kept ascending.
type Mapping map[StudentID][]WorkshopID

// NewMapping creates a mapping with an empty assignment set for every student.
func NewMapping(students []*Student) Mapping {
	m := make(Mapping, len(students))
	for _, s := range students {
		m[s.ID] = []WorkshopID{}
	}
	return m
}

// Assign adds a workshop to the student's set, keeping it sorted.
func (m Mapping) Assign(s StudentID, w WorkshopID) {
	ids := m[s]
	i, found := slices.BinarySearch(ids, w)
	if found {
		return
	}
	m[s] = slices.Insert(ids, i, w)
}

// StudentIDs returns the students of the mapping in ascending order.
func (m Mapping) StudentIDs() []StudentID {
	ids := make([]StudentID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Occupancy counts how many students are assigned to each workshop.
func (m Mapping) Occupancy() map[WorkshopID]int {
	occ := make(map[WorkshopID]int)
	for _, ids := range m {
		for _, w := range ids {
			occ[w]++
		}
	}
	return occ
}

// CountDistribution returns, per number of assigned workshops, how many
// students received that many.
func (m Mapping) CountDistribution() map[int]int {
	dist := make(map[int]int)
	for _, ids := range m {
		dist[len(ids)]++
	}
	return dist
}

// MaxAssigned returns the largest assignment set size.
func (m Mapping) MaxAssigned() int {
	n := 0
	for _, ids := range m {
		n = max(n, len(ids))
	}
	return n
}

// Equal reports whether both mappings assign the same workshops to the same students.
func (m Mapping) Equal(other Mapping) bool {
	if len(m) != len(other) {
		return false
	}
	for s, ids := range m {
		o, ok := other[s]
		if !ok || !slices.Equal(ids, o) {
			return false
		}
	}
	return true
}
