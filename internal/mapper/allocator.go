package mapper

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// Allocator builds one mapping per trial from a student order.
type Allocator struct {
	index *Index
	k     int
	mode  AllocationMode
}

func NewAllocator(index *Index, k int, mode AllocationMode) *Allocator {
	if mode == "" {
		mode = ModeStudent
	}
	return &Allocator{index: index, k: k, mode: mode}
}

// StratifiedOrder returns student positions ordered by ascending number of
// eligible workshops. Students with the same count appear in random order.
func (a *Allocator) StratifiedOrder(rng *rand.Rand) []int {
	order := make([]int, len(a.index.students))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	slices.SortStableFunc(order, func(x, y int) int {
		return cmp.Compare(a.index.EligibleCount(x), a.index.EligibleCount(y))
	})
	return order
}

// Allocate assigns workshops to students in the given order and returns,
// for every student position, the assigned workshop positions.
// Every commit is checked against the ledger, so the result never needs repair.
func (a *Allocator) Allocate(order []int, ledger *Ledger) [][]int {
	assigned := make([][]int, len(a.index.students))

	if a.mode == ModeRounds {
		// One workshop per student per pass
		for pass := 0; pass < a.k; pass++ {
			placed := 0
			for _, si := range order {
				if len(assigned[si]) > pass {
					continue
				}
				if a.assignNext(si, assigned, ledger) {
					placed++
				}
			}
			if placed == 0 {
				break
			}
		}
		return assigned
	}

	for _, si := range order {
		for len(assigned[si]) < a.k {
			if !a.assignNext(si, assigned, ledger) {
				break
			}
		}
	}
	return assigned
}

// assignNext commits the best available workshop for a student.
// Returns false if no candidate is left.
func (a *Allocator) assignNext(si int, assigned [][]int, ledger *Ledger) bool {
	if len(assigned[si]) >= a.k {
		return false
	}
	best := -1
	for _, wi := range a.index.eligible[si] {
		if ledger.Remaining(wi) <= 0 || a.clashes(wi, assigned[si]) {
			continue
		}
		if best < 0 || ledger.prefer(wi, best) {
			best = wi
		}
	}
	if best < 0 || !ledger.Commit(best) {
		return false
	}
	assigned[si] = append(assigned[si], best)
	return true
}

// clashes reports whether a workshop is already taken, or shares a name or
// slot with one of the taken workshops.
func (a *Allocator) clashes(wi int, taken []int) bool {
	for _, t := range taken {
		if a.index.conflicts(wi, t) {
			return true
		}
	}
	return false
}
