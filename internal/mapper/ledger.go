package mapper

import (
	"math"

	"github.com/rhyrak/go-workshop/pkg/model"
)

// Unbounded is returned by Ledger.Remaining for workshops without a target.
const Unbounded = math.MaxInt

// Ledger tracks the occupancy of every workshop during one trial.
// It is owned by a single trial and never shared.
type Ledger struct {
	targets   []int
	occupancy []int
}

// NewLedger creates an empty ledger for the workshops, in index order.
func NewLedger(workshops []*model.Workshop) *Ledger {
	l := &Ledger{
		targets:   make([]int, len(workshops)),
		occupancy: make([]int, len(workshops)),
	}
	for i, w := range workshops {
		if w.Participants.Bounded() {
			l.targets[i] = int(w.Participants)
		}
	}
	return l
}

// Remaining returns the free seats of a workshop, or Unbounded.
func (l *Ledger) Remaining(w int) int {
	if l.targets[w] == 0 {
		return Unbounded
	}
	return l.targets[w] - l.occupancy[w]
}

// Commit takes one seat. Returns false and leaves the ledger unchanged if
// the workshop is already full.
func (l *Ledger) Commit(w int) bool {
	if l.Remaining(w) <= 0 {
		return false
	}
	l.occupancy[w]++
	return true
}

func (l *Ledger) Occupancy(w int) int {
	return l.occupancy[w]
}

func (l *Ledger) Target(w int) int {
	return l.targets[w]
}

// prefer reports whether workshop a should be picked over workshop b:
// targeted workshops first, then the lowest fill ratio (raw occupancy for
// workshops without a target), then the lowest position.
func (l *Ledger) prefer(a, b int) bool {
	ta, tb := l.targets[a], l.targets[b]
	if (ta > 0) != (tb > 0) {
		return ta > 0
	}
	var ra, rb int
	if ta > 0 {
		// occupancy[a]/ta < occupancy[b]/tb without floating point
		ra, rb = l.occupancy[a]*tb, l.occupancy[b]*ta
	} else {
		ra, rb = l.occupancy[a], l.occupancy[b]
	}
	if ra != rb {
		return ra < rb
	}
	return a < b
}
