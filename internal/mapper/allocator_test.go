package mapper

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-workshop/pkg/model"
)

func TestIndex(t *testing.T) {
	students := []*model.Student{
		newStudent(2, "Arts", false, "en"),
		newStudent(1, "Science", true, "it"),
	}
	workshops := []*model.Workshop{
		newWorkshop(20, "Painting", "1", 0, "Arts", true, "en"),
		newWorkshop(10, "Robotics", "2", 0, "Science", false, "en", "it"),
		newWorkshop(30, "Opera", "1", 0, "Medicine", true, "it", "en"),
	}

	ix := NewIndex(students, workshops)

	require.Equal(t, model.StudentID(1), ix.Students()[0].ID)
	require.Equal(t, model.WorkshopID(10), ix.Workshops()[0].ID)
	require.Equal(t, model.WorkshopID(30), ix.Workshops()[2].ID)

	// Student 1 is from Lampedusa: only Opera.
	require.Equal(t, 1, ix.EligibleCount(0))
	require.True(t, ix.Eligible(0, 2))
	require.False(t, ix.Eligible(0, 0))

	// Student 2 is from Arts: Robotics and Opera.
	require.Equal(t, 2, ix.EligibleCount(1))
	require.True(t, ix.Eligible(1, 0))
	require.False(t, ix.Eligible(1, 1))

	// Painting and Opera share slot 1.
	require.True(t, ix.conflicts(1, 2))
	require.False(t, ix.conflicts(0, 1))
}

func TestAllocator_StratifiedOrder(t *testing.T) {
	students := []*model.Student{
		newStudent(1, "Arts", false, "en", "it"),
		newStudent(2, "Arts", false, "it"),
		newStudent(3, "Arts", false, "en", "it"),
		newStudent(4, "Arts", false, "de"),
	}
	workshops := []*model.Workshop{
		newWorkshop(1, "Opera", "1", 0, "Science", true, "it"),
		newWorkshop(2, "Theatre", "2", 0, "Science", true, "en"),
	}
	a := NewAllocator(NewIndex(students, workshops), 2, ModeStudent)

	seen := map[int]bool{}
	for seed := uint64(0); seed < 30; seed++ {
		order := a.StratifiedOrder(rand.New(rand.NewPCG(seed, seed)))

		require.Equal(t, []int{3, 1}, order[:2])
		require.ElementsMatch(t, []int{0, 2}, order[2:])
		seen[order[2]] = true
	}
	// Students with equal counts are shuffled.
	require.Len(t, seen, 2)
}

func TestAllocator_Allocate(t *testing.T) {
	students := []*model.Student{
		newStudent(1, "Arts", false, "en"),
		newStudent(2, "Arts", false, "en"),
		newStudent(3, "Arts", false, "en"),
	}
	workshops := []*model.Workshop{
		newWorkshop(1, "Chess", "1", 2, "Science", true, "en"),
		newWorkshop(2, "Go", "2", 2, "Science", true, "en"),
	}
	ix := NewIndex(students, workshops)
	order := []int{0, 1, 2}

	counts := func(assigned [][]int) []int {
		var n []int
		for _, ws := range assigned {
			n = append(n, len(ws))
		}
		slices.Sort(n)
		return n
	}

	t.Run("student mode fills each student in turn", func(t *testing.T) {
		ledger := NewLedger(ix.Workshops())
		assigned := NewAllocator(ix, 2, ModeStudent).Allocate(order, ledger)

		require.Equal(t, []int{0, 2, 2}, counts(assigned))
		require.Empty(t, assigned[2])
		require.Equal(t, 2, ledger.Occupancy(0))
		require.Equal(t, 2, ledger.Occupancy(1))
	})

	t.Run("rounds mode hands out one workshop per pass", func(t *testing.T) {
		ledger := NewLedger(ix.Workshops())
		assigned := NewAllocator(ix, 2, ModeRounds).Allocate(order, ledger)

		require.Equal(t, []int{1, 1, 2}, counts(assigned))
		require.Equal(t, []int{0, 1}, assigned[0])
		require.Equal(t, []int{1}, assigned[1])
		require.Equal(t, []int{0}, assigned[2])
	})

	t.Run("limit of one", func(t *testing.T) {
		ledger := NewLedger(ix.Workshops())
		assigned := NewAllocator(ix, 1, ModeStudent).Allocate(order, ledger)

		require.Equal(t, []int{1, 1, 1}, counts(assigned))
	})
}

func TestAllocator_PrefersTargetedWorkshops(t *testing.T) {
	students := []*model.Student{newStudent(1, "Arts", false, "en")}
	workshops := []*model.Workshop{
		newWorkshop(1, "Open day", "1", 0, "Science", true, "en"),
		newWorkshop(2, "Robotics", "2", 5, "Science", true, "en"),
	}
	ix := NewIndex(students, workshops)

	assigned := NewAllocator(ix, 1, ModeStudent).Allocate([]int{0}, NewLedger(ix.Workshops()))
	require.Equal(t, []int{1}, assigned[0])
}

func TestAllocator_PrefersEmptierWorkshops(t *testing.T) {
	students := []*model.Student{newStudent(1, "Arts", false, "en")}
	workshops := []*model.Workshop{
		newWorkshop(1, "Chess", "1", 10, "Science", true, "en"),
		newWorkshop(2, "Go", "2", 4, "Science", true, "en"),
	}
	ix := NewIndex(students, workshops)
	ledger := NewLedger(ix.Workshops())
	for i := 0; i < 5; i++ {
		ledger.Commit(0)
	}
	ledger.Commit(1)
	ledger.Commit(1)

	// 2/4 is not below 5/10, so the lower id wins.
	assigned := NewAllocator(ix, 1, ModeStudent).Allocate([]int{0}, ledger)
	require.Equal(t, []int{0}, assigned[0])

	ledger = NewLedger(ix.Workshops())
	for i := 0; i < 6; i++ {
		ledger.Commit(0)
	}
	ledger.Commit(1)
	assigned = NewAllocator(ix, 1, ModeStudent).Allocate([]int{0}, ledger)
	require.Equal(t, []int{1}, assigned[0])
}
