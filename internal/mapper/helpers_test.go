package mapper

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-workshop/pkg/model"
)

func newStudent(id int64, school string, lampedusa bool, langs ...string) *model.Student {
	return &model.Student{
		ID:            model.StudentID(id),
		Name:          fmt.Sprintf("name-%d", id),
		Surname:       fmt.Sprintf("surname-%d", id),
		School:        school,
		Languages:     model.NewLanguageSet(langs...),
		FromLampedusa: model.Flag(lampedusa),
	}
}

func newWorkshop(id int64, name, slot string, participants int, organizer string, doable bool, langs ...string) *model.Workshop {
	return &model.Workshop{
		ID:                  model.WorkshopID(id),
		Name:                name,
		Slot:                slot,
		Participants:        model.Capacity(participants),
		Organizer:           organizer,
		Languages:           model.NewLanguageSet(langs...),
		DoableFromLampedusa: model.Flag(doable),
	}
}

func testConfig(k, trials int, seed uint64) *Configuration {
	cfg := NewDefaultConfiguration()
	cfg.MaxWorkshops = k
	cfg.Trials = trials
	cfg.Seed = &seed
	cfg.Workers = 1
	return cfg
}

// randomInstance builds a reproducible, moderately constrained population.
func randomInstance(seed uint64, nStudents, nWorkshops int) ([]*model.Student, []*model.Workshop) {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	schools := []string{"Engineering", "Science", "Arts", "Medicine"}
	langs := []string{"en", "it", "fr"}
	names := []string{"Hackathon", "Robotics", "Painting", "Chemistry", "Debate"}

	students := make([]*model.Student, nStudents)
	for i := range students {
		codes := []string{langs[rng.IntN(len(langs))]}
		if rng.IntN(2) == 0 {
			codes = append(codes, langs[rng.IntN(len(langs))])
		}
		students[i] = newStudent(int64(i+1), schools[rng.IntN(len(schools))], rng.IntN(5) == 0, codes...)
	}

	workshops := make([]*model.Workshop, nWorkshops)
	for i := range workshops {
		participants := 0
		if rng.IntN(3) > 0 {
			participants = 1 + rng.IntN(12)
		}
		workshops[i] = newWorkshop(int64(100+i),
			names[rng.IntN(len(names))],
			fmt.Sprintf("%d", 1+rng.IntN(3)),
			participants,
			schools[rng.IntN(len(schools))],
			rng.IntN(2) == 0,
			langs[rng.IntN(len(langs))],
		)
	}
	return students, workshops
}

// requireValidMapping checks every hard constraint of a mapping.
func requireValidMapping(t *testing.T, students []*model.Student, workshops []*model.Workshop, m model.Mapping, k int) {
	t.Helper()

	report := Validate(students, workshops, m, k)
	require.True(t, report.Valid(), report.String())
	require.Len(t, m, len(students))
	for _, ids := range m {
		require.LessOrEqual(t, len(ids), k)
	}
}
