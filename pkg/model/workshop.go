package model

import "strconv"

type WorkshopID int64

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (id *WorkshopID) UnmarshalCSV(s string) error {
	n, err := parseID(s)
	if err != nil {
		return err
	}
	*id = WorkshopID(n)
	return nil
}

func (id WorkshopID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Workshop is one session of a workshop. Sessions of the same workshop share
// a Name and differ in Slot.
type Workshop struct {
	ID                  WorkshopID  `csv:"workshop_id"`
	Name                string      `csv:"name" validate:"required"`
	Slot                string      `csv:"slot" validate:"required"`
	Participants        Capacity    `csv:"participants" validate:"gte=0"`
	Organizer           string      `csv:"organizer" validate:"required"`
	Languages           LanguageSet `csv:"languages" validate:"min=1"`
	DoableFromLampedusa Flag        `csv:"doable_from_lampedusa"`
}

// Eligible checks the hard constraints between a student and a workshop:
// a shared language, reachability for students from Lampedusa and a
// different organizing school.
func (w *Workshop) Eligible(s *Student) bool {
	if !w.Languages.Intersects(s.Languages) {
		return false
	}
	if s.FromLampedusa && !w.DoableFromLampedusa {
		return false
	}
	return w.Organizer != s.School
}

// ConflictsWith reports whether a student cannot attend both workshops.
func (w *Workshop) ConflictsWith(other *Workshop) bool {
	return w.Name == other.Name || w.Slot == other.Slot
}
