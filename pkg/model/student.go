package model

import "strconv"

type StudentID int64

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (id *StudentID) UnmarshalCSV(s string) error {
	n, err := parseID(s)
	if err != nil {
		return err
	}
	*id = StudentID(n)
	return nil
}

func (id StudentID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type Student struct {
	ID            StudentID   `csv:"student_id"`
	Name          string      `csv:"name"`
	Surname       string      `csv:"surname"`
	School        string      `csv:"school" validate:"required"`
	Languages     LanguageSet `csv:"languages" validate:"min=1"`
	FromLampedusa Flag        `csv:"from_lampedusa"`
}
