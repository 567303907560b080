package mapper

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/rhyrak/go-workshop/pkg/model"
)

var validate = validator.New()

// ValidateInput rejects record lists that cannot be mapped: nil entries,
// missing required fields, invalid field values and duplicate ids.
// All problems are reported at once.
func ValidateInput(students []*model.Student, workshops []*model.Workshop) error {
	var errs []error

	seenStudents := make(map[model.StudentID]struct{}, len(students))
	for i, s := range students {
		if s == nil {
			errs = append(errs, fmt.Errorf("student row %d: %w", i+1, ErrMissingRecord))
			continue
		}
		if err := validate.Struct(s); err != nil {
			errs = append(errs, fmt.Errorf("student %s: %w", s.ID, err))
		}
		if _, dup := seenStudents[s.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: student_id %s", ErrDuplicateID, s.ID))
		}
		seenStudents[s.ID] = struct{}{}
	}

	seenWorkshops := make(map[model.WorkshopID]struct{}, len(workshops))
	for i, w := range workshops {
		if w == nil {
			errs = append(errs, fmt.Errorf("workshop row %d: %w", i+1, ErrMissingRecord))
			continue
		}
		if err := validate.Struct(w); err != nil {
			errs = append(errs, fmt.Errorf("workshop %s: %w", w.ID, err))
		}
		if _, dup := seenWorkshops[w.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: workshop_id %s", ErrDuplicateID, w.ID))
		}
		seenWorkshops[w.ID] = struct{}{}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrMalformedInput, errors.Join(errs...))
	}
	return nil
}
