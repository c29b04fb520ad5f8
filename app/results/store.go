package results

import (
	"context"
	"errors"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

// ErrNotFound is returned when a referenced student, subject or term does not
// exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence collaborator for result compilation. It is passed
// into the service explicitly so tests can substitute the in-memory
// implementation.
type Store interface {
	// GradeScale returns the active grading bands ordered by descending
	// minimum marks.
	GradeScale(ctx context.Context) ([]models.Grade, error)

	// UpsertResult inserts the result or, when a row already exists for
	// (student_id, subject_id, term_id), fully replaces its scores, total
	// and grade. It fills in ID and timestamps on the passed result.
	UpsertResult(ctx context.Context, result *models.Result) error

	// ResultsForStudent returns a student's results for a term with the
	// Subject relation populated (the coefficient is needed for CGPA).
	ResultsForStudent(ctx context.Context, studentID, termID string) ([]*models.Result, error)

	// TotalsForSubject returns every student's total for a subject in a
	// term, used for class ranking.
	TotalsForSubject(ctx context.Context, subjectID, termID string) ([]float64, error)
}
