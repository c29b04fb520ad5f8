package results

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

// PostgresStore implements Store over database/sql.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a Postgres-backed result store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GradeScale fetches the active grading bands ordered best band first.
func (s *PostgresStore) GradeScale(ctx context.Context) ([]models.Grade, error) {
	query := `
		SELECT id, name, min_marks, max_marks, points, remark, is_active, created_at, updated_at
		FROM grades
		WHERE is_active = true AND deleted_at IS NULL
		ORDER BY min_marks DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grades: %w", err)
	}
	defer rows.Close()

	var grades []models.Grade
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(
			&g.ID, &g.Name, &g.MinMarks, &g.MaxMarks, &g.Points,
			&g.Remark, &g.IsActive, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan grade: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// UpsertResult inserts or fully replaces the result row for the
// (student_id, subject_id, term_id) key inside one transaction. The unique
// index on that key backstops concurrent compiles.
func (s *PostgresStore) UpsertResult(ctx context.Context, result *models.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM results
		WHERE student_id = $1 AND subject_id = $2 AND term_id = $3 AND deleted_at IS NULL
	`, result.StudentID, result.SubjectID, result.TermID).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		err = tx.QueryRowContext(ctx, `
			INSERT INTO results (student_id, subject_id, term_id, ca_score, exam_score, total, grade, remark)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at
		`, result.StudentID, result.SubjectID, result.TermID,
			result.CAScore, result.ExamScore, result.Total, result.Grade, result.Remark,
		).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert result: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to check existing result: %w", err)
	default:
		result.ID = existingID
		err = tx.QueryRowContext(ctx, `
			UPDATE results
			SET ca_score = $1, exam_score = $2, total = $3, grade = $4, remark = $5, updated_at = NOW()
			WHERE id = $6 AND deleted_at IS NULL
			RETURNING created_at, updated_at
		`, result.CAScore, result.ExamScore, result.Total, result.Grade, result.Remark, existingID,
		).Scan(&result.CreatedAt, &result.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update result: %w", err)
		}
	}

	return tx.Commit()
}

// ResultsForStudent fetches a student's results for a term with subject
// details joined in.
func (s *PostgresStore) ResultsForStudent(ctx context.Context, studentID, termID string) ([]*models.Result, error) {
	query := `
		SELECT
			r.id, r.student_id, r.subject_id, r.term_id,
			r.ca_score, r.exam_score, r.total, r.grade, r.remark,
			r.created_at, r.updated_at,
			s.id, s.name, s.code, s.coefficient
		FROM results r
		JOIN subjects s ON r.subject_id = s.id
		WHERE r.student_id = $1 AND r.term_id = $2 AND r.deleted_at IS NULL
		ORDER BY s.name
	`

	rows, err := s.db.QueryContext(ctx, query, studentID, termID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		var result models.Result
		var subject models.Subject

		err := rows.Scan(
			&result.ID, &result.StudentID, &result.SubjectID, &result.TermID,
			&result.CAScore, &result.ExamScore, &result.Total, &result.Grade, &result.Remark,
			&result.CreatedAt, &result.UpdatedAt,
			&subject.ID, &subject.Name, &subject.Code, &subject.Coefficient,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		result.Subject = &subject
		results = append(results, &result)
	}
	return results, rows.Err()
}

// TotalsForSubject returns every student's total for a subject in a term.
func (s *PostgresStore) TotalsForSubject(ctx context.Context, subjectID, termID string) ([]float64, error) {
	query := `
		SELECT total FROM results
		WHERE subject_id = $1 AND term_id = $2 AND deleted_at IS NULL
	`

	rows, err := s.db.QueryContext(ctx, query, subjectID, termID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch totals: %w", err)
	}
	defer rows.Close()

	var totals []float64
	for rows.Next() {
		var total float64
		if err := rows.Scan(&total); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}
