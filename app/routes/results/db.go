package results

import (
	"database/sql"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

func getGrades(db *sql.DB) ([]models.Grade, error) {
	rows, err := db.Query(`
		SELECT id, name, min_marks, max_marks, points, remark, is_active, created_at, updated_at
		FROM grades
		WHERE deleted_at IS NULL
		ORDER BY min_marks DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []models.Grade
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(&g.ID, &g.Name, &g.MinMarks, &g.MaxMarks, &g.Points, &g.Remark, &g.IsActive, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

func getGradeByID(db *sql.DB, gradeID string) (*models.Grade, error) {
	var g models.Grade
	err := db.QueryRow(`
		SELECT id, name, min_marks, max_marks, points, remark, is_active, created_at, updated_at
		FROM grades
		WHERE id = $1 AND deleted_at IS NULL`, gradeID).
		Scan(&g.ID, &g.Name, &g.MinMarks, &g.MaxMarks, &g.Points, &g.Remark, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func createGrade(db *sql.DB, g *models.Grade) error {
	return db.QueryRow(`
		INSERT INTO grades (name, min_marks, max_marks, points, remark, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		g.Name, g.MinMarks, g.MaxMarks, g.Points, g.Remark, g.IsActive).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func updateGrade(db *sql.DB, g *models.Grade) error {
	result, err := db.Exec(`
		UPDATE grades
		SET name = $1, min_marks = $2, max_marks = $3, points = $4, remark = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL`,
		g.Name, g.MinMarks, g.MaxMarks, g.Points, g.Remark, g.IsActive, g.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func deleteGrade(db *sql.DB, gradeID string) error {
	result, err := db.Exec(`
		UPDATE grades SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, gradeID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
