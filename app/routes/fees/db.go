package fees

import (
	"database/sql"
	"strconv"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

// FeeFilter narrows the fee listing. Zero values mean "no filter".
type FeeFilter struct {
	StudentID string
	TermID    string
	Status    string
}

func getFees(db *sql.DB, filter FeeFilter) ([]models.Fee, error) {
	query := `
		SELECT f.id, f.student_id, f.fee_type_id, f.term_id, f.title, f.amount,
		       f.status, f.due_date, f.paid_at, f.created_at, f.updated_at
		FROM fees f
		WHERE f.deleted_at IS NULL`
	var args []interface{}

	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		query += " AND f.student_id = $" + strconv.Itoa(len(args))
	}
	if filter.TermID != "" {
		args = append(args, filter.TermID)
		query += " AND f.term_id = $" + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " AND f.status = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY f.due_date ASC, f.created_at ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []models.Fee
	for rows.Next() {
		var f models.Fee
		if err := rows.Scan(&f.ID, &f.StudentID, &f.FeeTypeID, &f.TermID, &f.Title, &f.Amount,
			&f.Status, &f.DueDate.Time, &f.PaidAt, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}

func createFee(db *sql.DB, f *models.Fee) error {
	return db.QueryRow(`
		INSERT INTO fees (student_id, fee_type_id, term_id, title, amount, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at, updated_at`,
		f.StudentID, f.FeeTypeID, f.TermID, f.Title, f.Amount, f.DueDate.Time).
		Scan(&f.ID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
}

func deleteFee(db *sql.DB, feeID string) error {
	result, err := db.Exec(`
		UPDATE fees SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND status = 'pending'`, feeID)
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

// FeeStats summarizes the fee book, amounts in minor units.
type FeeStats struct {
	TotalFees      int          `json:"total_fees"`
	TotalBilled    models.Money `json:"total_billed"`
	TotalCollected models.Money `json:"total_collected"`
	Pending        int          `json:"pending"`
	Partial        int          `json:"partial"`
	Completed      int          `json:"completed"`
	Overdue        int          `json:"overdue"`
}

func getFeeStats(db *sql.DB) (*FeeStats, error) {
	var stats FeeStats
	err := db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'partial'),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'overdue')
		FROM fees
		WHERE deleted_at IS NULL`).
		Scan(&stats.TotalFees, &stats.TotalBilled, &stats.Pending, &stats.Partial, &stats.Completed, &stats.Overdue)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COALESCE(SUM(p.amount_paid), 0)
		FROM fee_payments p
		JOIN fees f ON f.id = p.fee_id
		WHERE f.deleted_at IS NULL`).
		Scan(&stats.TotalCollected)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func getFeeTypes(db *sql.DB) ([]models.FeeType, error) {
	rows, err := db.Query(`
		SELECT id, name, code, is_active, created_at, updated_at
		FROM fee_types
		WHERE deleted_at IS NULL
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.FeeType
	for rows.Next() {
		var t models.FeeType
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func createFeeType(db *sql.DB, t *models.FeeType) error {
	return db.QueryRow(`
		INSERT INTO fee_types (name, code, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		t.Name, t.Code, t.IsActive).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}
