package services

import (
	"database/sql"
	"log"
)

// MarkOverdueFees flips unpaid fees past their due date to overdue. Fees that
// are already completed (or soft-deleted) are left alone, so the nightly pass
// is safe to run more than once.
func MarkOverdueFees(db *sql.DB) error {
	log.Println("Starting overdue fee check...")

	result, err := db.Exec(`
		UPDATE fees
		SET status = 'overdue', updated_at = NOW()
		WHERE due_date < CURRENT_DATE
		AND status IN ('pending', 'partial')
		AND deleted_at IS NULL
	`)
	if err != nil {
		return err
	}

	count, err := result.RowsAffected()
	if err != nil {
		return err
	}

	log.Printf("Overdue fee check completed. Marked %d fees.", count)
	return nil
}
