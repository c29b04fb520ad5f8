package payments

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

// PostgresStore implements Store over database/sql. Atomicity comes from a
// single transaction per mutation; the balance check and decrement are one
// conditional UPDATE so concurrent settlements cannot race past each other.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a Postgres-backed payments store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FeeByID(ctx context.Context, feeID string) (*models.Fee, error) {
	query := `
		SELECT id, student_id, fee_type_id, term_id, title, amount, status, due_date, paid_at, created_at, updated_at
		FROM fees
		WHERE id = $1 AND deleted_at IS NULL
	`

	fee := &models.Fee{}
	var amount int64
	var status string
	err := s.db.QueryRowContext(ctx, query, feeID).Scan(
		&fee.ID, &fee.StudentID, &fee.FeeTypeID, &fee.TermID, &fee.Title,
		&amount, &status, &fee.DueDate.Time, &fee.PaidAt, &fee.CreatedAt, &fee.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrFeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fee: %w", err)
	}
	fee.Amount = models.Money(amount)
	fee.Status = models.FeeStatus(status)
	return fee, nil
}

func (s *PostgresStore) WalletByID(ctx context.Context, walletID string) (*models.Wallet, error) {
	return s.scanWallet(s.db.QueryRowContext(ctx, `
		SELECT id, student_id, balance, created_at, updated_at
		FROM wallets WHERE id = $1
	`, walletID))
}

func (s *PostgresStore) WalletByStudent(ctx context.Context, studentID string) (*models.Wallet, error) {
	return s.scanWallet(s.db.QueryRowContext(ctx, `
		SELECT id, student_id, balance, created_at, updated_at
		FROM wallets WHERE student_id = $1
	`, studentID))
}

func (s *PostgresStore) scanWallet(row *sql.Row) (*models.Wallet, error) {
	wallet := &models.Wallet{}
	var balance int64
	err := row.Scan(&wallet.ID, &wallet.StudentID, &balance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wallet: %w", err)
	}
	wallet.Balance = models.Money(balance)
	return wallet, nil
}

func (s *PostgresStore) CreateWallet(ctx context.Context, studentID string) (*models.Wallet, error) {
	wallet := &models.Wallet{StudentID: studentID}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO wallets (student_id, balance)
		VALUES ($1, 0)
		RETURNING id, created_at, updated_at
	`, studentID).Scan(&wallet.ID, &wallet.CreatedAt, &wallet.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrWalletExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return wallet, nil
}

// Credit increments the balance and writes the credit ledger entry in one
// transaction.
func (s *PostgresStore) Credit(ctx context.Context, walletID, reference, description string, amount models.Money) (*models.LedgerEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE wallets SET balance = balance + $1, updated_at = NOW() WHERE id = $2
	`, int64(amount), walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrWalletNotFound
	}

	entry, err := insertLedgerEntry(ctx, tx, &models.LedgerEntry{
		WalletID:    walletID,
		Reference:   reference,
		Amount:      amount,
		Direction:   models.DirectionCredit,
		Status:      models.LedgerSuccess,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entry, nil
}

// Settle applies the settlement writes atomically. The debit only applies
// when balance >= amount; a zero row count with an existing wallet means
// insufficient funds and nothing has been written.
func (s *PostgresStore) Settle(ctx context.Context, p SettleParams) (*models.FeePayment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var feeAmount int64
	err = tx.QueryRowContext(ctx, `
		SELECT amount FROM fees WHERE id = $1 AND deleted_at IS NULL FOR UPDATE
	`, p.FeeID).Scan(&feeAmount)
	if err == sql.ErrNoRows {
		return nil, ErrFeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fee: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE wallets SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
	`, int64(p.Amount), p.WalletID)
	if err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM wallets WHERE id = $1)`, p.WalletID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check wallet: %w", err)
		}
		if !exists {
			return nil, ErrWalletNotFound
		}
		return nil, ErrInsufficientFunds
	}

	if _, err := insertLedgerEntry(ctx, tx, &models.LedgerEntry{
		WalletID:    p.WalletID,
		Reference:   p.Reference,
		Amount:      p.Amount,
		Direction:   models.DirectionDebit,
		Status:      models.LedgerSuccess,
		Description: "Fee settlement",
	}); err != nil {
		return nil, err
	}

	payment, err := upsertFeePayment(ctx, tx, p, models.Money(feeAmount))
	if err != nil {
		return nil, err
	}

	feeStatus := models.FeePartial
	if payment.Status == models.PaymentCompleted {
		feeStatus = models.FeeCompleted
	}
	if feeStatus == models.FeeCompleted {
		_, err = tx.ExecContext(ctx, `
			UPDATE fees SET status = $1, paid_at = NOW(), updated_at = NOW() WHERE id = $2
		`, string(feeStatus), p.FeeID)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE fees SET status = $1, updated_at = NOW() WHERE id = $2
		`, string(feeStatus), p.FeeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update fee status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return payment, nil
}

func (s *PostgresStore) Entries(ctx context.Context, walletID string) ([]*models.LedgerEntry, error) {
	query := `
		SELECT id, wallet_id, reference, amount, direction, status, description, created_at
		FROM ledger_entries
		WHERE wallet_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		entry := &models.LedgerEntry{}
		var amount int64
		var direction, status string
		if err := rows.Scan(
			&entry.ID, &entry.WalletID, &entry.Reference, &amount,
			&direction, &status, &entry.Description, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entry.Amount = models.Money(amount)
		entry.Direction = models.LedgerDirection(direction)
		entry.Status = models.LedgerStatus(status)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) FeePayment(ctx context.Context, studentID, feeID string) (*models.FeePayment, error) {
	payment := &models.FeePayment{}
	var amountPaid int64
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, student_id, fee_id, amount_paid, status, created_at, updated_at
		FROM fee_payments
		WHERE student_id = $1 AND fee_id = $2
	`, studentID, feeID).Scan(
		&payment.ID, &payment.StudentID, &payment.FeeID,
		&amountPaid, &status, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fee payment: %w", err)
	}
	payment.AmountPaid = models.Money(amountPaid)
	payment.Status = models.PaymentStatus(status)
	return payment, nil
}

func insertLedgerEntry(ctx context.Context, tx *sql.Tx, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO ledger_entries (wallet_id, reference, amount, direction, status, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, entry.WalletID, entry.Reference, int64(entry.Amount),
		string(entry.Direction), string(entry.Status), entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateReference
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return entry, nil
}

func upsertFeePayment(ctx context.Context, tx *sql.Tx, p SettleParams, feeAmount models.Money) (*models.FeePayment, error) {
	payment := &models.FeePayment{StudentID: p.StudentID, FeeID: p.FeeID}

	var existingID string
	var paid int64
	err := tx.QueryRowContext(ctx, `
		SELECT id, amount_paid FROM fee_payments
		WHERE student_id = $1 AND fee_id = $2
		FOR UPDATE
	`, p.StudentID, p.FeeID).Scan(&existingID, &paid)

	switch {
	case err == sql.ErrNoRows:
		payment.AmountPaid = p.Amount
		payment.Status = paymentStatusFor(payment.AmountPaid, feeAmount)
		err = tx.QueryRowContext(ctx, `
			INSERT INTO fee_payments (student_id, fee_id, amount_paid, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`, p.StudentID, p.FeeID, int64(payment.AmountPaid), string(payment.Status),
		).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert fee payment: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to check fee payment: %w", err)
	default:
		payment.ID = existingID
		payment.AmountPaid = models.Money(paid) + p.Amount
		payment.Status = paymentStatusFor(payment.AmountPaid, feeAmount)
		err = tx.QueryRowContext(ctx, `
			UPDATE fee_payments
			SET amount_paid = $1, status = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING created_at, updated_at
		`, int64(payment.AmountPaid), string(payment.Status), existingID,
		).Scan(&payment.CreatedAt, &payment.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to update fee payment: %w", err)
		}
	}

	return payment, nil
}

func paymentStatusFor(amountPaid, feeAmount models.Money) models.PaymentStatus {
	if amountPaid >= feeAmount {
		return models.PaymentCompleted
	}
	return models.PaymentPartial
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
