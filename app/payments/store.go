package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

var (
	// ErrFeeNotFound is returned when the referenced fee does not exist.
	ErrFeeNotFound = errors.New("fee not found")

	// ErrWalletNotFound is returned when the referenced wallet does not exist.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrWalletExists is returned when creating a second wallet for a student.
	ErrWalletExists = errors.New("student already has a wallet")

	// ErrInsufficientFunds is returned when the wallet balance cannot cover
	// the requested amount. No partial state is ever produced on this path.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateReference is returned when a generated settlement reference
	// collides with an existing ledger entry.
	ErrDuplicateReference = errors.New("duplicate ledger reference")
)

// ValidationError reports a malformed settlement or top-up request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// TransactionError wraps a failure of the atomic write itself. The caller may
// assume no partial effect occurred and retry the whole operation.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s transaction failed: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// SettleParams carries everything the store needs to apply one settlement
// atomically.
type SettleParams struct {
	WalletID  string
	StudentID string
	FeeID     string
	Reference string
	Amount    models.Money
}

// Store is the persistence collaborator for wallet and fee settlement
// operations. Every mutation of a wallet balance or a fee payment goes
// through it; implementations must make Credit and Settle all-or-nothing.
type Store interface {
	FeeByID(ctx context.Context, feeID string) (*models.Fee, error)
	WalletByID(ctx context.Context, walletID string) (*models.Wallet, error)
	WalletByStudent(ctx context.Context, studentID string) (*models.Wallet, error)
	CreateWallet(ctx context.Context, studentID string) (*models.Wallet, error)

	// Credit atomically increments the wallet balance and records a credit
	// ledger entry.
	Credit(ctx context.Context, walletID, reference, description string, amount models.Money) (*models.LedgerEntry, error)

	// Settle applies one settlement as an indivisible unit: a conditional
	// wallet debit (applied only when balance >= amount, so the balance
	// check and decrement are a single statement and cannot race), a
	// success ledger entry, the cumulative fee-payment upsert and the fee
	// status update. Returns ErrInsufficientFunds without any state change
	// when the debit does not apply.
	Settle(ctx context.Context, p SettleParams) (*models.FeePayment, error)

	// Entries lists a wallet's ledger entries, newest first.
	Entries(ctx context.Context, walletID string) ([]*models.LedgerEntry, error)

	FeePayment(ctx context.Context, studentID, feeID string) (*models.FeePayment, error)
}
