package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

// SettlementReceipt is returned to the caller after a successful settlement.
type SettlementReceipt struct {
	Reference string             `json:"reference"`
	Payment   *models.FeePayment `json:"payment"`
	FeeStatus models.FeeStatus   `json:"fee_status"`
}

// Service coordinates wallet top-ups and fee settlements over an injected
// store.
type Service struct {
	store Store
}

// NewService returns a payments service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// NewReference generates a short human-readable reference such as
// "PAY-1B9F04C27A3D". Uniqueness is enforced by the ledger's unique index;
// a collision surfaces as a TransactionError rather than being retried here.
func NewReference(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + "-" + raw[:12]
}

// SettleFee debits the wallet and applies the amount against the fee. All
// precondition failures (bad amount, missing fee or wallet, insufficient
// funds) are reported before any mutation is attempted; the store then
// applies the four writes as one atomic unit.
func (s *Service) SettleFee(ctx context.Context, walletID, studentID, feeID string, amount models.Money) (*SettlementReceipt, error) {
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	fee, err := s.store.FeeByID(ctx, feeID)
	if err != nil {
		return nil, err
	}

	wallet, err := s.store.WalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.Balance < amount {
		return nil, ErrInsufficientFunds
	}

	reference := NewReference("PAY")
	payment, err := s.store.Settle(ctx, SettleParams{
		WalletID:  walletID,
		StudentID: studentID,
		FeeID:     feeID,
		Reference: reference,
		Amount:    amount,
	})
	if err != nil {
		// The conditional debit closes the window between the balance
		// check above and the write; a concurrent settlement may still
		// have drained the wallet first.
		if errors.Is(err, ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, &TransactionError{Op: "settlement", Err: err}
	}

	status := models.FeePartial
	if payment.AmountPaid >= fee.Amount {
		status = models.FeeCompleted
	}
	return &SettlementReceipt{
		Reference: reference,
		Payment:   payment,
		FeeStatus: status,
	}, nil
}

// Fee returns a single fee by ID.
func (s *Service) Fee(ctx context.Context, feeID string) (*models.Fee, error) {
	return s.store.FeeByID(ctx, feeID)
}

// TopUp credits a wallet and records the funding ledger entry.
func (s *Service) TopUp(ctx context.Context, walletID string, amount models.Money, description string) (*models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if _, err := s.store.WalletByID(ctx, walletID); err != nil {
		return nil, err
	}

	entry, err := s.store.Credit(ctx, walletID, NewReference("TOP"), description, amount)
	if err != nil {
		return nil, &TransactionError{Op: "top-up", Err: err}
	}
	return entry, nil
}

// OpenWallet creates a wallet for a student with a zero balance.
func (s *Service) OpenWallet(ctx context.Context, studentID string) (*models.Wallet, error) {
	return s.store.CreateWallet(ctx, studentID)
}

// Balance returns the wallet's current state.
func (s *Service) Balance(ctx context.Context, walletID string) (*models.Wallet, error) {
	return s.store.WalletByID(ctx, walletID)
}

// Statement lists the wallet's ledger entries, newest first.
func (s *Service) Statement(ctx context.Context, walletID string) ([]*models.LedgerEntry, error) {
	if _, err := s.store.WalletByID(ctx, walletID); err != nil {
		return nil, err
	}
	entries, err := s.store.Entries(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}
	return entries, nil
}
