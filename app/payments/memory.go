package payments

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

// MemoryStore is an in-memory Store used in tests. A single mutex serializes
// every mutation, so Credit and Settle are atomic the way the Postgres
// transaction is.
type MemoryStore struct {
	mu       sync.Mutex
	fees     map[string]*models.Fee
	wallets  map[string]*models.Wallet
	payments map[string]*models.FeePayment // keyed by student|fee
	entries  []*models.LedgerEntry
	refs     map[string]bool
}

// NewMemoryStore returns an empty in-memory payments store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		fees:     make(map[string]*models.Fee),
		wallets:  make(map[string]*models.Wallet),
		payments: make(map[string]*models.FeePayment),
		refs:     make(map[string]bool),
	}
}

// AddFee seeds a fee.
func (s *MemoryStore) AddFee(fee *models.Fee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fee.Status == "" {
		fee.Status = models.FeePending
	}
	s.fees[fee.ID] = fee
}

// AddWallet seeds a wallet with a balance.
func (s *MemoryStore) AddWallet(wallet *models.Wallet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets[wallet.ID] = wallet
}

func paymentKey(studentID, feeID string) string {
	return studentID + "|" + feeID
}

func (s *MemoryStore) FeeByID(ctx context.Context, feeID string) (*models.Fee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fee, ok := s.fees[feeID]
	if !ok {
		return nil, ErrFeeNotFound
	}
	copied := *fee
	return &copied, nil
}

func (s *MemoryStore) WalletByID(ctx context.Context, walletID string) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallet, ok := s.wallets[walletID]
	if !ok {
		return nil, ErrWalletNotFound
	}
	copied := *wallet
	return &copied, nil
}

func (s *MemoryStore) WalletByStudent(ctx context.Context, studentID string) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wallets {
		if w.StudentID == studentID {
			copied := *w
			return &copied, nil
		}
	}
	return nil, ErrWalletNotFound
}

func (s *MemoryStore) CreateWallet(ctx context.Context, studentID string) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wallets {
		if w.StudentID == studentID {
			return nil, ErrWalletExists
		}
	}
	now := time.Now()
	wallet := &models.Wallet{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.wallets[wallet.ID] = wallet
	copied := *wallet
	return &copied, nil
}

func (s *MemoryStore) Credit(ctx context.Context, walletID, reference, description string, amount models.Money) (*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[walletID]
	if !ok {
		return nil, ErrWalletNotFound
	}
	if s.refs[reference] {
		return nil, ErrDuplicateReference
	}

	wallet.Balance += amount
	wallet.UpdatedAt = time.Now()

	entry := &models.LedgerEntry{
		ID:          uuid.New().String(),
		WalletID:    walletID,
		Reference:   reference,
		Amount:      amount,
		Direction:   models.DirectionCredit,
		Status:      models.LedgerSuccess,
		Description: description,
		CreatedAt:   time.Now(),
	}
	s.entries = append(s.entries, entry)
	s.refs[reference] = true

	copied := *entry
	return &copied, nil
}

func (s *MemoryStore) Settle(ctx context.Context, p SettleParams) (*models.FeePayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fee, ok := s.fees[p.FeeID]
	if !ok {
		return nil, ErrFeeNotFound
	}
	wallet, ok := s.wallets[p.WalletID]
	if !ok {
		return nil, ErrWalletNotFound
	}
	if s.refs[p.Reference] {
		return nil, ErrDuplicateReference
	}

	// conditional debit: apply only when the balance covers the amount
	if wallet.Balance < p.Amount {
		return nil, ErrInsufficientFunds
	}
	wallet.Balance -= p.Amount
	wallet.UpdatedAt = time.Now()

	s.entries = append(s.entries, &models.LedgerEntry{
		ID:          uuid.New().String(),
		WalletID:    p.WalletID,
		Reference:   p.Reference,
		Amount:      p.Amount,
		Direction:   models.DirectionDebit,
		Status:      models.LedgerSuccess,
		Description: "Fee settlement",
		CreatedAt:   time.Now(),
	})
	s.refs[p.Reference] = true

	now := time.Now()
	key := paymentKey(p.StudentID, p.FeeID)
	payment, ok := s.payments[key]
	if !ok {
		payment = &models.FeePayment{
			ID:        uuid.New().String(),
			StudentID: p.StudentID,
			FeeID:     p.FeeID,
			CreatedAt: now,
		}
		s.payments[key] = payment
	}
	payment.AmountPaid += p.Amount
	payment.Status = paymentStatusFor(payment.AmountPaid, fee.Amount)
	payment.UpdatedAt = now

	if payment.Status == models.PaymentCompleted {
		fee.Status = models.FeeCompleted
		fee.PaidAt = &now
	} else {
		fee.Status = models.FeePartial
	}

	copied := *payment
	return &copied, nil
}

func (s *MemoryStore) Entries(ctx context.Context, walletID string) ([]*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// reverse insertion order, newest first
	var out []*models.LedgerEntry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].WalletID == walletID {
			copied := *s.entries[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *MemoryStore) FeePayment(ctx context.Context, studentID, feeID string) (*models.FeePayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.payments[paymentKey(studentID, feeID)]
	if !ok {
		return nil, nil
	}
	copied := *payment
	return &copied, nil
}

// EntryCount reports the number of ledger entries, for test assertions.
func (s *MemoryStore) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
