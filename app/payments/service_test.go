package payments

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

const (
	walletOne  = "7c3e0d2f-0000-4000-8000-000000000001"
	studentOne = "7c3e0d2f-0000-4000-8000-000000000002"
	feeTuition = "7c3e0d2f-0000-4000-8000-00000000000a"
)

// seeds a wallet holding 1000.00 and a tuition fee of 600.00
func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	store.AddWallet(&models.Wallet{ID: walletOne, StudentID: studentOne, Balance: 100000})
	store.AddFee(&models.Fee{ID: feeTuition, StudentID: studentOne, Title: "Tuition", Amount: 60000})
	return NewService(store), store
}

func TestSettleFeePartialPayment(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	receipt, err := svc.SettleFee(ctx, walletOne, studentOne, feeTuition, 25000)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(receipt.Reference, "PAY-"))
	assert.Equal(t, models.Money(25000), receipt.Payment.AmountPaid)
	assert.Equal(t, models.PaymentPartial, receipt.Payment.Status)
	assert.Equal(t, models.FeePartial, receipt.FeeStatus)

	wallet, err := store.WalletByID(ctx, walletOne)
	require.NoError(t, err)
	assert.Equal(t, models.Money(75000), wallet.Balance)

	entries, err := store.Entries(ctx, walletOne)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, receipt.Reference, entries[0].Reference)
	assert.Equal(t, models.DirectionDebit, entries[0].Direction)
	assert.Equal(t, models.LedgerSuccess, entries[0].Status)
	assert.Equal(t, models.Money(25000), entries[0].Amount)
}

func TestSettleFeeCumulativeCompletion(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.SettleFee(ctx, walletOne, studentOne, feeTuition, 25000)
	require.NoError(t, err)

	receipt, err := svc.SettleFee(ctx, walletOne, studentOne, feeTuition, 35000)
	require.NoError(t, err)

	// cumulative 60000 >= fee amount, so the payment completes
	assert.Equal(t, models.Money(60000), receipt.Payment.AmountPaid)
	assert.Equal(t, models.PaymentCompleted, receipt.Payment.Status)
	assert.Equal(t, models.FeeCompleted, receipt.FeeStatus)

	// still exactly one cumulative payment row, two ledger entries
	payment, err := store.FeePayment(ctx, studentOne, feeTuition)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, models.Money(60000), payment.AmountPaid)
	assert.Equal(t, 2, store.EntryCount())

	fee, err := store.FeeByID(ctx, feeTuition)
	require.NoError(t, err)
	assert.True(t, fee.IsFullyPaid())
	assert.NotNil(t, fee.PaidAt)
}

func TestSettleFeeInsufficientFundsLeavesStateUntouched(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.SettleFee(ctx, walletOne, studentOne, feeTuition, 100001)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	wallet, err := store.WalletByID(ctx, walletOne)
	require.NoError(t, err)
	assert.Equal(t, models.Money(100000), wallet.Balance)

	payment, err := store.FeePayment(ctx, studentOne, feeTuition)
	require.NoError(t, err)
	assert.Nil(t, payment)
	assert.Equal(t, 0, store.EntryCount())
}

func TestSettleFeePreconditionFailures(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SettleFee(ctx, walletOne, studentOne, feeTuition, 0)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "amount", vErr.Field)

	_, err = svc.SettleFee(ctx, walletOne, studentOne, feeTuition, -500)
	require.ErrorAs(t, err, &vErr)

	_, err = svc.SettleFee(ctx, walletOne, studentOne, "7c3e0d2f-0000-4000-8000-0000000000ff", 1000)
	assert.ErrorIs(t, err, ErrFeeNotFound)

	_, err = svc.SettleFee(ctx, "7c3e0d2f-0000-4000-8000-0000000000fe", studentOne, feeTuition, 1000)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestConcurrentSettlementsNeverOverdraw(t *testing.T) {
	store := NewMemoryStore()
	store.AddWallet(&models.Wallet{ID: walletOne, StudentID: studentOne, Balance: 50000})
	store.AddFee(&models.Fee{ID: feeTuition, StudentID: studentOne, Title: "Tuition", Amount: 200000})
	svc := NewService(store)
	ctx := context.Background()

	// 20 concurrent settlements of 10000 against a balance of 50000:
	// at most 5 may succeed
	const workers = 20
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SettleFee(ctx, walletOne, studentOne, feeTuition, 10000)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 5, succeeded)

	wallet, err := store.WalletByID(ctx, walletOne)
	require.NoError(t, err)
	assert.Equal(t, models.Money(0), wallet.Balance)
	assert.GreaterOrEqual(t, int64(wallet.Balance), int64(0))

	payment, err := store.FeePayment(ctx, studentOne, feeTuition)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, models.Money(50000), payment.AmountPaid)
	assert.Equal(t, 5, store.EntryCount())
}

func TestTopUp(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	entry, err := svc.TopUp(ctx, walletOne, 5000, "Cash deposit")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(entry.Reference, "TOP-"))
	assert.Equal(t, models.DirectionCredit, entry.Direction)
	assert.Equal(t, models.LedgerSuccess, entry.Status)

	wallet, err := store.WalletByID(ctx, walletOne)
	require.NoError(t, err)
	assert.Equal(t, models.Money(105000), wallet.Balance)

	_, err = svc.TopUp(ctx, walletOne, 0, "")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestOpenWallet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	wallet, err := svc.OpenWallet(ctx, "7c3e0d2f-0000-4000-8000-000000000099")
	require.NoError(t, err)
	assert.Equal(t, models.Money(0), wallet.Balance)

	_, err = svc.OpenWallet(ctx, "7c3e0d2f-0000-4000-8000-000000000099")
	assert.ErrorIs(t, err, ErrWalletExists)
}

func TestStatementNewestFirst(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.TopUp(ctx, walletOne, 1000, "first")
	require.NoError(t, err)
	_, err = svc.SettleFee(ctx, walletOne, studentOne, feeTuition, 500)
	require.NoError(t, err)

	entries, err := svc.Statement(ctx, walletOne)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.DirectionDebit, entries[0].Direction)
	assert.Equal(t, models.DirectionCredit, entries[1].Direction)

	_, err = svc.Statement(ctx, "7c3e0d2f-0000-4000-8000-0000000000fd")
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestNewReferenceShape(t *testing.T) {
	ref := NewReference("PAY")
	assert.True(t, strings.HasPrefix(ref, "PAY-"))
	assert.Len(t, ref, 16)
	assert.NotEqual(t, ref, NewReference("PAY"))
}
