package models

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// FeeStatus defines the settlement status of a fee.
type FeeStatus string

const (
	FeePending   FeeStatus = "pending"
	FeePartial   FeeStatus = "partial"
	FeeCompleted FeeStatus = "completed"
	FeeOverdue   FeeStatus = "overdue"
)

// PaymentStatus defines the status of a fee payment record.
type PaymentStatus string

const (
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
)

// LedgerDirection defines whether a ledger entry credits or debits a wallet.
type LedgerDirection string

const (
	DirectionCredit LedgerDirection = "credit"
	DirectionDebit  LedgerDirection = "debit"
)

// LedgerStatus defines the lifecycle status of a ledger entry. Entries are
// immutable once written; pending entries move to success or failed and
// stay there.
type LedgerStatus string

const (
	LedgerPending LedgerStatus = "pending"
	LedgerSuccess LedgerStatus = "success"
	LedgerFailed  LedgerStatus = "failed"
)
