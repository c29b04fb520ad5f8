package models

import "time"

// LedgerEntry is an immutable record of a single funds movement against a
// wallet. Entries are never updated or deleted; corrections are recorded as
// opposite-direction entries.
type LedgerEntry struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	WalletID    string          `json:"wallet_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Reference   string          `json:"reference" gorm:"uniqueIndex;not null" validate:"required"`
	Amount      Money           `json:"amount" gorm:"not null;type:bigint" validate:"required"`
	Direction   LedgerDirection `json:"direction" gorm:"not null;type:varchar(10)"`
	Status      LedgerStatus    `json:"status" gorm:"not null;type:varchar(10)"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
}
