package models

import "time"

// Wallet holds prepaid funds for a student. Balance is in minor units and is
// only ever mutated through the atomic credit/debit operations in the payments
// store; the schema enforces balance >= 0 as a backstop.
type Wallet struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID string    `json:"student_id" gorm:"uniqueIndex;not null;type:uuid" validate:"required,uuid"`
	Balance   Money     `json:"balance" gorm:"not null;default:0;type:bigint"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Student   *Student  `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
