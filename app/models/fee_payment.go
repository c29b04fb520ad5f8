package models

import "time"

// FeePayment tracks the cumulative amount settled against one fee for one
// student. There is at most one row per (student_id, fee_id); each settlement
// increments AmountPaid and recomputes Status.
type FeePayment struct {
	ID         string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID  string        `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeID      string        `json:"fee_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AmountPaid Money         `json:"amount_paid" gorm:"not null;type:bigint" validate:"gte=0"`
	Status     PaymentStatus `json:"status" gorm:"not null;type:varchar(20)"`
	CreatedAt  time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	Fee        *Fee          `json:"fee,omitempty" gorm:"foreignKey:FeeID;references:ID"`
}
