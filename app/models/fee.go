package models

import "time"

// Fee represents a charge for a specific student. Amount is in minor units.
// Status is recomputed from the cumulative amount paid inside the settlement
// transaction; the scheduler flips unpaid fees past their due date to overdue.
type Fee struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID string     `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeTypeID *string    `json:"fee_type_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	TermID    *string    `json:"term_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	Title     string     `json:"title" gorm:"not null" validate:"required"`
	Amount    Money      `json:"amount" gorm:"not null;type:bigint" validate:"required"`
	Status    FeeStatus  `json:"status" gorm:"not null;default:'pending';type:varchar(20)"`
	DueDate   CustomDate `json:"due_date" gorm:"not null;type:date" validate:"required"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Student   *Student   `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	FeeType   *FeeType   `json:"fee_type,omitempty" gorm:"foreignKey:FeeTypeID;references:ID"`
}

// IsFullyPaid returns true if the fee has been settled in full.
func (f *Fee) IsFullyPaid() bool {
	return f.Status == FeeCompleted
}
