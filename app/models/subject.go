package models

import "time"

// Subject represents a taught subject. Coefficient is the weight the subject
// carries when results are aggregated into a CGPA.
type Subject struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name        string     `json:"name" gorm:"not null" validate:"required"`
	Code        string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Coefficient int        `json:"coefficient" gorm:"not null;default:1" validate:"gte=0"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
