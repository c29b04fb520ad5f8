package models

import "time"

// Grade represents one band of the grading scale, e.g. A covers 80-89.
// The scale is scanned in ascending display order and the first band whose
// range contains the total wins.
type Grade struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	MinMarks  float64    `json:"min_marks" gorm:"not null;type:decimal(5,2)" validate:"gte=0"`
	MaxMarks  float64    `json:"max_marks" gorm:"not null;type:decimal(5,2)" validate:"gte=0"`
	Points    float64    `json:"points" gorm:"default:0;type:decimal(5,2)" validate:"gte=0"`
	Remark    string     `json:"remark"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
