package models

import "time"

// Result stores a student's compiled marks for a subject in a term.
// Rows are keyed by (student_id, subject_id, term_id); recompiling the same
// key fully replaces the stored scores, total and grade.
type Result struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID string     `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SubjectID string     `json:"subject_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TermID    string     `json:"term_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CAScore   float64    `json:"ca_score" gorm:"not null;type:decimal(5,2)" validate:"gte=0,lte=40"`
	ExamScore float64    `json:"exam_score" gorm:"not null;type:decimal(5,2)" validate:"gte=0,lte=60"`
	Total     float64    `json:"total" gorm:"not null;type:decimal(5,2)" validate:"gte=0,lte=100"`
	Grade     string     `json:"grade" gorm:"not null"`
	Remark    string     `json:"remark"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Student   *Student   `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Subject   *Subject   `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`
	Term      *Term      `json:"term,omitempty" gorm:"foreignKey:TermID;references:ID"`
}
