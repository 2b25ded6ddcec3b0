package models

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentRecord is the append-only enrollment ledger, written 1:1 with
// the payment record that settled it. The unique index keeps a user from
// being enrolled in the same class twice.
type EnrollmentRecord struct {
	gorm.Model
	UserEmail       string    `gorm:"uniqueIndex:idx_enrollment_user_class;not null" json:"userEmail"`
	ClassID         uint      `gorm:"uniqueIndex:idx_enrollment_user_class;not null" json:"classId"`
	ClassName       string    `json:"className"`
	Image           string    `json:"image"`
	InstructorName  string    `json:"instructorName"`
	InstructorEmail string    `json:"instructorEmail"`
	EnrolledAt      time.Time `gorm:"not null" json:"enrolledAt"`
}

func (EnrollmentRecord) TableName() string {
	return "enrolled_classes"
}
