package models

import (
	"gorm.io/gorm"
)

// Class approval status
const (
	ClassStatusPending  = "pending"
	ClassStatusApproved = "approved"
	ClassStatusDenied   = "denied"
)

// ClassOffering is created by an instructor and approved or denied by an
// admin. EnrolledCount is written only through the counter service.
type ClassOffering struct {
	gorm.Model
	Name            string  `json:"name"`
	Image           string  `json:"image"`
	InstructorName  string  `json:"instructorName"`
	InstructorEmail string  `gorm:"index;not null" json:"instructorEmail"`
	Seats           int     `gorm:"default:0" json:"seats"`
	EnrolledCount   int     `gorm:"default:0" json:"enrolledCount"`
	Price           float64 `gorm:"not null" json:"price"`
	Status          string  `gorm:"default:'pending'" json:"status"`
	Feedback        string  `gorm:"type:text" json:"feedback"`
	IsDeleted       bool    `gorm:"default:false" json:"-"`
}

func (ClassOffering) TableName() string {
	return "classes"
}
