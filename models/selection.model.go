package models

import (
	"gorm.io/gorm"
)

// SelectionEntry is a user's pending intent to buy one class. Price is a
// snapshot taken at selection time. The row is deleted exactly once: by the
// settlement pipeline, or by the user cancelling.
type SelectionEntry struct {
	gorm.Model
	UserEmail      string  `gorm:"index;not null" json:"userEmail"`
	ClassID        uint    `gorm:"not null" json:"classId"`
	ClassName      string  `json:"className"`
	Image          string  `json:"image"`
	InstructorName string  `json:"instructorName"`
	Price          float64 `gorm:"not null" json:"price"`
}

func (SelectionEntry) TableName() string {
	return "selected_classes"
}
