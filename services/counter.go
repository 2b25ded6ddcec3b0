package services

import (
	"errors"
	"fmt"

	"lotuslight/models"

	"gorm.io/gorm"
)

// Counter columns on the user document
const (
	ColumnClassesCount  = "classes_count"
	ColumnStudentsCount = "students_count"
)

// ErrNotFound is returned when a counter target document does not exist.
var ErrNotFound = errors.New("document not found")

var userCounterColumns = map[string]bool{
	ColumnClassesCount:  true,
	ColumnStudentsCount: true,
}

// IncrementClassEnrolled bumps a class's enrolled count by delta as a single
// UPDATE statement. Concurrent settlements against a popular class contend
// here, so the increment must never be a read-modify-write.
func IncrementClassEnrolled(db *gorm.DB, classID uint, delta int) error {
	result := db.Model(&models.ClassOffering{}).
		Where("id = ? AND is_deleted = false", classID).
		UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementUserCounter bumps an instructor aggregate (classes_count or
// students_count) by delta, keyed by email. Single UPDATE, same contention
// rule as IncrementClassEnrolled.
func IncrementUserCounter(db *gorm.DB, email, column string, delta int) error {
	if !userCounterColumns[column] {
		return fmt.Errorf("unknown counter column: %s", column)
	}
	result := db.Model(&models.User{}).
		Where("email = ? AND is_deleted = false", email).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
