package services

import (
	"log"

	"lotuslight/models"
)

// SweepUnfinished finds payment records that never got their enrollment
// written (a settle crashed between the anchor and the enrollment step)
// and completes steps 3-5 for each. Returns the number of settlements
// completed.
func (s *Settler) SweepUnfinished() (int, error) {
	var payments []models.PaymentRecord
	err := s.db.
		Where("NOT EXISTS (SELECT 1 FROM enrolled_classes e WHERE e.user_email = payments.user_email AND e.class_id = payments.class_id AND e.deleted_at IS NULL)").
		Find(&payments).Error
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range payments {
		if _, err := s.resume(&payments[i]); err != nil {
			log.Printf("[RECOVERY-SWEEP] Error completing settlement for payment %d: %v", payments[i].ID, err)
			continue
		}
		completed++
	}
	return completed, nil
}
