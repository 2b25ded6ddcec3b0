package services

import (
	"errors"
	"fmt"
	"time"

	"lotuslight/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Settlement errors
var (
	ErrSelectionNotFound   = errors.New("selection not found")
	ErrClassNotFound       = errors.New("class not found")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed by gateway")
)

// Settlement steps, in execution order. The payment record is the anchor:
// once it exists the settlement is committed and every retry finishes the
// remaining steps instead of starting over.
const (
	StepPayment    = "payment"
	StepEnrollment = "enrollment"
	StepCounters   = "counters"
	StepSelection  = "selection"
)

// PartialError reports a settlement that failed after the payment anchor
// check passed. A retry with the same selection and transaction reference
// is safe and converges on the committed state.
type PartialError struct {
	Step string
	Err  error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("settlement incomplete at %s step: %v", e.Step, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// PaymentVerifier reports whether the gateway has confirmed a transaction
// reference. A nil verifier on the Settler disables gateway-side
// verification and trusts the client-supplied reference.
type PaymentVerifier interface {
	PaymentSucceeded(transactionRef string) (bool, error)
}

// SettleRequest identifies one settlement attempt. UserEmail and ClassID
// are part of the request so a retry can be recognized even after the
// selection entry has been deleted.
type SettleRequest struct {
	SelectionID    uint
	TransactionRef string
	UserEmail      string
	ClassID        uint

	// GatewayResponse is the raw gateway payload the client received when
	// it confirmed the payment, kept on the ledger row for audits.
	GatewayResponse []byte
}

// Settler drives the selection -> payment + enrollment + counters
// transition. The store offers no transaction spanning all four
// collections, so each step is ordered and idempotent: payment record
// first (the durable anchor), enrollment and counters next, selection
// cleanup last.
type Settler struct {
	db       *gorm.DB
	verifier PaymentVerifier

	// Currency recorded on payment ledger rows.
	Currency string
}

func NewSettler(db *gorm.DB, verifier PaymentVerifier) *Settler {
	return &Settler{db: db, verifier: verifier, Currency: "usd"}
}

// Settle finalizes payment and enrollment for a selection. It is safe to
// call any number of times with the same request: the first call does the
// work, every later call returns the already-created enrollment record.
func (s *Settler) Settle(req SettleRequest) (*models.EnrollmentRecord, error) {
	// Step 1: idempotency check. The ledger row keyed by
	// (userEmail, classId, transactionRef) is the settlement's identity.
	var payment models.PaymentRecord
	err := s.db.Where("user_email = ? AND class_id = ? AND transaction_ref = ?",
		req.UserEmail, req.ClassID, req.TransactionRef).First(&payment).Error
	if err == nil {
		// Already settled, or crashed mid-way on a previous attempt.
		return s.resume(&payment)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Preconditions: the selection must still exist and match the request.
	var selection models.SelectionEntry
	err = s.db.Where("id = ? AND user_email = ? AND class_id = ?",
		req.SelectionID, req.UserEmail, req.ClassID).First(&selection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSelectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if s.verifier != nil {
		confirmed, err := s.verifier.PaymentSucceeded(req.TransactionRef)
		if err != nil {
			return nil, err
		}
		if !confirmed {
			return nil, ErrPaymentNotConfirmed
		}
	}

	class, err := s.loadClass(selection.ClassID)
	if err != nil {
		return nil, err
	}

	// Step 2: the anchor write. Price comes from the selection snapshot,
	// not the current class price.
	payment = models.PaymentRecord{
		UserEmail:          selection.UserEmail,
		ClassID:            selection.ClassID,
		TransactionRef:     req.TransactionRef,
		ReceiptID:          uuid.NewString(),
		Price:              selection.Price,
		Currency:           s.Currency,
		GatewayResponseRaw: datatypes.JSON(req.GatewayResponse),
		SettledAt:          time.Now(),
	}
	if err := s.db.Create(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent settle for the same
			// selection. The winner's row is the anchor now.
			if lookupErr := s.db.Where("user_email = ? AND class_id = ? AND transaction_ref = ?",
				req.UserEmail, req.ClassID, req.TransactionRef).First(&payment).Error; lookupErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, lookupErr)
			}
			return s.resume(&payment)
		}
		return nil, &PartialError{Step: StepPayment, Err: err}
	}

	return s.finish(&payment, class)
}

// resume completes a settlement whose payment anchor already exists:
// returns the enrollment if it was written, otherwise finishes steps 3-5.
func (s *Settler) resume(payment *models.PaymentRecord) (*models.EnrollmentRecord, error) {
	var enrollment models.EnrollmentRecord
	err := s.db.Where("user_email = ? AND class_id = ?",
		payment.UserEmail, payment.ClassID).First(&enrollment).Error
	if err == nil {
		if err := s.cleanupSelection(payment.UserEmail, payment.ClassID); err != nil {
			return nil, err
		}
		return &enrollment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	class, err := s.loadClass(payment.ClassID)
	if err != nil {
		return nil, err
	}
	return s.finish(payment, class)
}

// finish performs steps 3-5: enrollment write, counter increments,
// selection cleanup. Enrollment and counters share one store transaction
// so the counters are bumped exactly once per enrollment row.
func (s *Settler) finish(payment *models.PaymentRecord, class *models.ClassOffering) (*models.EnrollmentRecord, error) {
	enrollment := models.EnrollmentRecord{
		UserEmail:       payment.UserEmail,
		ClassID:         payment.ClassID,
		ClassName:       class.Name,
		Image:           class.Image,
		InstructorName:  class.InstructorName,
		InstructorEmail: class.InstructorEmail,
		EnrolledAt:      time.Now(),
	}

	tx := s.db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another settlement already enrolled this user in this
			// class; its transaction bumped the counters.
			var existing models.EnrollmentRecord
			if lookupErr := s.db.Where("user_email = ? AND class_id = ?",
				payment.UserEmail, payment.ClassID).First(&existing).Error; lookupErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, lookupErr)
			}
			if cleanupErr := s.cleanupSelection(payment.UserEmail, payment.ClassID); cleanupErr != nil {
				return nil, cleanupErr
			}
			return &existing, nil
		}
		return nil, &PartialError{Step: StepEnrollment, Err: err}
	}

	// Step 4: one enrolled student on the class, one student on the
	// instructor. classes_count is bumped on the class-creation path.
	if err := IncrementClassEnrolled(tx, class.ID, 1); err != nil {
		tx.Rollback()
		return nil, &PartialError{Step: StepCounters, Err: err}
	}
	if err := IncrementUserCounter(tx, class.InstructorEmail, ColumnStudentsCount, 1); err != nil {
		tx.Rollback()
		return nil, &PartialError{Step: StepCounters, Err: err}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, &PartialError{Step: StepEnrollment, Err: err}
	}

	if err := s.cleanupSelection(payment.UserEmail, payment.ClassID); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// cleanupSelection removes any remaining selection rows for a settled
// (user, class) pair. Deleting last keeps the selection visible and the
// settle retryable if any earlier step fails; zero rows affected is the
// normal retry case.
func (s *Settler) cleanupSelection(userEmail string, classID uint) error {
	if err := s.db.Where("user_email = ? AND class_id = ?", userEmail, classID).
		Delete(&models.SelectionEntry{}).Error; err != nil {
		return &PartialError{Step: StepSelection, Err: err}
	}
	return nil
}

func (s *Settler) loadClass(classID uint) (*models.ClassOffering, error) {
	var class models.ClassOffering
	err := s.db.Where("id = ? AND is_deleted = false", classID).First(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &class, nil
}
