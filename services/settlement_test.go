package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"lotuslight/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ClassOffering{},
		&models.SelectionEntry{},
		&models.PaymentRecord{},
		&models.EnrollmentRecord{},
	))
	return db
}

func seedClass(t *testing.T, db *gorm.DB, price float64) (*models.User, *models.ClassOffering) {
	t.Helper()

	instructor := &models.User{
		Name:  "Mina Okabe",
		Email: "mina@lotuslight.studio",
		Role:  models.RoleInstructor,
	}
	require.NoError(t, db.Create(instructor).Error)

	class := &models.ClassOffering{
		Name:            "Morning Vinyasa",
		InstructorName:  instructor.Name,
		InstructorEmail: instructor.Email,
		Seats:           20,
		Price:           price,
		Status:          models.ClassStatusApproved,
	}
	require.NoError(t, db.Create(class).Error)
	return instructor, class
}

func seedSelection(t *testing.T, db *gorm.DB, email string, class *models.ClassOffering) *models.SelectionEntry {
	t.Helper()

	selection := &models.SelectionEntry{
		UserEmail:      email,
		ClassID:        class.ID,
		ClassName:      class.Name,
		InstructorName: class.InstructorName,
		Price:          class.Price,
	}
	require.NoError(t, db.Create(selection).Error)
	return selection
}

type fakeVerifier struct {
	succeeded bool
	err       error
	calls     int
}

func (f *fakeVerifier) PaymentSucceeded(ref string) (bool, error) {
	f.calls++
	return f.succeeded, f.err
}

func settleRequest(selection *models.SelectionEntry, ref string) SettleRequest {
	return SettleRequest{
		SelectionID:    selection.ID,
		TransactionRef: ref,
		UserEmail:      selection.UserEmail,
		ClassID:        selection.ClassID,
	}
}

func TestSettleHappyPath(t *testing.T) {
	db := newTestDB(t)
	instructor, class := seedClass(t, db, 50)
	selection := seedSelection(t, db, "u@x.com", class)

	settler := NewSettler(db, nil)
	enrollment, err := settler.Settle(settleRequest(selection, "pi_123"))
	require.NoError(t, err)
	require.NotNil(t, enrollment)

	assert.Equal(t, "u@x.com", enrollment.UserEmail)
	assert.Equal(t, class.ID, enrollment.ClassID)
	assert.Equal(t, class.Name, enrollment.ClassName)

	var payments []models.PaymentRecord
	require.NoError(t, db.Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, 50.0, payments[0].Price)
	assert.Equal(t, "pi_123", payments[0].TransactionRef)
	assert.NotEmpty(t, payments[0].ReceiptID)

	var enrollmentCount int64
	require.NoError(t, db.Model(&models.EnrollmentRecord{}).Count(&enrollmentCount).Error)
	assert.EqualValues(t, 1, enrollmentCount)

	var gotClass models.ClassOffering
	require.NoError(t, db.First(&gotClass, class.ID).Error)
	assert.Equal(t, 1, gotClass.EnrolledCount)

	var gotInstructor models.User
	require.NoError(t, db.First(&gotInstructor, instructor.ID).Error)
	assert.Equal(t, 1, gotInstructor.StudentsCount)

	var selectionCount int64
	require.NoError(t, db.Model(&models.SelectionEntry{}).Count(&selectionCount).Error)
	assert.EqualValues(t, 0, selectionCount, "selection should be deleted after settlement")
}

func TestSettleIdempotent(t *testing.T) {
	db := newTestDB(t)
	instructor, class := seedClass(t, db, 50)
	selection := seedSelection(t, db, "u@x.com", class)

	settler := NewSettler(db, nil)
	req := settleRequest(selection, "pi_retry")

	first, err := settler.Settle(req)
	require.NoError(t, err)

	// Simulates a client retry after a dropped response.
	second, err := settler.Settle(req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var paymentCount, enrollmentCount int64
	require.NoError(t, db.Model(&models.PaymentRecord{}).Count(&paymentCount).Error)
	require.NoError(t, db.Model(&models.EnrollmentRecord{}).Count(&enrollmentCount).Error)
	assert.EqualValues(t, 1, paymentCount)
	assert.EqualValues(t, 1, enrollmentCount)

	var gotClass models.ClassOffering
	require.NoError(t, db.First(&gotClass, class.ID).Error)
	assert.Equal(t, 1, gotClass.EnrolledCount, "retry must not double-increment")

	var gotInstructor models.User
	require.NoError(t, db.First(&gotInstructor, instructor.ID).Error)
	assert.Equal(t, 1, gotInstructor.StudentsCount)
}

func TestSettleRecoversFromCrashAfterAnchor(t *testing.T) {
	db := newTestDB(t)
	instructor, class := seedClass(t, db, 50)
	selection := seedSelection(t, db, "u@x.com", class)

	// A previous attempt wrote the payment anchor and crashed before the
	// enrollment step.
	anchor := models.PaymentRecord{
		UserEmail:      selection.UserEmail,
		ClassID:        selection.ClassID,
		TransactionRef: "pi_crashed",
		Price:          selection.Price,
		Currency:       "usd",
	}
	require.NoError(t, db.Create(&anchor).Error)

	settler := NewSettler(db, nil)
	enrollment, err := settler.Settle(settleRequest(selection, "pi_crashed"))
	require.NoError(t, err)
	require.NotNil(t, enrollment)

	var paymentCount int64
	require.NoError(t, db.Model(&models.PaymentRecord{}).Count(&paymentCount).Error)
	assert.EqualValues(t, 1, paymentCount, "retry must not insert a second payment record")

	var enrollmentCount int64
	require.NoError(t, db.Model(&models.EnrollmentRecord{}).Count(&enrollmentCount).Error)
	assert.EqualValues(t, 1, enrollmentCount)

	var gotClass models.ClassOffering
	require.NoError(t, db.First(&gotClass, class.ID).Error)
	assert.Equal(t, 1, gotClass.EnrolledCount)

	var gotInstructor models.User
	require.NoError(t, db.First(&gotInstructor, instructor.ID).Error)
	assert.Equal(t, 1, gotInstructor.StudentsCount)

	var selectionCount int64
	require.NoError(t, db.Model(&models.SelectionEntry{}).Count(&selectionCount).Error)
	assert.EqualValues(t, 0, selectionCount)
}

func TestSettleSelectionNotFound(t *testing.T) {
	db := newTestDB(t)
	settler := NewSettler(db, nil)

	_, err := settler.Settle(SettleRequest{
		SelectionID:    9999,
		TransactionRef: "pi_none",
		UserEmail:      "u@x.com",
		ClassID:        1,
	})
	assert.ErrorIs(t, err, ErrSelectionNotFound)

	var paymentCount int64
	require.NoError(t, db.Model(&models.PaymentRecord{}).Count(&paymentCount).Error)
	assert.EqualValues(t, 0, paymentCount, "a failed precondition must leave no records")
}

func TestSettlePaymentNotConfirmed(t *testing.T) {
	db := newTestDB(t)
	_, class := seedClass(t, db, 50)
	selection := seedSelection(t, db, "u@x.com", class)

	verifier := &fakeVerifier{succeeded: false}
	settler := NewSettler(db, verifier)

	_, err := settler.Settle(settleRequest(selection, "pi_unpaid"))
	assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
	assert.Equal(t, 1, verifier.calls)

	var paymentCount int64
	require.NoError(t, db.Model(&models.PaymentRecord{}).Count(&paymentCount).Error)
	assert.EqualValues(t, 0, paymentCount)

	var selectionCount int64
	require.NoError(t, db.Model(&models.SelectionEntry{}).Count(&selectionCount).Error)
	assert.EqualValues(t, 1, selectionCount, "selection must survive a rejected settlement")
}

func TestSettleGatewayErrorPassesThrough(t *testing.T) {
	db := newTestDB(t)
	_, class := seedClass(t, db, 50)
	selection := seedSelection(t, db, "u@x.com", class)

	wantErr := errors.New("gateway down")
	settler := NewSettler(db, &fakeVerifier{err: wantErr})

	_, err := settler.Settle(settleRequest(selection, "pi_down"))
	assert.ErrorIs(t, err, wantErr)
}

func TestSettleVerifierSkippedOnRetry(t *testing.T) {
	db := newTestDB(t)
	_, class := seedClass(t, db, 50)
	selection := seedSelection(t, db, "u@x.com", class)

	verifier := &fakeVerifier{succeeded: true}
	settler := NewSettler(db, verifier)
	req := settleRequest(selection, "pi_once")

	_, err := settler.Settle(req)
	require.NoError(t, err)
	_, err = settler.Settle(req)
	require.NoError(t, err)

	assert.Equal(t, 1, verifier.calls, "idempotent retry should not hit the gateway again")
}

func TestSettleCounterConservation(t *testing.T) {
	db := newTestDB(t)
	instructor, class := seedClass(t, db, 25)

	settler := NewSettler(db, nil)

	const n = 12
	for i := 0; i < n; i++ {
		email := fmt.Sprintf("student%d@x.com", i)
		selection := seedSelection(t, db, email, class)
		_, err := settler.Settle(settleRequest(selection, fmt.Sprintf("pi_%d", i)))
		require.NoError(t, err)
	}

	var gotClass models.ClassOffering
	require.NoError(t, db.First(&gotClass, class.ID).Error)
	assert.Equal(t, n, gotClass.EnrolledCount)

	var gotInstructor models.User
	require.NoError(t, db.First(&gotInstructor, instructor.ID).Error)
	assert.Equal(t, n, gotInstructor.StudentsCount)
}

func TestSettleConcurrentSameSelection(t *testing.T) {
	db := newTestDB(t)
	_, class := seedClass(t, db, 50)
	selection := seedSelection(t, db, "u@x.com", class)

	settler := NewSettler(db, nil)
	req := settleRequest(selection, "pi_race")

	const callers = 4
	results := make([]*models.EnrollmentRecord, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = settler.Settle(req)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, results[0].ID, results[i].ID)
	}

	var paymentCount, enrollmentCount int64
	require.NoError(t, db.Model(&models.PaymentRecord{}).Count(&paymentCount).Error)
	require.NoError(t, db.Model(&models.EnrollmentRecord{}).Count(&enrollmentCount).Error)
	assert.EqualValues(t, 1, paymentCount)
	assert.EqualValues(t, 1, enrollmentCount)

	var gotClass models.ClassOffering
	require.NoError(t, db.First(&gotClass, class.ID).Error)
	assert.Equal(t, 1, gotClass.EnrolledCount)
}

func TestNoOrphanEnrollments(t *testing.T) {
	db := newTestDB(t)
	_, class := seedClass(t, db, 30)

	settler := NewSettler(db, nil)
	for i := 0; i < 5; i++ {
		selection := seedSelection(t, db, fmt.Sprintf("s%d@x.com", i), class)
		_, err := settler.Settle(settleRequest(selection, fmt.Sprintf("pi_o%d", i)))
		require.NoError(t, err)
	}

	var orphans int64
	require.NoError(t, db.Model(&models.EnrollmentRecord{}).
		Where("NOT EXISTS (SELECT 1 FROM payments p WHERE p.user_email = enrolled_classes.user_email AND p.class_id = enrolled_classes.class_id AND p.deleted_at IS NULL)").
		Count(&orphans).Error)
	assert.EqualValues(t, 0, orphans)
}
