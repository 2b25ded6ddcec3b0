package services

import (
	"testing"

	"lotuslight/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepUnfinished(t *testing.T) {
	db := newTestDB(t)
	instructor, class := seedClass(t, db, 40)

	// Two settlements crashed after their payment anchor, one completed
	// normally.
	settler := NewSettler(db, nil)

	done := seedSelection(t, db, "done@x.com", class)
	_, err := settler.Settle(settleRequest(done, "pi_done"))
	require.NoError(t, err)

	for _, email := range []string{"a@x.com", "b@x.com"} {
		seedSelection(t, db, email, class)
		require.NoError(t, db.Create(&models.PaymentRecord{
			UserEmail:      email,
			ClassID:        class.ID,
			TransactionRef: "pi_" + email,
			Price:          class.Price,
			Currency:       "usd",
		}).Error)
	}

	completed, err := settler.SweepUnfinished()
	require.NoError(t, err)
	assert.Equal(t, 2, completed)

	var enrollmentCount int64
	require.NoError(t, db.Model(&models.EnrollmentRecord{}).Count(&enrollmentCount).Error)
	assert.EqualValues(t, 3, enrollmentCount)

	var gotClass models.ClassOffering
	require.NoError(t, db.First(&gotClass, class.ID).Error)
	assert.Equal(t, 3, gotClass.EnrolledCount)

	var gotInstructor models.User
	require.NoError(t, db.First(&gotInstructor, instructor.ID).Error)
	assert.Equal(t, 3, gotInstructor.StudentsCount)

	var selectionCount int64
	require.NoError(t, db.Model(&models.SelectionEntry{}).Count(&selectionCount).Error)
	assert.EqualValues(t, 0, selectionCount)

	// A second sweep finds nothing to do.
	completed, err = settler.SweepUnfinished()
	require.NoError(t, err)
	assert.Equal(t, 0, completed)
}
