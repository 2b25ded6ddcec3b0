package services

import (
	"sync"
	"testing"

	"lotuslight/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementClassEnrolled(t *testing.T) {
	db := newTestDB(t)
	_, class := seedClass(t, db, 50)

	require.NoError(t, IncrementClassEnrolled(db, class.ID, 1))
	require.NoError(t, IncrementClassEnrolled(db, class.ID, 1))

	var got models.ClassOffering
	require.NoError(t, db.First(&got, class.ID).Error)
	assert.Equal(t, 2, got.EnrolledCount)
}

func TestIncrementClassEnrolledNotFound(t *testing.T) {
	db := newTestDB(t)

	err := IncrementClassEnrolled(db, 4242, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncrementUserCounter(t *testing.T) {
	db := newTestDB(t)
	instructor, _ := seedClass(t, db, 50)

	require.NoError(t, IncrementUserCounter(db, instructor.Email, ColumnClassesCount, 1))
	require.NoError(t, IncrementUserCounter(db, instructor.Email, ColumnStudentsCount, 3))

	var got models.User
	require.NoError(t, db.First(&got, instructor.ID).Error)
	assert.Equal(t, 1, got.ClassesCount)
	assert.Equal(t, 3, got.StudentsCount)
}

func TestIncrementUserCounterUnknownColumn(t *testing.T) {
	db := newTestDB(t)
	instructor, _ := seedClass(t, db, 50)

	err := IncrementUserCounter(db, instructor.Email, "main_balance", 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestIncrementUserCounterNotFound(t *testing.T) {
	db := newTestDB(t)

	err := IncrementUserCounter(db, "nobody@x.com", ColumnStudentsCount, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Concurrent settlements against the same class contend on this counter;
// no increment may be lost.
func TestIncrementClassEnrolledConcurrent(t *testing.T) {
	db := newTestDB(t)
	_, class := seedClass(t, db, 50)

	const workers = 8
	const perWorker = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				assert.NoError(t, IncrementClassEnrolled(db, class.ID, 1))
			}
		}()
	}
	wg.Wait()

	var got models.ClassOffering
	require.NoError(t, db.First(&got, class.ID).Error)
	assert.Equal(t, workers*perWorker, got.EnrolledCount)
}
