package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/vla-de/kinkly-main-sub000/migrations"
	"github.com/vla-de/kinkly-main-sub000/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Per-test in-memory database; single connection so concurrent calls
	// contend on the uniqueness constraint, not on sqlite write locks.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrations.Migrate(db))
	return db
}

func TestCreateApplication(t *testing.T) {
	svc := NewApplicationService(setupDB(t))

	id1, err := svc.Create("Ada Lovelace", "ada@example.com", "take me in", "The Invitation")
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := svc.Create("Alan Turing", "alan@example.com", "", "The Patron")
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	var app models.Application
	require.NoError(t, svc.DB.First(&app, "id = ?", id1).Error)
	require.Equal(t, models.StatusPendingPayment, app.Status)
	require.Equal(t, "Ada Lovelace", app.FullName)
}

func TestCreateApplicationValidation(t *testing.T) {
	svc := NewApplicationService(setupDB(t))

	_, err := svc.Create("", "ada@example.com", "", "The Invitation")
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create("Ada", "", "", "The Invitation")
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create("Ada", "ada@example.com", "", "")
	require.ErrorIs(t, err, ErrValidation)

	var count int64
	svc.DB.Model(&models.Application{}).Count(&count)
	require.Zero(t, count)
}

func TestRecordPaymentSuccess(t *testing.T) {
	svc := NewApplicationService(setupDB(t))

	id, err := svc.Create("Ada Lovelace", "ada@example.com", "", "The Invitation")
	require.NoError(t, err)

	applicant, err := svc.RecordPaymentSuccess(id, models.MethodStripe, "pi_abc123", 99500, "succeeded")
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", applicant.FullName)
	require.Equal(t, "ada@example.com", applicant.Email)
	require.Equal(t, "The Invitation", applicant.Tier)

	var app models.Application
	require.NoError(t, svc.DB.First(&app, "id = ?", id).Error)
	require.Equal(t, models.StatusPendingReview, app.Status)

	var payment models.Payment
	require.NoError(t, svc.DB.First(&payment, "transaction_id = ?", "pi_abc123").Error)
	require.Equal(t, id, payment.ApplicationID)
	require.Equal(t, models.MethodStripe, payment.PaymentMethod)
	require.Equal(t, int64(99500), payment.Amount)
	require.Equal(t, "succeeded", payment.Status)
}

func TestRecordPaymentSuccessUnknownApplication(t *testing.T) {
	svc := NewApplicationService(setupDB(t))

	_, err := svc.RecordPaymentSuccess("no-such-id", models.MethodStripe, "pi_ghost", 99500, "succeeded")
	require.ErrorIs(t, err, ErrApplicationNotFound)

	var count int64
	svc.DB.Model(&models.Payment{}).Count(&count)
	require.Zero(t, count)
}

func TestRecordPaymentSuccessReplay(t *testing.T) {
	svc := NewApplicationService(setupDB(t))

	id, err := svc.Create("Ada Lovelace", "ada@example.com", "", "The Invitation")
	require.NoError(t, err)

	_, err = svc.RecordPaymentSuccess(id, models.MethodStripe, "pi_once", 99500, "succeeded")
	require.NoError(t, err)

	// Redelivery of the same transaction must be a rolled-back no-op.
	_, err = svc.RecordPaymentSuccess(id, models.MethodStripe, "pi_once", 99500, "succeeded")
	require.ErrorIs(t, err, ErrDuplicateTransaction)

	var count int64
	svc.DB.Model(&models.Payment{}).Count(&count)
	require.Equal(t, int64(1), count)

	var app models.Application
	require.NoError(t, svc.DB.First(&app, "id = ?", id).Error)
	require.Equal(t, models.StatusPendingReview, app.Status)
}

func TestRecordPaymentSuccessConcurrentDuplicate(t *testing.T) {
	svc := NewApplicationService(setupDB(t))

	id, err := svc.Create("Ada Lovelace", "ada@example.com", "", "The Invitation")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	amounts := []int64{99500, 100}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.RecordPaymentSuccess(id, models.MethodStripe, "pi_race", amounts[i], "succeeded")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrDuplicateTransaction)
		}
	}
	require.Equal(t, 1, succeeded)

	var count int64
	svc.DB.Model(&models.Payment{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestRecordPaymentSuccessDoesNotRegressStatus(t *testing.T) {
	svc := NewApplicationService(setupDB(t))

	id, err := svc.Create("Ada Lovelace", "ada@example.com", "", "The Invitation")
	require.NoError(t, err)

	_, err = svc.RecordPaymentSuccess(id, models.MethodStripe, "pi_first", 99500, "succeeded")
	require.NoError(t, err)

	// A second, distinct transaction for an already advanced application is
	// recorded but leaves the status alone.
	_, err = svc.RecordPaymentSuccess(id, models.MethodPayPal, "cap_second", 99500, "completed")
	require.NoError(t, err)

	var app models.Application
	require.NoError(t, svc.DB.First(&app, "id = ?", id).Error)
	require.Equal(t, models.StatusPendingReview, app.Status)
}
