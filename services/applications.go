package services

import (
	"errors"
	"fmt"

	"github.com/vla-de/kinkly-main-sub000/models"

	"gorm.io/gorm"
)

var (
	// ErrValidation means a required applicant field is missing.
	ErrValidation = errors.New("full name, email and tier are required")
	// ErrApplicationNotFound means the payment referenced an unknown application.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrDuplicateTransaction means this provider transaction is already in the
	// ledger; the caller should treat the payment as recorded.
	ErrDuplicateTransaction = errors.New("transaction already recorded")
)

// ApplicantInfo is what the notifier needs after a confirmed payment.
type ApplicantInfo struct {
	FullName string
	Email    string
	Tier     string
}

// ApplicationService owns the application lifecycle: creation and the
// payment-confirmed status transition. It is provider-agnostic; the Stripe
// and PayPal handlers both funnel into RecordPaymentSuccess.
type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// Create stores a new application with status pending_payment and returns
// its id.
func (s *ApplicationService) Create(fullName, email, message, tier string) (string, error) {
	if fullName == "" || email == "" || tier == "" {
		return "", ErrValidation
	}

	app := models.Application{
		FullName: fullName,
		Email:    email,
		Message:  message,
		Tier:     tier,
		Status:   models.StatusPendingPayment,
	}
	if err := s.DB.Create(&app).Error; err != nil {
		return "", fmt.Errorf("failed to create application: %w", err)
	}
	return app.ID, nil
}

// RecordPaymentSuccess writes the ledger row for a confirmed provider
// transaction and advances the application to pending_review, all in one
// database transaction. The unique index on transaction_id is the sole
// idempotency mechanism: a duplicate delivery (or the loser of a concurrent
// race) fails the insert, the whole transaction rolls back, and
// ErrDuplicateTransaction is returned. The status transition is forward-only;
// an application that already moved past pending_payment is left untouched.
func (s *ApplicationService) RecordPaymentSuccess(applicationID, method, transactionID string, amount int64, providerStatus string) (*ApplicantInfo, error) {
	var info ApplicantInfo

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, "id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		payment := models.Payment{
			ApplicationID: applicationID,
			PaymentMethod: method,
			TransactionID: transactionID,
			Amount:        amount,
			Status:        providerStatus,
		}
		if err := tx.Create(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateTransaction
			}
			return fmt.Errorf("failed to record payment: %w", err)
		}

		if app.Status == models.StatusPendingPayment {
			if err := tx.Model(&models.Application{}).
				Where("id = ? AND status = ?", applicationID, models.StatusPendingPayment).
				Update("status", models.StatusPendingReview).Error; err != nil {
				return fmt.Errorf("failed to update application status: %w", err)
			}
		}

		info = ApplicantInfo{FullName: app.FullName, Email: app.Email, Tier: app.Tier}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}
