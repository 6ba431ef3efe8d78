package payments

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/vla-de/kinkly-main-sub000/models"
	"github.com/vla-de/kinkly-main-sub000/services"
	"github.com/vla-de/kinkly-main-sub000/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"
)

// IntentCreator is the one Stripe API call this handler makes. Production
// wires *paymentintent.Client; tests substitute a fake.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Mailer is the post-payment notification hook.
type Mailer interface {
	SendPaymentConfirmation(fullName, email, tier string)
}

type StripeHandler struct {
	Apps          *services.ApplicationService
	Intents       IntentCreator
	Mailer        Mailer
	WebhookSecret string
}

func NewStripeHandler(apps *services.ApplicationService, intents IntentCreator, mailer Mailer, webhookSecret string) *StripeHandler {
	return &StripeHandler{Apps: apps, Intents: intents, Mailer: mailer, WebhookSecret: webhookSecret}
}

type createIntentRequest struct {
	Price         string `json:"price"`
	ApplicationID string `json:"applicationId"`
}

// CreatePaymentIntent handles POST /api/create-payment-intent. The
// applicationId rides along as intent metadata so the webhook can correlate
// the confirmation back to an application; nothing is persisted here.
func (h *StripeHandler) CreatePaymentIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Price == "" || req.ApplicationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and applicationId are required"})
		return
	}

	amount := utils.ParsePriceMinorUnits(req.Price)
	if amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyEUR)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}
	params.Metadata = map[string]string{
		"applicationId": req.ApplicationID,
	}

	pi, err := h.Intents.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": pi.ClientSecret,
	})
}

// HandleWebhook handles POST /api/stripe-webhook. The route must see the
// untouched request bytes: signature verification runs over the raw body.
// Once the signature checks out the response is always 200 — Stripe retries
// on anything else, and a poisoned event would retry forever — so downstream
// failures are logged loudly instead of surfaced.
func (h *StripeHandler) HandleWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Writer.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if h.WebhookSecret == "" {
		log.Printf("stripe-webhook: no webhook secret configured")
		c.Writer.WriteHeader(http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, c.Request.Header.Get("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		log.Printf("stripe-webhook: signature verification failed: %v", err)
		c.Writer.WriteHeader(http.StatusBadRequest)
		return
	}

	if event.Type == "payment_intent.succeeded" {
		var paymentIntent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			log.Printf("stripe-webhook: error parsing webhook JSON: %v", err)
			c.Writer.WriteHeader(http.StatusBadRequest)
			return
		}
		h.handlePaymentSuccess(paymentIntent)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *StripeHandler) handlePaymentSuccess(paymentIntent stripe.PaymentIntent) {
	applicationID := paymentIntent.Metadata["applicationId"]
	if applicationID == "" {
		log.Printf("stripe-webhook: PaymentIntent %s has no applicationId in metadata, ignoring", paymentIntent.ID)
		return
	}

	applicant, err := h.Apps.RecordPaymentSuccess(
		applicationID,
		models.MethodStripe,
		paymentIntent.ID,
		paymentIntent.Amount,
		string(paymentIntent.Status),
	)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateTransaction) {
			log.Printf("stripe-webhook: transaction %s already recorded, skipping", paymentIntent.ID)
			return
		}
		log.Printf("stripe-webhook: FAILED to record payment %s for application %s: %v", paymentIntent.ID, applicationID, err)
		return
	}

	log.Printf("stripe-webhook: recorded payment %s, application %s moved to %s", paymentIntent.ID, applicationID, models.StatusPendingReview)
	h.Mailer.SendPaymentConfirmation(applicant.FullName, applicant.Email, applicant.Tier)
}
