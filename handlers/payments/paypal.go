package payments

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/vla-de/kinkly-main-sub000/models"
	"github.com/vla-de/kinkly-main-sub000/services"
	"github.com/vla-de/kinkly-main-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/plutov/paypal/v4"
)

// OrdersClient is the slice of the PayPal SDK this handler uses, satisfied
// by *paypal.Client and faked in tests.
type OrdersClient interface {
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, payer *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string, captureOrderRequest paypal.CaptureOrderRequest) (*paypal.CaptureOrderResponse, error)
}

type PayPalHandler struct {
	Apps   *services.ApplicationService
	Orders OrdersClient
	Mailer Mailer
}

func NewPayPalHandler(apps *services.ApplicationService, orders OrdersClient, mailer Mailer) *PayPalHandler {
	return &PayPalHandler{Apps: apps, Orders: orders, Mailer: mailer}
}

type createOrderRequest struct {
	Price string `json:"price"`
}

// CreateOrder handles POST /api/paypal/create-order.
func (h *PayPalHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	amount := utils.ParsePriceMinorUnits(req.Price)
	if amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}

	order, err := h.Orders.CreateOrder(c.Request.Context(), paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{
			{
				Amount: &paypal.PurchaseUnitAmount{
					Currency: "EUR",
					Value:    utils.FormatEURValue(amount),
				},
			},
		}, nil, nil)
	if err != nil {
		log.Printf("paypal: failed to create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PayPal order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"orderID": order.ID})
}

type captureOrderRequest struct {
	OrderID       string `json:"orderID"`
	ApplicationID string `json:"applicationId"`
}

// CaptureOrder handles POST /api/paypal/capture-order. The capture call moves
// the money; whatever happens locally afterwards, the response body carries
// the provider's capture result. A persistence failure is a 500 so a
// captured-but-unrecorded payment gets operator attention — the adapter
// cannot undo the provider-side capture.
func (h *PayPalHandler) CaptureOrder(c *gin.Context) {
	var req captureOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.OrderID == "" || req.ApplicationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderID and applicationId are required"})
		return
	}

	capture, err := h.Orders.CaptureOrder(c.Request.Context(), req.OrderID, paypal.CaptureOrderRequest{})
	if err != nil {
		log.Printf("paypal: failed to capture order %s: %v", req.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture PayPal order"})
		return
	}

	if capture.Status == paypal.OrderStatusCompleted {
		transactionID, amount := capturedPayment(capture)
		if transactionID == "" {
			transactionID = capture.ID
		}

		applicant, err := h.Apps.RecordPaymentSuccess(
			req.ApplicationID,
			models.MethodPayPal,
			transactionID,
			amount,
			"completed",
		)
		if err != nil && !errors.Is(err, services.ErrDuplicateTransaction) {
			log.Printf("paypal: FAILED to record capture %s for application %s: %v", transactionID, req.ApplicationID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment captured but could not be recorded"})
			return
		}
		if err == nil {
			log.Printf("paypal: recorded capture %s, application %s moved to %s", transactionID, req.ApplicationID, models.StatusPendingReview)
			h.Mailer.SendPaymentConfirmation(applicant.FullName, applicant.Email, applicant.Tier)
		} else {
			log.Printf("paypal: capture %s already recorded, skipping", transactionID)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "capture": capture})
}

// capturedPayment pulls the capture id and amount in cents out of the
// capture response.
func capturedPayment(capture *paypal.CaptureOrderResponse) (string, int64) {
	for _, unit := range capture.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, captured := range unit.Payments.Captures {
			amount := int64(0)
			if captured.Amount != nil {
				amount = utils.MinorUnitsFromDecimal(captured.Amount.Value)
			}
			return captured.ID, amount
		}
	}
	return "", 0
}

// NewPayPalClient builds the production SDK client for the configured
// environment and primes its access token.
func NewPayPalClient(cfg utils.Config) (*paypal.Client, error) {
	base := paypal.APIBaseSandBox
	if cfg.PayPalEnv == "live" {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalClientSecret, base)
	if err != nil {
		return nil, err
	}
	if _, err := client.GetAccessToken(context.Background()); err != nil {
		log.Printf("paypal: could not fetch access token at startup: %v", err)
	}
	return client, nil
}
