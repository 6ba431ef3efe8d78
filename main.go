package main

import (
	"log"
	"time"

	"github.com/vla-de/kinkly-main-sub000/handlers/applications"
	"github.com/vla-de/kinkly-main-sub000/handlers/auth"
	"github.com/vla-de/kinkly-main-sub000/handlers/payments"
	"github.com/vla-de/kinkly-main-sub000/handlers/referrals"
	"github.com/vla-de/kinkly-main-sub000/migrations"
	"github.com/vla-de/kinkly-main-sub000/seed"
	"github.com/vla-de/kinkly-main-sub000/services"
	"github.com/vla-de/kinkly-main-sub000/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	cfg := utils.LoadConfig()

	db, err := utils.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrations.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed.SeedTicketCounters(db); err != nil {
		log.Fatalf("Failed to seed ticket counters: %v", err)
	}

	appService := services.NewApplicationService(db)
	mailer := utils.NewMailer(cfg)

	intents := &paymentintent.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: cfg.StripeSecretKey,
	}
	stripeHandler := payments.NewStripeHandler(appService, intents, mailer, cfg.StripeWebhookSecret)

	paypalClient, err := payments.NewPayPalClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create PayPal client: %v", err)
	}
	paypalHandler := payments.NewPayPalHandler(appService, paypalClient, mailer)

	appHandler := applications.NewHandler(appService)
	referralHandler := referrals.NewHandler(db)
	authHandler := auth.NewHandler(cfg.AdminPasswordHash, cfg.AdminJWTSecret)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.POST("/api/applications", appHandler.Submit)
	r.POST("/api/create-payment-intent", stripeHandler.CreatePaymentIntent)
	r.POST("/api/paypal/create-order", paypalHandler.CreateOrder)
	r.POST("/api/paypal/capture-order", paypalHandler.CaptureOrder)
	// Signature verification needs the untouched request bytes; nothing that
	// consumes the body may run ahead of this route.
	r.POST("/api/stripe-webhook", stripeHandler.HandleWebhook)

	r.POST("/api/referral-codes/:code/redeem", referralHandler.RedeemCode)
	r.GET("/api/tickets/:tier", referralHandler.GetTicketCount)
	r.POST("/api/tickets/:tier/reserve", referralHandler.ReserveTicket)

	r.POST("/api/admin/login", authHandler.Login)

	admin := r.Group("/api/admin")
	admin.Use(authHandler.Middleware())
	{
		admin.POST("/referral-codes", referralHandler.CreateCode)
		admin.GET("/referral-codes", referralHandler.ListCodes)
		admin.PUT("/tickets", referralHandler.SetTicketCounter)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
