package utils

import "os"

// Config collects every environment setting the server consumes, read once
// at startup instead of scattered os.Getenv calls.
type Config struct {
	Port        string
	DatabaseURL string
	CORSOrigin  string

	StripeSecretKey     string
	StripeWebhookSecret string

	PayPalClientID     string
	PayPalClientSecret string
	PayPalEnv          string // "sandbox" | "live"

	AdminPasswordHash string
	AdminJWTSecret    string

	SMTPHost   string
	SMTPUser   string
	SMTPPass   string
	SMTPSender string
}

func LoadConfig() Config {
	cfg := Config{
		Port:                os.Getenv("PORT"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		CORSOrigin:          os.Getenv("CORS_ORIGIN"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PayPalClientID:      os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret:  os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalEnv:           os.Getenv("PAYPAL_ENV"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminJWTSecret:      os.Getenv("ADMIN_JWT_SECRET"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPass:            os.Getenv("SMTP_PASS"),
		SMTPSender:          os.Getenv("SMTP_SENDER"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PayPalEnv == "" {
		cfg.PayPalEnv = "sandbox"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "https://kinkly.berlin"
	}
	return cfg
}
