package paypal

import (
	"net/url"
	"testing"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"

	"github.com/shopspring/decimal"
)

func TestFromConfigDefaults(t *testing.T) {
	cfg := FromConfig(config.PaypalConfig{ReturnURL: " https://market.example.com/return "})
	if cfg.CheckoutURL != defaultCheckoutURL {
		t.Fatalf("expected default checkout url, got %s", cfg.CheckoutURL)
	}
	if cfg.ReturnURL != "https://market.example.com/return" {
		t.Fatalf("return url not trimmed: %q", cfg.ReturnURL)
	}
}

func TestCreateCheckout(t *testing.T) {
	cfg := FromConfig(config.PaypalConfig{
		CheckoutURL: "https://sandbox.paypal.com/checkoutnow?locale=en_US",
		CancelURL:   "https://market.example.com/cancel",
	})
	result, err := CreateCheckout(cfg, CreateInput{Token: "PAYPAL_TOKEN_5", Amount: decimal.NewFromInt(250)})
	if err != nil {
		t.Fatalf("create checkout failed: %v", err)
	}
	parsed, err := url.Parse(result.ApprovalURL)
	if err != nil {
		t.Fatalf("parse approval url failed: %v", err)
	}
	query := parsed.Query()
	if query.Get("token") != "PAYPAL_TOKEN_5" || query.Get("locale") != "en_US" {
		t.Fatalf("unexpected approval query: %s", parsed.RawQuery)
	}
	if result.Raw["currency"] != constants.CurrencyDefault || result.Raw["amount"] != "250.00" {
		t.Fatalf("unexpected raw payload: %+v", result.Raw)
	}
	if _, err := CreateCheckout(cfg, CreateInput{}); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestParseWebhookEvent(t *testing.T) {
	body := []byte(`{"id":"WH-1","event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{"custom_id":"12","status":"COMPLETED","create_time":"2026-03-01T10:00:00Z"}}`)
	event, err := ParseWebhookEvent(body)
	if err != nil {
		t.Fatalf("parse webhook failed: %v", err)
	}
	if event.PaymentReference() != "12" {
		t.Fatalf("unexpected reference: %s", event.PaymentReference())
	}
	if event.PaidAt() == nil {
		t.Fatalf("expected paid at")
	}
	status, ok := ToPaymentStatus(event.EventType, event.ResourceStatus())
	if !ok || status != constants.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s %v", status, ok)
	}
	if _, err := ParseWebhookEvent([]byte(`{"id":"x"}`)); err == nil {
		t.Fatalf("expected error when event_type missing")
	}
}

func TestToPaymentStatus(t *testing.T) {
	status, ok := ToPaymentStatus("", "DECLINED")
	if !ok || status != constants.PaymentStatusFailed {
		t.Fatalf("expected failed for declined resource, got %s %v", status, ok)
	}
	if _, ok := ToPaymentStatus("CHECKOUT.ORDER.APPROVED", "APPROVED"); ok {
		t.Fatalf("approved is not a final status")
	}
}
