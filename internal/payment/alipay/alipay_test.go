package alipay

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"

	"github.com/shopspring/decimal"
)

func generateKeyPair(t *testing.T) (string, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal private key failed: %v", err)
	}
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key failed: %v", err)
	}
	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	return string(privatePEM), string(publicPEM)
}

func TestFromConfigDefaults(t *testing.T) {
	cfg := FromConfig(config.AlipayConfig{AppID: " 2026 "})
	if cfg.AppID != "2026" {
		t.Fatalf("app id not trimmed: %q", cfg.AppID)
	}
	if cfg.GatewayURL != defaultGatewayURL {
		t.Fatalf("expected default gateway, got %s", cfg.GatewayURL)
	}
	if cfg.SignType != signTypeRSA2 {
		t.Fatalf("expected RSA2, got %s", cfg.SignType)
	}
	if cfg.VerifyEnabled() {
		t.Fatalf("verify should be disabled without public key")
	}
}

func TestCreatePagePayWithoutKey(t *testing.T) {
	cfg := FromConfig(config.AlipayConfig{
		AppID:     "2026000000000000",
		NotifyURL: "https://market.example.com/api/payments/webhook/alipay",
		ReturnURL: "https://market.example.com/payment/return",
	})
	result, err := CreatePagePay(cfg, CreateInput{
		OutTradeNo: "42",
		Amount:     decimal.RequireFromString("1500.5"),
		Subject:    "Order 7",
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create page pay failed: %v", err)
	}
	if result.Signed {
		t.Fatalf("expected unsigned url without private key")
	}
	parsed, err := url.Parse(result.PayURL)
	if err != nil {
		t.Fatalf("parse pay url failed: %v", err)
	}
	query := parsed.Query()
	if query.Get("method") != pagePayMethod {
		t.Fatalf("unexpected method: %s", query.Get("method"))
	}
	if query.Get("timestamp") != "2026-01-02 03:04:05" {
		t.Fatalf("unexpected timestamp: %s", query.Get("timestamp"))
	}
	var biz map[string]string
	if err := json.Unmarshal([]byte(query.Get("biz_content")), &biz); err != nil {
		t.Fatalf("decode biz_content failed: %v", err)
	}
	if biz["out_trade_no"] != "42" || biz["total_amount"] != "1500.50" || biz["product_code"] != pagePayProduct {
		t.Fatalf("unexpected biz_content: %+v", biz)
	}
}

func TestCreatePagePaySignsWithPrivateKey(t *testing.T) {
	privateKey, publicKey := generateKeyPair(t)
	cfg := FromConfig(config.AlipayConfig{AppID: "2026", PrivateKey: privateKey, AlipayPublicKey: publicKey})
	result, err := CreatePagePay(cfg, CreateInput{OutTradeNo: "9", Amount: decimal.NewFromInt(10)})
	if err != nil {
		t.Fatalf("create page pay failed: %v", err)
	}
	if !result.Signed {
		t.Fatalf("expected signed url")
	}
	parsed, _ := url.Parse(result.PayURL)
	query := parsed.Query()
	if query.Get("sign") == "" {
		t.Fatalf("sign missing in pay url")
	}
	if _, err := base64.StdEncoding.DecodeString(query.Get("sign")); err != nil {
		t.Fatalf("sign should be base64: %v", err)
	}
}

func TestVerifyCallback(t *testing.T) {
	privateKey, publicKey := generateKeyPair(t)
	cfg := FromConfig(config.AlipayConfig{AlipayPublicKey: publicKey})
	if !cfg.VerifyEnabled() {
		t.Fatalf("verify should be enabled with public key")
	}

	form := url.Values{}
	form.Set("out_trade_no", "42")
	form.Set("trade_status", constants.AlipayTradeStatusSuccess)
	form.Set("total_amount", "10.00")
	sign, err := SignForm(form, privateKey, "RSA2")
	if err != nil {
		t.Fatalf("sign form failed: %v", err)
	}
	form.Set("sign", sign)
	form.Set("sign_type", "RSA2")
	if err := VerifyCallback(cfg, form); err != nil {
		t.Fatalf("verify callback failed: %v", err)
	}

	form.Set("total_amount", "9999.00")
	if err := VerifyCallback(cfg, form); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature invalid after tampering, got %v", err)
	}

	form.Del("sign")
	if err := VerifyCallback(cfg, form); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature invalid without sign, got %v", err)
	}
}

func TestParseKeyAcceptsEscapedSingleLine(t *testing.T) {
	privateKey, _ := generateKeyPair(t)
	escaped := strings.ReplaceAll(strings.TrimSpace(privateKey), "\n", "\\n")
	if _, err := parsePrivateKey(escaped); err != nil {
		t.Fatalf("parse escaped key failed: %v", err)
	}
	if _, err := parsePrivateKey(""); !errors.Is(err, ErrSignGenerate) {
		t.Fatalf("expected sign generate error for empty key, got %v", err)
	}
}

func TestToPaymentStatus(t *testing.T) {
	cases := map[string]string{
		"TRADE_SUCCESS":  constants.PaymentStatusCompleted,
		"trade_finished": constants.PaymentStatusCompleted,
		"TRADE_CLOSED":   constants.PaymentStatusFailed,
	}
	for input, expected := range cases {
		status, ok := ToPaymentStatus(input)
		if !ok || status != expected {
			t.Fatalf("ToPaymentStatus(%s) = %s,%v want %s", input, status, ok, expected)
		}
	}
	if _, ok := ToPaymentStatus("WAIT_BUYER_PAY"); ok {
		t.Fatalf("WAIT_BUYER_PAY should not map to a final status")
	}
}
