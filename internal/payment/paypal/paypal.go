package paypal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid   = errors.New("paypal config invalid")
	ErrResponseInvalid = errors.New("paypal response invalid")
)

const defaultCheckoutURL = "https://www.paypal.com/checkoutnow"

// Config PayPal 结账配置。
type Config struct {
	CheckoutURL string
	ReturnURL   string
	CancelURL   string
}

// CreateInput 创建结账输入。
type CreateInput struct {
	Token    string
	Amount   decimal.Decimal
	Currency string
}

// CreateResult 创建结账返回。
type CreateResult struct {
	Token       string
	ApprovalURL string
	Raw         map[string]interface{}
}

// WebhookEvent PayPal Webhook 事件。
type WebhookEvent struct {
	ID         string                 `json:"id"`
	EventType  string                 `json:"event_type"`
	CreateTime string                 `json:"create_time"`
	Resource   map[string]interface{} `json:"resource"`
	Raw        map[string]interface{}
}

// FromConfig 由应用配置构建 PayPal 配置。
func FromConfig(cfg config.PaypalConfig) *Config {
	c := &Config{
		CheckoutURL: cfg.CheckoutURL,
		ReturnURL:   cfg.ReturnURL,
		CancelURL:   cfg.CancelURL,
	}
	c.normalize()
	return c
}

// CreateCheckout 生成结账跳转地址。
func CreateCheckout(cfg *Config, input CreateInput) (*CreateResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	token := strings.TrimSpace(input.Token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrConfigInvalid)
	}
	if input.Amount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount is invalid", ErrConfigInvalid)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = constants.CurrencyDefault
	}

	query := url.Values{}
	query.Set("token", token)
	if cfg.ReturnURL != "" {
		query.Set("return_url", cfg.ReturnURL)
	}
	if cfg.CancelURL != "" {
		query.Set("cancel_url", cfg.CancelURL)
	}
	approvalURL := cfg.CheckoutURL + "?" + query.Encode()
	if parsed, err := url.Parse(cfg.CheckoutURL); err == nil {
		existing := parsed.Query()
		for key, values := range query {
			existing[key] = values
		}
		parsed.RawQuery = existing.Encode()
		approvalURL = parsed.String()
	}
	return &CreateResult{
		Token:       token,
		ApprovalURL: approvalURL,
		Raw: map[string]interface{}{
			"token":        token,
			"approval_url": approvalURL,
			"amount":       input.Amount.Round(2).StringFixed(2),
			"currency":     currency,
		},
	}, nil
}

// ParseWebhookEvent 解析 Webhook 事件。
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: webhook body is empty", ErrResponseInvalid)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: webhook body invalid", ErrResponseInvalid)
	}
	event := &WebhookEvent{
		ID:         strings.TrimSpace(readString(raw, "id")),
		EventType:  strings.TrimSpace(readString(raw, "event_type")),
		CreateTime: strings.TrimSpace(readString(raw, "create_time")),
		Raw:        raw,
	}
	if resource, ok := raw["resource"].(map[string]interface{}); ok {
		event.Resource = resource
	} else {
		event.Resource = map[string]interface{}{}
	}
	if event.EventType == "" {
		return nil, fmt.Errorf("%w: event_type is missing", ErrResponseInvalid)
	}
	return event, nil
}

// PaymentReference 提取关联的本地支付标识（custom_id / invoice_id / 结账 token）。
func (e *WebhookEvent) PaymentReference() string {
	if e == nil {
		return ""
	}
	for _, path := range [][]string{
		{"custom_id"},
		{"invoice_id"},
		{"purchase_units", "0", "custom_id"},
		{"supplementary_data", "related_ids", "order_id"},
		{"id"},
	} {
		if val := strings.TrimSpace(readString(e.Resource, path...)); val != "" {
			return val
		}
	}
	return ""
}

// PaidAt 提取支付时间。
func (e *WebhookEvent) PaidAt() *time.Time {
	if e == nil {
		return nil
	}
	for _, raw := range []string{readString(e.Resource, "create_time"), readString(e.Resource, "update_time"), e.CreateTime} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			return &parsed
		}
	}
	return nil
}

// ResourceStatus 提取资源状态。
func (e *WebhookEvent) ResourceStatus() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(readString(e.Resource, "status"))
}

// ToPaymentStatus 映射 PayPal 事件到支付状态，仅返回终态。
func ToPaymentStatus(eventType, resourceStatus string) (string, bool) {
	eventType = strings.ToUpper(strings.TrimSpace(eventType))
	resourceStatus = strings.ToUpper(strings.TrimSpace(resourceStatus))

	switch eventType {
	case "PAYMENT.CAPTURE.COMPLETED", "CHECKOUT.ORDER.COMPLETED":
		return constants.PaymentStatusCompleted, true
	case "PAYMENT.CAPTURE.DENIED", "PAYMENT.CAPTURE.DECLINED", "PAYMENT.CAPTURE.FAILED", "CHECKOUT.ORDER.DENIED":
		return constants.PaymentStatusFailed, true
	}

	switch resourceStatus {
	case "COMPLETED":
		return constants.PaymentStatusCompleted, true
	case "DENIED", "DECLINED", "FAILED", "VOIDED":
		return constants.PaymentStatusFailed, true
	}
	return "", false
}

func (c *Config) normalize() {
	c.CheckoutURL = strings.TrimSpace(c.CheckoutURL)
	if c.CheckoutURL == "" {
		c.CheckoutURL = defaultCheckoutURL
	}
	c.ReturnURL = strings.TrimSpace(c.ReturnURL)
	c.CancelURL = strings.TrimSpace(c.CancelURL)
}

func readString(raw map[string]interface{}, path ...string) string {
	if raw == nil {
		return ""
	}
	var current interface{} = raw
	for _, seg := range path {
		if idx, err := strconv.Atoi(seg); err == nil {
			arr, ok := current.([]interface{})
			if !ok || idx < 0 || idx >= len(arr) {
				return ""
			}
			current = arr[idx]
			continue
		}
		next, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current = next[seg]
	}
	if current == nil {
		return ""
	}
	if str, ok := current.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", current)
}
