package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

type paymentTestFixture struct {
	env    *marketplaceTestEnv
	svc    *PaymentService
	orders *repository.GormOrderRepository
	seller *models.User
	buyer  *models.User
	order  *models.Order
}

func setupPaymentServiceTest(t *testing.T) *paymentTestFixture {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "payment_service_test")
	orderRepo := repository.NewOrderRepository(env.db)
	svc := NewPaymentService(env.cfg, repository.NewPaymentRepository(env.db), orderRepo, env.notifier)

	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	item := env.createItem(t, seller.ID, "Rice Cooker", 450, nil)
	order, err := NewOrderService(orderRepo, env.items, env.notifier).Create(buyer.ID, CreateOrderInput{ItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return &paymentTestFixture{env: env, svc: svc, orders: orderRepo, seller: seller, buyer: buyer, order: order}
}

func (f *paymentTestFixture) createMethod(t *testing.T, paymentType string, isDefault bool) *models.PaymentMethod {
	t.Helper()
	method, err := f.svc.CreateMethod(f.buyer.ID, PaymentMethodInput{
		PaymentType: strPtr(paymentType),
		Name:        strPtr("My " + paymentType),
		IsDefault:   boolPtr(isDefault),
		Details:     map[string]interface{}{"account": "buyer@" + paymentType + ".test"},
	})
	if err != nil {
		t.Fatalf("create %s method failed: %v", paymentType, err)
	}
	return method
}

func TestPaymentServiceMethodsDefaultAndDetails(t *testing.T) {
	f := setupPaymentServiceTest(t)

	first := f.createMethod(t, constants.PaymentTypeAlipay, true)
	second := f.createMethod(t, constants.PaymentTypePaypal, true)

	reloaded, err := f.svc.GetMethod(f.buyer.ID, first.ID)
	if err != nil {
		t.Fatalf("get method failed: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatalf("older default should be cleared")
	}
	if strings.Contains(second.EncryptedDetails, "buyer@") {
		t.Fatalf("details must not be stored in plain text: %s", second.EncryptedDetails)
	}
	details, err := f.svc.MethodDetails(second)
	if err != nil {
		t.Fatalf("open details failed: %v", err)
	}
	if details["account"] != "buyer@paypal.test" {
		t.Fatalf("unexpected details: %+v", details)
	}

	if _, err := f.svc.CreateMethod(f.buyer.ID, PaymentMethodInput{PaymentType: strPtr("barter_points"), Name: strPtr("x")}); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected invalid type, got %v", err)
	}
	if _, err := f.svc.GetMethod(f.seller.ID, first.ID); !errors.Is(err, ErrPaymentMethodNotFound) {
		t.Fatalf("methods are private, got %v", err)
	}
}

func TestPaymentServiceCreateIntent(t *testing.T) {
	f := setupPaymentServiceTest(t)
	alipayMethod := f.createMethod(t, constants.PaymentTypeAlipay, false)
	paypalMethod := f.createMethod(t, constants.PaymentTypePaypal, false)
	cashMethod := f.createMethod(t, constants.PaymentTypeCash, false)

	if _, err := f.svc.CreateIntent(f.buyer.ID, f.order.ID, cashMethod.ID); !errors.Is(err, ErrPaymentProviderNotSupported) {
		t.Fatalf("expected unsupported provider, got %v", err)
	}
	if _, err := f.svc.CreateIntent(f.seller.ID, f.order.ID, alipayMethod.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("only the buyer can pay, got %v", err)
	}

	intent, err := f.svc.CreateIntent(f.buyer.ID, f.order.ID, alipayMethod.ID)
	if err != nil {
		t.Fatalf("alipay intent failed: %v", err)
	}
	if intent.Status != constants.PaymentStatusProcessing || intent.RedirectURL == "" {
		t.Fatalf("unexpected intent: %+v", intent)
	}
	if !strings.Contains(intent.RedirectURL, url.QueryEscape(fmt.Sprintf(`"out_trade_no":"%d"`, intent.PaymentID))) {
		t.Fatalf("redirect url should carry the payment id: %s", intent.RedirectURL)
	}
	payment, err := f.svc.Get(f.buyer.ID, intent.PaymentID)
	if err != nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if !payment.Amount.Decimal.Equal(decimal.NewFromInt(450)) || !strings.HasPrefix(payment.ProviderTransactionID, "alipay_") {
		t.Fatalf("unexpected payment: amount=%s txid=%s", payment.Amount.String(), payment.ProviderTransactionID)
	}

	paypalIntent, err := f.svc.CreateIntent(f.buyer.ID, f.order.ID, paypalMethod.ID)
	if err != nil {
		t.Fatalf("paypal intent failed: %v", err)
	}
	paypalPayment, err := f.svc.Get(f.buyer.ID, paypalIntent.PaymentID)
	if err != nil {
		t.Fatalf("get paypal payment failed: %v", err)
	}
	if !strings.HasPrefix(paypalPayment.ProviderTransactionID, "PAYPAL_TOKEN_") {
		t.Fatalf("unexpected paypal token: %s", paypalPayment.ProviderTransactionID)
	}
	if !strings.Contains(paypalIntent.RedirectURL, paypalPayment.ProviderTransactionID) {
		t.Fatalf("approval url should carry the token: %s", paypalIntent.RedirectURL)
	}
}

func TestPaymentServiceWebhookCompletesAndRefunds(t *testing.T) {
	f := setupPaymentServiceTest(t)
	method := f.createMethod(t, constants.PaymentTypeAlipay, true)
	intent, err := f.svc.CreateIntent(f.buyer.ID, f.order.ID, method.ID)
	if err != nil {
		t.Fatalf("create intent failed: %v", err)
	}

	if _, err := f.svc.Refund(f.buyer.ID, intent.PaymentID, nil, ""); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("processing payments cannot be refunded, got %v", err)
	}

	body := fmt.Sprintf("notify_id=n-100&notify_type=trade_status_sync&out_trade_no=%d&trade_status=TRADE_SUCCESS", intent.PaymentID)
	webhook, err := f.svc.HandleWebhook(WebhookInput{Provider: "alipay", Body: []byte(body), ContentType: "application/x-www-form-urlencoded"})
	if err != nil {
		t.Fatalf("webhook failed: %v", err)
	}
	if !webhook.Processed || webhook.EventID != "alipay:n-100" || webhook.EventType != "trade_status_sync" {
		t.Fatalf("unexpected webhook: %+v", webhook)
	}
	duplicate, err := f.svc.HandleWebhook(WebhookInput{Provider: "alipay", Body: []byte(body)})
	if err != nil {
		t.Fatalf("duplicate webhook failed: %v", err)
	}
	if duplicate.ID != webhook.ID {
		t.Fatalf("duplicate webhook should return the stored event")
	}

	payment, err := f.svc.Get(f.buyer.ID, intent.PaymentID)
	if err != nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusCompleted || payment.CompletedAt == nil {
		t.Fatalf("payment should be completed: %s", payment.Status)
	}
	order, err := f.orders.GetByID(f.order.ID)
	if err != nil || order == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if order.PaymentStatus != constants.OrderPaymentStatusPaid {
		t.Fatalf("order should be paid, got %s", order.PaymentStatus)
	}
	if got := len(f.env.notificationsFor(t, f.seller.ID, constants.NotificationPaymentReceived)); got != 1 {
		t.Fatalf("expected one payment_received notification, got %d", got)
	}

	partial := decimal.NewFromInt(150)
	refund, err := f.svc.Refund(f.buyer.ID, intent.PaymentID, &partial, "")
	if err != nil {
		t.Fatalf("partial refund failed: %v", err)
	}
	if refund.Reason != "Customer request" || refund.Status != constants.RefundStatusCompleted {
		t.Fatalf("unexpected refund: %+v", refund)
	}
	tooMuch := decimal.NewFromInt(301)
	if _, err := f.svc.Refund(f.buyer.ID, intent.PaymentID, &tooMuch, "oops"); !errors.Is(err, ErrRefundExceedsRemaining) {
		t.Fatalf("expected exceeds remaining, got %v", err)
	}
	zero := decimal.Zero
	if _, err := f.svc.Refund(f.buyer.ID, intent.PaymentID, &zero, ""); !errors.Is(err, ErrRefundAmountInvalid) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := f.svc.Refund(f.buyer.ID, intent.PaymentID, nil, "changed my mind"); !errors.Is(err, ErrRefundExceedsRemaining) {
		t.Fatalf("full refund after partial should exceed remaining, got %v", err)
	}
	rest := decimal.NewFromInt(300)
	if _, err := f.svc.Refund(f.buyer.ID, intent.PaymentID, &rest, "changed my mind"); err != nil {
		t.Fatalf("final refund failed: %v", err)
	}
	payment, _ = f.svc.Get(f.buyer.ID, intent.PaymentID)
	if payment.Status != constants.PaymentStatusRefunded {
		t.Fatalf("payment should be refunded, got %s", payment.Status)
	}
	order, _ = f.orders.GetByID(f.order.ID)
	if order.PaymentStatus != constants.OrderPaymentStatusRefunded {
		t.Fatalf("order should be refunded, got %s", order.PaymentStatus)
	}
	refunds, total, err := f.svc.ListRefunds(f.buyer.ID, 1, 20)
	if err != nil || total != 2 || len(refunds) != 2 {
		t.Fatalf("expected 2 refunds, total=%d err=%v", total, err)
	}
}

func TestPaymentServiceWebhookRejectsEmptyBody(t *testing.T) {
	f := setupPaymentServiceTest(t)
	if _, err := f.svc.HandleWebhook(WebhookInput{Provider: "paypal", Body: []byte("  ")}); !errors.Is(err, ErrWebhookInvalid) {
		t.Fatalf("expected invalid webhook, got %v", err)
	}
	if _, err := f.svc.HandleWebhook(WebhookInput{Provider: "", Body: []byte("{}")}); !errors.Is(err, ErrWebhookInvalid) {
		t.Fatalf("expected provider to be required, got %v", err)
	}
}

func TestPaymentServiceLateWebhookKeepsRefundedPayment(t *testing.T) {
	f := setupPaymentServiceTest(t)
	method := f.createMethod(t, constants.PaymentTypeAlipay, true)
	intent, err := f.svc.CreateIntent(f.buyer.ID, f.order.ID, method.ID)
	if err != nil {
		t.Fatalf("create intent failed: %v", err)
	}
	notify := func(notifyID, tradeStatus string) {
		t.Helper()
		body := fmt.Sprintf("notify_id=%s&out_trade_no=%d&trade_status=%s", notifyID, intent.PaymentID, tradeStatus)
		if _, err := f.svc.HandleWebhook(WebhookInput{Provider: "alipay", Body: []byte(body)}); err != nil {
			t.Fatalf("webhook %s failed: %v", notifyID, err)
		}
	}

	notify("n-1", "TRADE_SUCCESS")
	if _, err := f.svc.Refund(f.buyer.ID, intent.PaymentID, nil, ""); err != nil {
		t.Fatalf("full refund failed: %v", err)
	}

	notify("n-2", "TRADE_SUCCESS")
	notify("n-3", "TRADE_CLOSED")

	payment, err := f.svc.Get(f.buyer.ID, intent.PaymentID)
	if err != nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusRefunded {
		t.Fatalf("refunded payment must stay refunded, got %s", payment.Status)
	}
	if !payment.RefundAmount.Decimal.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("refund amount changed: %s", payment.RefundAmount.String())
	}
	order, err := f.orders.GetByID(f.order.ID)
	if err != nil || order == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if order.PaymentStatus != constants.OrderPaymentStatusRefunded {
		t.Fatalf("order must stay refunded, got %s", order.PaymentStatus)
	}
	if got := len(f.env.notificationsFor(t, f.seller.ID, constants.NotificationPaymentReceived)); got != 1 {
		t.Fatalf("seller should be notified once, got %d", got)
	}
}

func TestPaymentServiceWebhookFailureThenSuccess(t *testing.T) {
	f := setupPaymentServiceTest(t)
	method := f.createMethod(t, constants.PaymentTypeAlipay, true)
	intent, err := f.svc.CreateIntent(f.buyer.ID, f.order.ID, method.ID)
	if err != nil {
		t.Fatalf("create intent failed: %v", err)
	}

	closed := fmt.Sprintf("notify_id=c-1&out_trade_no=%d&trade_status=TRADE_CLOSED", intent.PaymentID)
	if _, err := f.svc.HandleWebhook(WebhookInput{Provider: "alipay", Body: []byte(closed)}); err != nil {
		t.Fatalf("closed webhook failed: %v", err)
	}
	payment, _ := f.svc.Get(f.buyer.ID, intent.PaymentID)
	if payment.Status != constants.PaymentStatusFailed {
		t.Fatalf("payment should be failed, got %s", payment.Status)
	}

	success := fmt.Sprintf("notify_id=c-2&out_trade_no=%d&trade_status=TRADE_SUCCESS", intent.PaymentID)
	if _, err := f.svc.HandleWebhook(WebhookInput{Provider: "alipay", Body: []byte(success)}); err != nil {
		t.Fatalf("success webhook failed: %v", err)
	}
	payment, _ = f.svc.Get(f.buyer.ID, intent.PaymentID)
	if payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("late success should complete a failed payment, got %s", payment.Status)
	}
}

func TestWebhookCanTransition(t *testing.T) {
	cases := []struct {
		current string
		next    string
		want    bool
	}{
		{constants.PaymentStatusPending, constants.PaymentStatusCompleted, true},
		{constants.PaymentStatusProcessing, constants.PaymentStatusFailed, true},
		{constants.PaymentStatusFailed, constants.PaymentStatusCompleted, true},
		{constants.PaymentStatusFailed, constants.PaymentStatusFailed, false},
		{constants.PaymentStatusCompleted, constants.PaymentStatusCompleted, false},
		{constants.PaymentStatusCompleted, constants.PaymentStatusFailed, false},
		{constants.PaymentStatusRefunded, constants.PaymentStatusCompleted, false},
		{constants.PaymentStatusPartiallyRefunded, constants.PaymentStatusFailed, false},
		{constants.PaymentStatusCancelled, constants.PaymentStatusCompleted, false},
	}
	for _, tc := range cases {
		if got := webhookCanTransition(tc.current, tc.next); got != tc.want {
			t.Fatalf("webhookCanTransition(%s, %s) = %v, want %v", tc.current, tc.next, got, tc.want)
		}
	}
}
