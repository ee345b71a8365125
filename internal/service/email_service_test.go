package service

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/ait-marketplace/internal/config"
)

func TestSendEmailUsesTransportAndBuildsMessage(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{
		Enabled:  true,
		Host:     "smtp.example.com",
		Port:     587,
		From:     "noreply@ait.ac.th",
		FromName: "AIT Marketplace",
	})
	var captured []byte
	var capturedTo []string
	var capturedAddr string
	svc.transport = func(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
		capturedAddr = addr
		capturedTo = to
		captured = msg
		return nil
	}

	if err := svc.SendEmail("st123@ait.ac.th", "Order update", "Your order shipped"); err != nil {
		t.Fatalf("send email failed: %v", err)
	}
	if capturedAddr != "smtp.example.com:587" {
		t.Fatalf("unexpected addr: %s", capturedAddr)
	}
	if len(capturedTo) != 1 || capturedTo[0] != "st123@ait.ac.th" {
		t.Fatalf("unexpected recipients: %v", capturedTo)
	}
	msg := string(captured)
	for _, want := range []string{"To: st123@ait.ac.th\r\n", "Subject: ", "Content-Type: text/plain; charset=UTF-8", "Your order shipped"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q: %s", want, msg)
		}
	}
}

func TestSendEmailRejectsDisabledAndInvalid(t *testing.T) {
	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := disabled.SendEmail("a@ait.ac.th", "hi", "body"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}

	missingHost := NewEmailService(&config.EmailConfig{Enabled: true, Port: 25, From: "a@ait.ac.th"})
	if err := missingHost.SendEmail("a@ait.ac.th", "hi", "body"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}

	svc := NewEmailService(&config.EmailConfig{Enabled: true, Host: "smtp", Port: 25, From: "a@ait.ac.th"})
	svc.transport = func(string, smtp.Auth, string, string, []string, []byte) error {
		return errors.New("550 5.1.1 recipient address rejected")
	}
	if err := svc.SendEmail("not-an-email", "hi", "body"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if err := svc.SendEmail("ghost@ait.ac.th", "hi", "body"); !errors.Is(err, ErrEmailRecipientRejected) {
		t.Fatalf("expected ErrEmailRecipientRejected, got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
