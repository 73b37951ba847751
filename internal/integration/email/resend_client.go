// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/branchledger/backend/internal/application/adapter"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// permanentErrorPatterns marks provider errors that retrying cannot fix,
// such as 401 (Unauthorized), 403 (Forbidden) and 422 (Validation Error).
// Rate limits (429) and 5xx responses stay retryable.
var permanentErrorPatterns = []string{
	"401",
	"403",
	"422",
	"unauthorized",
	"forbidden",
	"validation",
	"invalid",
	"bad request",
}

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send delivers one email through Resend. Errors come back wrapped as
// permanent or temporary so the worker knows whether to retry.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{ProviderID: resp.Id}, nil
}

// classifySendError wraps a provider error with the matching retry class.
func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, pattern := range permanentErrorPatterns {
		if strings.Contains(msg, pattern) {
			return domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				err,
			)
		}
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"temporary email failure",
		err,
	)
}

// MockEmailSender records sends in memory. It stands in for Resend when
// no API key is configured and in tests.
type MockEmailSender struct {
	SentEmails  []adapter.SendEmailInput
	ShouldFail  bool
	FailError   error
	IsPermanent bool
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{SentEmails: make([]adapter.SendEmailInput, 0)}
}

// Send records the email, or fails as configured by SetFailure.
func (m *MockEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if m.ShouldFail {
		code := domainerror.ErrCodeTemporaryEmailFailure
		msg := "mock temporary failure"
		if m.IsPermanent {
			code = domainerror.ErrCodePermanentEmailFailure
			msg = "mock permanent failure"
		}
		return nil, domainerror.NewEmailError(code, msg, m.FailError)
	}

	m.SentEmails = append(m.SentEmails, input)
	return &adapter.SendEmailResult{
		ProviderID: fmt.Sprintf("mock-%d", len(m.SentEmails)),
	}, nil
}

// SetFailure configures the mock to fail with the given error.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.ShouldFail = true
	m.FailError = err
	m.IsPermanent = permanent
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)
