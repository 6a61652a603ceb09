package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"eventreg_backend/internals/features/checkout/draft"
	"eventreg_backend/internals/features/registrations/dto"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

const (
	SuccessMessage         = "Registration and payment completed successfully!"
	defaultFinalizeFailure = "Registration failed after payment"
	defaultFinalizeTimeout = 10 * time.Second
)

// FinalizationError: backend menolak / tidak bisa dihubungi setelah pembayaran.
// Final, butuh tindak lanjut manual dengan transaction id.
type FinalizationError struct {
	TransactionID string
	StatusCode    int
	Message       string
	Cause         error
}

func (e *FinalizationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = defaultFinalizeFailure
	}
	msg = strings.TrimRight(msg, ". ")
	return fmt.Sprintf("%s. Please contact support with your payment ID: %s", msg, e.TransactionID)
}

func (e *FinalizationError) Unwrap() error { return e.Cause }

type Finalizer struct {
	// BaseURL = base API, mis. http://127.0.0.1:5000/api
	BaseURL string
	Timeout time.Duration
}

type Ack = dto.APIResponse[dto.RegistrationResponse]

func (f *Finalizer) timeout(ctx context.Context) time.Duration {
	t := f.Timeout
	if t <= 0 {
		t = defaultFinalizeTimeout
	}
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < t {
			t = left
		}
	}
	return t
}

// Finalize mengirim draft + konfirmasi pembayaran ke endpoint registrasi. Tidak ada retry.
func (f *Finalizer) Finalize(ctx context.Context, d draft.Draft, conf PaymentConfirmation) (*Ack, error) {
	fail := func(status int, msg string, cause error) (*Ack, error) {
		log.Printf("[ERROR] finalize registration (payment %s): status=%d msg=%q err=%v", conf.PaymentID, status, msg, cause)
		return nil, &FinalizationError{TransactionID: conf.PaymentID, StatusCode: status, Message: msg, Cause: cause}
	}
	if err := ctx.Err(); err != nil {
		return fail(0, "", err)
	}

	user := d
	payload := dto.RegistrationRequest{
		User: &user,
		Payment: &dto.PaymentData{
			PaymentID:     conf.PaymentID,
			OrderID:       conf.OrderID,
			AmountPaid:    conf.AmountPaid,
			Currency:      conf.Currency,
			PaymentStatus: "completed",
			PaymentMethod: conf.Method,
			VerifiedAt:    conf.VerifiedAt.Format(time.RFC3339),
		},
	}

	agent := fiber.Post(strings.TrimRight(f.BaseURL, "/") + "/register")
	agent.JSONEncoder(sonic.Marshal)
	agent.JSON(payload)
	agent.Timeout(f.timeout(ctx))

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fail(code, "", errors.Join(errs...))
	}

	var ack Ack
	if err := sonic.Unmarshal(body, &ack); err != nil {
		return fail(code, "", fmt.Errorf("decode response: %w", err))
	}
	if code < 200 || code > 299 || !ack.Success {
		return fail(code, ack.Message, nil)
	}
	return &ack, nil
}
