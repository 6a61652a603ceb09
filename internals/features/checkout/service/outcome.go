package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Nama parameter yang mungkin dipakai gateway saat redirect balik (urutan = prioritas).
var (
	StatusParams      = []string{"payment_status", "status", "payu_status", "result"}
	TransactionParams = []string{"txnid", "transaction_id", "payment_id", "payu_payment_id", "mihpayid"}
)

var (
	successStatuses = map[string]bool{"success": true, "completed": true, "successful": true}
	failureStatuses = map[string]bool{"failure": true, "failed": true, "cancelled": true, "error": true}
)

// PaymentOutcome = hasil bayar dari query string; tidak pernah disimpan.
type PaymentOutcome struct {
	Status        string // sudah lowercase
	TransactionID string
}

func ParseOutcome(q url.Values) PaymentOutcome {
	return PaymentOutcome{
		Status:        strings.ToLower(firstNonEmpty(q, StatusParams)),
		TransactionID: firstNonEmpty(q, TransactionParams),
	}
}

func firstNonEmpty(q url.Values, names []string) string {
	for _, n := range names {
		if v := strings.TrimSpace(q.Get(n)); v != "" {
			return v
		}
	}
	return ""
}

// IsSuccess: status sukses DAN ada transaction id.
func (o PaymentOutcome) IsSuccess() bool {
	return successStatuses[o.Status] && o.TransactionID != ""
}

func (o PaymentOutcome) IsFailure() bool {
	return failureStatuses[o.Status]
}

/* ===================== Fee & konfirmasi ===================== */

type Fee struct {
	Amount   int64
	Currency string
}

func (f Fee) Display() string {
	if strings.EqualFold(f.Currency, "INR") {
		return fmt.Sprintf("₹%d", f.Amount)
	}
	return fmt.Sprintf("%s %d", f.Currency, f.Amount)
}

// PaymentConfirmation dibuat di sisi client setelah gateway melaporkan sukses.
type PaymentConfirmation struct {
	PaymentID     string    `json:"payment_id"`
	OrderID       string    `json:"order_id"`
	AmountPaid    int64     `json:"amount_paid"`
	AmountDisplay string    `json:"amount_display"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	Method        string    `json:"method"`
	VerifiedAt    time.Time `json:"verified_at"`
}
