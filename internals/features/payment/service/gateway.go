package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"eventreg_backend/internals/features/registrations/dto"

	"github.com/google/uuid"
)

const (
	MethodPayU     = "PayU"
	MethodMidtrans = "Midtrans"
	MethodBypass   = "DEV_MODE_BYPASS"
)

// ErrNotConfigured: URL halaman pembayaran tidak bisa dibentuk (salah konfigurasi).
var ErrNotConfigured = errors.New("payment gateway is not configured")

type CheckoutRequest struct {
	OrderID string
	Amount  int64
	User    dto.UserData
}

// Gateway = halaman pembayaran eksternal tujuan redirect.
type Gateway interface {
	// Method = label metode yang dicatat di konfirmasi pembayaran
	Method() string
	// OrderPrefix = prefix order_id yang dibuat saat browser kembali
	OrderPrefix() string
	CheckoutURL(ctx context.Context, req CheckoutRequest) (string, error)
}

/* ===================== PayU (link statis) ===================== */

type PayULink struct {
	URL string
}

func (g PayULink) Method() string      { return MethodPayU }
func (g PayULink) OrderPrefix() string { return "PAYU" }

func (g PayULink) CheckoutURL(_ context.Context, _ CheckoutRequest) (string, error) {
	return absoluteURL(g.URL)
}

/* ===================== Dev bypass ===================== */

// DevBypass melewati gateway: langsung balik ke halaman registrasi dengan status sukses.
// Hanya untuk development.
type DevBypass struct {
	ReturnURL string
	Now       func() time.Time
}

func (g DevBypass) Method() string      { return MethodBypass }
func (g DevBypass) OrderPrefix() string { return "DEV_ORDER" }

func (g DevBypass) CheckoutURL(_ context.Context, _ CheckoutRequest) (string, error) {
	base, err := absoluteURL(g.ReturnURL)
	if err != nil {
		return "", err
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	txnID := fmt.Sprintf("DEV_%d_%s", now().UnixMilli(), suffix)
	return ReturnURL(base, "success", txnID, ""), nil
}

/* ===================== Helpers ===================== */

func absoluteURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty payment URL", ErrNotConfigured)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: invalid payment URL %q", ErrNotConfigured, raw)
	}
	return u.String(), nil
}

// ReturnURL membentuk URL balik ke halaman registrasi dengan parameter hasil bayar.
func ReturnURL(registerURL, status, txnID, amount string) string {
	q := url.Values{}
	q.Set("payment_status", status)
	if txnID != "" {
		q.Set("txnid", txnID)
	}
	if amount != "" {
		q.Set("amount", amount)
	}
	sep := "?"
	if strings.Contains(registerURL, "?") {
		sep = "&"
	}
	return registerURL + sep + q.Encode()
}
