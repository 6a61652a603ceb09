package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventreg_backend/internals/features/checkout/draft"
	paymentService "eventreg_backend/internals/features/payment/service"
)

// ErrPaymentRedirect: URL gateway gagal dibentuk; draft tetap tersimpan.
var ErrPaymentRedirect = errors.New("Failed to redirect to payment gateway. Please try again.")

type Initiator struct {
	Gateway paymentService.Gateway
	Fee     Fee
	Now     func() time.Time
}

// Initiate menyimpan draft lalu mengembalikan URL halaman pembayaran.
// Setelah caller me-redirect ke URL ini tidak ada kode lain yang dijalankan untuk request tsb.
func (i *Initiator) Initiate(ctx context.Context, store draft.Store, d draft.Draft) (string, error) {
	if err := store.Save(d); err != nil {
		return "", fmt.Errorf("save draft: %w", err)
	}

	if i.Gateway == nil {
		log.Println("[ERROR] payment gateway not configured")
		return "", fmt.Errorf("%w (%v)", ErrPaymentRedirect, paymentService.ErrNotConfigured)
	}

	now := time.Now
	if i.Now != nil {
		now = i.Now
	}
	target, err := i.Gateway.CheckoutURL(ctx, paymentService.CheckoutRequest{
		OrderID: fmt.Sprintf("REG-%d", now().UnixNano()),
		Amount:  i.Fee.Amount,
		User:    d,
	})
	if err != nil {
		log.Printf("[ERROR] build %s checkout URL: %v", i.Gateway.Method(), err)
		return "", fmt.Errorf("%w (%v)", ErrPaymentRedirect, err)
	}
	return target, nil
}
