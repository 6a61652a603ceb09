package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"eventreg_backend/internals/features/checkout/draft"
)

var (
	ErrDraftNotFound = errors.New("Registration data not found. Please try registering again.")
	ErrPaymentFailed = errors.New("Payment was unsuccessful. Please try again.")
)

// PaidFunc = lanjutan setelah pembayaran sukses (biasanya finalisasi ke backend).
// Draft baru dihapus setelah fungsi ini selesai tanpa error.
type PaidFunc func(ctx context.Context, d draft.Draft, conf PaymentConfirmation) error

type Result struct {
	State        State
	Outcome      PaymentOutcome
	Draft        *draft.Draft
	Confirmation *PaymentConfirmation
}

type Reconciler struct {
	Fee         Fee
	Method      string
	OrderPrefix string
	Now         func() time.Time
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Reconcile dijalankan sekali tiap page load. Tanpa status yang dikenali → no-op
// (State Idle, err nil) dan draft tidak disentuh.
func (r *Reconciler) Reconcile(ctx context.Context, store draft.Store, q url.Values, onPaid PaidFunc) (Result, error) {
	outcome := ParseOutcome(q)
	res := Result{State: StateIdle, Outcome: outcome}

	switch {
	case outcome.IsSuccess():
		res.State = StateReconciling
		d, found, err := store.Load()
		if err != nil {
			res.State = StateReconciliationFailed
			return res, fmt.Errorf("load draft: %w", err)
		}
		if !found {
			res.State = StateReconciliationFailed
			return res, ErrDraftNotFound
		}

		conf := r.confirmation(outcome.TransactionID)
		res.Draft = &d
		res.Confirmation = &conf

		res.State = StateFinalizing
		if onPaid == nil {
			return res, errors.New("reconcile: no continuation for paid outcome")
		}
		if err := onPaid(ctx, d, conf); err != nil {
			// pembayaran sudah terjadi: draft dibiarkan, tidak ada retry otomatis
			res.State = StateFinalizationFailed
			return res, err
		}
		res.State = StateConfirmed
		if err := store.Clear(); err != nil {
			return res, fmt.Errorf("clear draft: %w", err)
		}
		return res, nil

	case outcome.IsFailure():
		res.State = StateReconciliationFailed
		if err := store.Clear(); err != nil {
			return res, fmt.Errorf("clear draft: %w", err)
		}
		return res, ErrPaymentFailed
	}

	return res, nil
}

func (r *Reconciler) confirmation(txnID string) PaymentConfirmation {
	now := r.now()
	prefix := r.OrderPrefix
	if prefix == "" {
		prefix = "ORDER"
	}
	return PaymentConfirmation{
		PaymentID:     txnID,
		OrderID:       fmt.Sprintf("%s_%d", prefix, now.UnixMilli()),
		AmountPaid:    r.Fee.Amount,
		AmountDisplay: r.Fee.Display(),
		Currency:      r.Fee.Currency,
		Status:        "completed",
		Method:        r.Method,
		VerifiedAt:    now.UTC(),
	}
}
