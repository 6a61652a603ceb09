package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"eventreg_backend/internals/features/checkout/draft"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)

func newReconciler() *Reconciler {
	return &Reconciler{
		Fee:         Fee{Amount: 500, Currency: "INR"},
		Method:      "PayU",
		OrderPrefix: "PAYU",
		Now:         func() time.Time { return fixedNow },
	}
}

func ashaDraft() draft.Draft {
	return draft.Draft{
		Name:        "Asha",
		CoachName:   "Ravi Kumar",
		ParentName:  "Meera Rao",
		ParentPhone: "9876543210",
		Grade:       "5",
		Gender:      "female",
		Address:     "Prestige Lakeside Habitat",
	}
}

func query(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

// storeSpy mencatat apakah draft masih ada saat continuation berjalan.
type storeSpy struct {
	*draft.MemoryStore
	clears int
}

func (s *storeSpy) Clear() error {
	s.clears++
	return s.MemoryStore.Clear()
}

func TestReconcileSuccessInvokesContinuationBeforeClearing(t *testing.T) {
	for _, status := range []string{"success", "SUCCESS", "Completed", "successful"} {
		t.Run(status, func(t *testing.T) {
			store := &storeSpy{MemoryStore: draft.NewMemoryStore()}
			require.NoError(t, store.Save(ashaDraft()))

			calls := 0
			var gotConf PaymentConfirmation
			res, err := newReconciler().Reconcile(context.Background(), store, query(t, "payment_status="+status+"&txnid=TXN1"),
				func(_ context.Context, d draft.Draft, conf PaymentConfirmation) error {
					calls++
					gotConf = conf
					assert.Equal(t, "Asha", d.Name)
					// draft masih tersedia selama continuation
					_, found, _ := store.Load()
					assert.True(t, found)
					assert.Zero(t, store.clears)
					return nil
				})
			require.NoError(t, err)

			assert.Equal(t, 1, calls)
			assert.Equal(t, StateConfirmed, res.State)
			assert.Equal(t, "TXN1", gotConf.PaymentID)
			assert.Equal(t, "PAYU_1756722600000", gotConf.OrderID)
			assert.Equal(t, int64(500), gotConf.AmountPaid)
			assert.Equal(t, "₹500", gotConf.AmountDisplay)
			assert.Equal(t, "INR", gotConf.Currency)
			assert.Equal(t, "completed", gotConf.Status)
			assert.Equal(t, "PayU", gotConf.Method)
			assert.Equal(t, fixedNow, gotConf.VerifiedAt)
			assert.Equal(t, gotConf, *res.Confirmation)

			_, found, _ := store.Load()
			assert.False(t, found)
			assert.Equal(t, 1, store.clears)
		})
	}
}

func TestReconcileSuccessWithoutDraft(t *testing.T) {
	store := draft.NewMemoryStore()
	called := false

	res, err := newReconciler().Reconcile(context.Background(), store, query(t, "payment_status=success&txnid=TXN1"),
		func(context.Context, draft.Draft, PaymentConfirmation) error {
			called = true
			return nil
		})

	require.ErrorIs(t, err, ErrDraftNotFound)
	assert.Contains(t, err.Error(), "not found")
	assert.False(t, called)
	assert.Equal(t, StateReconciliationFailed, res.State)
	assert.Nil(t, res.Confirmation)
}

func TestReconcileFinalizationFailureKeepsDraft(t *testing.T) {
	store := draft.NewMemoryStore()
	require.NoError(t, store.Save(ashaDraft()))
	boom := &FinalizationError{TransactionID: "TXN1"}

	res, err := newReconciler().Reconcile(context.Background(), store, query(t, "status=success&payment_id=TXN1"),
		func(context.Context, draft.Draft, PaymentConfirmation) error { return boom })

	require.ErrorIs(t, err, boom)
	assert.Equal(t, StateFinalizationFailed, res.State)
	_, found, _ := store.Load()
	assert.True(t, found)
}

func TestReconcileFailureStatusesClearDraft(t *testing.T) {
	for _, status := range []string{"failure", "failed", "cancelled", "ERROR"} {
		t.Run(status, func(t *testing.T) {
			store := draft.NewMemoryStore()
			require.NoError(t, store.Save(ashaDraft()))
			called := false

			res, err := newReconciler().Reconcile(context.Background(), store, query(t, "payment_status="+status+"&txnid=ABC123"),
				func(context.Context, draft.Draft, PaymentConfirmation) error {
					called = true
					return nil
				})

			require.ErrorIs(t, err, ErrPaymentFailed)
			assert.False(t, called)
			assert.Equal(t, StateReconciliationFailed, res.State)
			_, found, _ := store.Load()
			assert.False(t, found)
		})
	}
}

func TestReconcileNoOp(t *testing.T) {
	for _, raw := range []string{"", "payment_status=", "payment_status=pending&txnid=X", "payment_status=success", "foo=bar"} {
		t.Run(raw, func(t *testing.T) {
			store := draft.NewMemoryStore()
			require.NoError(t, store.Save(ashaDraft()))
			called := false

			res, err := newReconciler().Reconcile(context.Background(), store, query(t, raw),
				func(context.Context, draft.Draft, PaymentConfirmation) error {
					called = true
					return nil
				})

			require.NoError(t, err)
			assert.False(t, called)
			assert.Equal(t, StateIdle, res.State)
			got, found, _ := store.Load()
			assert.True(t, found)
			assert.Equal(t, ashaDraft(), got)
		})
	}
}

type failingStore struct{ draft.MemoryStore }

func (failingStore) Load() (draft.Draft, bool, error) {
	return draft.Draft{}, false, errors.New("storage unavailable")
}

func TestReconcileLoadError(t *testing.T) {
	res, err := newReconciler().Reconcile(context.Background(), &failingStore{}, query(t, "payment_status=success&txnid=T"),
		func(context.Context, draft.Draft, PaymentConfirmation) error { return nil })
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDraftNotFound)
	assert.Equal(t, StateReconciliationFailed, res.State)
}
