package controller

import (
	"context"
	"errors"
	"log"
	"net/url"

	"eventreg_backend/internals/constants"
	"eventreg_backend/internals/features/checkout/draft"
	"eventreg_backend/internals/features/checkout/service"
	"eventreg_backend/internals/features/checkout/views"

	"github.com/gofiber/fiber/v2"
)

type Finalizer interface {
	Finalize(ctx context.Context, d draft.Draft, conf service.PaymentConfirmation) (*service.Ack, error)
}

type CheckoutController struct {
	Reconciler *service.Reconciler
	Initiator  *service.Initiator
	Finalizer  Finalizer
	Views      *views.Renderer
	Event      views.EventInfo
	Fee        service.Fee

	// StoreFor membuat slot draft untuk request ini (default: cookie bertanda tangan)
	StoreFor func(c *fiber.Ctx) draft.Store
}

func CookieStoreFactory(sealer *draft.Sealer, secure bool) func(c *fiber.Ctx) draft.Store {
	return func(c *fiber.Ctx) draft.Store {
		return draft.NewCookieStore(c, sealer, constants.DraftCookieName, secure)
	}
}

func (ctrl *CheckoutController) page(form draft.Draft) views.RegisterPage {
	return views.RegisterPage{
		Event:         ctrl.Event,
		Fee:           ctrl.Fee.Display(),
		Form:          form,
		GradeOptions:  constants.GradeOptions,
		GenderOptions: constants.GenderOptions,
	}
}

// queryValues: parameter query apa adanya; satu parameter rusak tidak membuang yang lain.
func queryValues(c *fiber.Ctx) url.Values {
	q := url.Values{}
	c.Request().URI().QueryArgs().VisitAll(func(k, v []byte) {
		q.Add(string(k), string(v))
	})
	return q
}

/*
	========================================================
	  GET /register — rekonsiliasi hasil bayar tiap page load
	========================================================
*/

func (ctrl *CheckoutController) ShowRegister(c *fiber.Ctx) error {
	store := ctrl.StoreFor(c)

	query := queryValues(c)

	res, err := ctrl.Reconciler.Reconcile(c.UserContext(), store, query,
		func(ctx context.Context, d draft.Draft, conf service.PaymentConfirmation) error {
			_, ferr := ctrl.Finalizer.Finalize(ctx, d, conf)
			return ferr
		})

	switch res.State {
	case service.StateConfirmed:
		log.Printf("✅ Registration confirmed for payment %s", res.Outcome.TransactionID)
		return c.Redirect("/success?payment_id="+url.QueryEscape(res.Outcome.TransactionID), fiber.StatusSeeOther)

	case service.StateFinalizationFailed:
		p := ctrl.page(*res.Draft)
		p.Message, p.MessageKind = err.Error(), "error"
		return ctrl.Views.Render(c, fiber.StatusOK, "register", p)

	case service.StateReconciliationFailed:
		msg := "Failed to verify payment completion. Please contact support."
		if errors.Is(err, service.ErrDraftNotFound) || errors.Is(err, service.ErrPaymentFailed) {
			msg = err.Error()
		} else {
			log.Println("[ERROR] reconcile:", err)
		}
		p := ctrl.page(draft.Draft{})
		p.Message, p.MessageKind = "Payment failed: "+msg, "error"
		return ctrl.Views.Render(c, fiber.StatusOK, "register", p)
	}

	if err != nil {
		log.Println("[ERROR] reconcile:", err)
	}

	// page load biasa: isi ulang form dari draft (kalau ada)
	form, _, lerr := store.Load()
	if lerr != nil {
		log.Println("[WARN] restore draft:", lerr)
	}
	return ctrl.Views.Render(c, fiber.StatusOK, "register", ctrl.page(form))
}

/*
	========================================================
	  POST /register — validasi, simpan draft, redirect ke gateway
	========================================================
*/

func (ctrl *CheckoutController) SubmitRegister(c *fiber.Ctx) error {
	var form draft.Draft
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}
	form.Normalize()
	termsAccepted := c.FormValue("terms") != ""

	p := ctrl.page(form)
	p.TermsAccepted = termsAccepted
	if details := form.Validate(); len(details) > 0 {
		p.Errors = make(map[string]string, len(details))
		for _, d := range details {
			if _, dup := p.Errors[d.Field]; !dup {
				p.Errors[d.Field] = d.Message
			}
		}
	}
	if !termsAccepted {
		p.TermsError = "Please accept the terms and conditions to continue."
	}
	if len(p.Errors) > 0 || p.TermsError != "" {
		return ctrl.Views.Render(c, fiber.StatusUnprocessableEntity, "register", p)
	}

	target, err := ctrl.Initiator.Initiate(c.UserContext(), ctrl.StoreFor(c), form)
	if err != nil {
		msg := service.ErrPaymentRedirect.Error()
		if !errors.Is(err, service.ErrPaymentRedirect) {
			log.Println("[ERROR] initiate payment:", err)
			msg = "Failed to initiate payment. Please try again."
		}
		p.Message, p.MessageKind = "Payment failed: "+msg, "error"
		return ctrl.Views.Render(c, fiber.StatusOK, "register", p)
	}

	// kontrol pindah ke gateway; handler selesai di sini
	return c.Redirect(target, fiber.StatusSeeOther)
}

/*
	========================================================
	  GET /success — tampilan konfirmasi
	========================================================
*/

func (ctrl *CheckoutController) ShowPolicies(c *fiber.Ctx) error {
	return ctrl.Views.Render(c, fiber.StatusOK, "policies", views.PoliciesPage{
		Event:    ctrl.Event,
		Policies: views.Policies,
	})
}

func (ctrl *CheckoutController) ShowSuccess(c *fiber.Ctx) error {
	return ctrl.Views.Render(c, fiber.StatusOK, "success", views.SuccessPage{
		Event:     ctrl.Event,
		Message:   service.SuccessMessage,
		PaymentID: c.Query("payment_id"),
	})
}
