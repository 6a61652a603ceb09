package controller

import (
	"log"
	"strings"

	"eventreg_backend/internals/features/payment/service"

	"github.com/gofiber/fiber/v2"
)

// StatusVerifier dipakai untuk cek ulang status transaksi ke gateway.
type StatusVerifier interface {
	Verify(orderID string) (string, error)
}

type PaymentController struct {
	// RegisterURL = URL halaman registrasi (tujuan redirect balik)
	RegisterURL string
	Midtrans    StatusVerifier // nil → percaya transaction_status dari query
}

func NewPaymentController(registerURL string, midtrans StatusVerifier) *PaymentController {
	return &PaymentController{RegisterURL: registerURL, Midtrans: midtrans}
}

/*
	========================================================
	  PayU: konfirmasi (webhook / redirect), GET atau POST
	========================================================
*/

func (ctrl *PaymentController) HandlePayUConfirmation(c *fiber.Ctx) error {
	// FormValue membaca query string maupun body form-urlencoded
	status := strings.TrimSpace(c.FormValue("status"))
	txnID := strings.TrimSpace(c.FormValue("txnid"))
	amount := strings.TrimSpace(c.FormValue("amount"))

	log.Printf("💳 PayU confirmation received: status=%q txnid=%q url=%s", status, txnID, c.OriginalURL())

	if strings.EqualFold(status, "success") {
		target := service.ReturnURL(ctrl.RegisterURL, "success", txnID, amount)
		log.Println("✅ Payment successful, redirecting to:", target)
		return c.Redirect(target, fiber.StatusFound)
	}

	target := service.ReturnURL(ctrl.RegisterURL, "failed", txnID, "")
	log.Println("❌ Payment failed, redirecting to:", target)
	return c.Redirect(target, fiber.StatusFound)
}

/*
	========================================================
	  Midtrans: finish callback Snap
	========================================================
*/

func (ctrl *PaymentController) HandleMidtransFinish(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Query("order_id"))
	if orderID == "" {
		return c.Redirect(service.ReturnURL(ctrl.RegisterURL, "error", "", ""), fiber.StatusFound)
	}

	outcome := service.MapMidtransStatus(c.Query("transaction_status"), c.Query("fraud_status"))
	if ctrl.Midtrans != nil {
		verified, err := ctrl.Midtrans.Verify(orderID)
		if err != nil {
			log.Println("[ERROR] Midtrans verify failed:", err)
			return c.Redirect(service.ReturnURL(ctrl.RegisterURL, "error", orderID, ""), fiber.StatusFound)
		}
		outcome = verified
	}

	log.Printf("💳 Midtrans finish: order=%s outcome=%s", orderID, outcome)
	switch outcome {
	case service.OutcomeSuccess:
		return c.Redirect(service.ReturnURL(ctrl.RegisterURL, "success", orderID, ""), fiber.StatusFound)
	case service.OutcomePending:
		// belum final: halaman registrasi tidak mengenali "pending" → draft tetap disimpan
		return c.Redirect(service.ReturnURL(ctrl.RegisterURL, "pending", orderID, ""), fiber.StatusFound)
	default:
		return c.Redirect(service.ReturnURL(ctrl.RegisterURL, "failed", orderID, ""), fiber.StatusFound)
	}
}
