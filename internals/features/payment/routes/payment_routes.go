package routes

import (
	paymentController "eventreg_backend/internals/features/payment/controller"

	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(api fiber.Router, ctrl *paymentController.PaymentController) {
	// PayU bisa kirim POST (form) atau GET
	api.Post("/payu-webhook", ctrl.HandlePayUConfirmation)
	api.Post("/payu-redirect", ctrl.HandlePayUConfirmation)
	api.Get("/payu-webhook", ctrl.HandlePayUConfirmation)
	api.Get("/payu-redirect", ctrl.HandlePayUConfirmation)

	api.Get("/midtrans-finish", ctrl.HandleMidtransFinish)
}
