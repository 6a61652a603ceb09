package routes

import (
	checkoutController "eventreg_backend/internals/features/checkout/controller"

	"github.com/gofiber/fiber/v2"
)

func CheckoutRoutes(app fiber.Router, ctrl *checkoutController.CheckoutController, submitLimiter fiber.Handler) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/register", fiber.StatusFound)
	})
	app.Get("/register", ctrl.ShowRegister)
	app.Post("/register", submitLimiter, ctrl.SubmitRegister)
	app.Get("/success", ctrl.ShowSuccess)
	app.Get("/policies", ctrl.ShowPolicies)
}
