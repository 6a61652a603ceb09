package routes

import (
	registrationController "eventreg_backend/internals/features/registrations/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func RegistrationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := registrationController.NewRegistrationController(db)

	api.Post("/register", ctrl.RegisterUser)
	api.Get("/registrations", ctrl.GetAllRegistrations) // admin listing
}
