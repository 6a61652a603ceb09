package routes

import (
	"time"

	"eventreg_backend/internals/configs"
	database "eventreg_backend/internals/databases"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime = time.Now()

func BaseRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config) {
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":     "Event Registration Server",
			"version":     "1.0.0",
			"environment": cfg.Env,
			"endpoints": fiber.Map{
				"health":        "/api/health",
				"register":      "/api/register",
				"registrations": "/api/registrations",
			},
		})
	})

	api.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(db); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"message":        "Server is running",
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    cfg.Env,
			"port":           cfg.Port,
		})
	})
}

// NotFound dipasang paling akhir
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"error":   "Route not found",
		"message": "Route not found",
		"path":    c.OriginalURL(),
	})
}

