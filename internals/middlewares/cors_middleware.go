// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsOrigins: origin produksi + origin dev (hanya saat development)
func CorsOrigins(frontendURL string, development bool) []string {
	origins := []string{}
	if frontendURL != "" {
		origins = append(origins, strings.TrimRight(frontendURL, "/"))
	}
	if development {
		origins = append(origins, "http://localhost:5173", "http://localhost:3000")
	}
	return origins
}

// CorsMiddleware membuat middleware CORS
func CorsMiddleware(origins []string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: len(origins) > 0,
	})
}
