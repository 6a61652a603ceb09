// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"eventreg_backend/internals/configs"
	checkoutController "eventreg_backend/internals/features/checkout/controller"
	"eventreg_backend/internals/features/checkout/draft"
	checkoutRoutes "eventreg_backend/internals/features/checkout/routes"
	checkoutService "eventreg_backend/internals/features/checkout/service"
	"eventreg_backend/internals/features/checkout/views"
	paymentController "eventreg_backend/internals/features/payment/controller"
	paymentRoutes "eventreg_backend/internals/features/payment/routes"
	paymentService "eventreg_backend/internals/features/payment/service"
	registrationRoutes "eventreg_backend/internals/features/registrations/routes"
	"eventreg_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Gateways membangun gateway pembayaran sesuai PAYMENT_GATEWAY.
// verifier nil kecuali Midtrans aktif.
func Gateways(cfg *configs.Config) (paymentService.Gateway, paymentController.StatusVerifier) {
	registerURL := cfg.PublicURL() + "/register"

	switch cfg.PaymentGateway {
	case "midtrans":
		if cfg.MidtransServerKey == "" {
			log.Println("❌ MIDTRANS_SERVER_KEY is not set, checkout will fail")
			return paymentService.MidtransGateway{FinishURL: cfg.PublicURL() + "/api/midtrans-finish"}, nil
		}
		snapClient, coreClient := paymentService.NewMidtransClients(cfg.MidtransServerKey, cfg.MidtransUseProd)
		return paymentService.MidtransGateway{
				Snap:      snapClient,
				FinishURL: cfg.PublicURL() + "/api/midtrans-finish",
			},
			paymentService.MidtransVerifier{Core: coreClient}
	case "bypass":
		if !cfg.IsDevelopment() {
			log.Println("⚠️ PAYMENT_GATEWAY=bypass outside development, falling back to PayU")
			return paymentService.PayULink{URL: cfg.PayUPaymentURL}, nil
		}
		log.Println("🧪 DEV MODE: bypassing payment gateway")
		return paymentService.DevBypass{ReturnURL: registerURL}, nil
	default:
		return paymentService.PayULink{URL: cfg.PayUPaymentURL}, nil
	}
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	fee := checkoutService.Fee{Amount: cfg.RegistrationFee, Currency: cfg.Currency}
	gateway, verifier := Gateways(cfg)

	// ===================== API =====================
	log.Println("[INFO] Setting up API routes...")
	api := app.Group("/api")
	BaseRoutes(api, db, cfg)
	registrationRoutes.RegistrationRoutes(api, db)
	paymentRoutes.PaymentRoutes(api, paymentController.NewPaymentController(cfg.PublicURL()+"/register", verifier))

	// ===================== WEB =====================
	log.Println("[INFO] Setting up registration pages...")
	checkout := &checkoutController.CheckoutController{
		Reconciler: &checkoutService.Reconciler{
			Fee:         fee,
			Method:      gateway.Method(),
			OrderPrefix: gateway.OrderPrefix(),
		},
		Initiator: &checkoutService.Initiator{Gateway: gateway, Fee: fee},
		Finalizer: &checkoutService.Finalizer{BaseURL: cfg.BackendURL(), Timeout: 10 * time.Second},
		Views:     views.MustNew(),
		Event: views.EventInfo{
			Name:         cfg.EventName,
			Date:         cfg.EventDate,
			Venue:        cfg.EventVenue,
			SupportEmail: cfg.SupportEmail,
		},
		Fee:      fee,
		StoreFor: checkoutController.CookieStoreFactory(draft.NewSealer(cfg.DraftSecret), !cfg.IsDevelopment()),
	}
	checkoutRoutes.CheckoutRoutes(app, checkout, middlewares.RegisterRateLimiter())

	app.Use(NotFound)
}
