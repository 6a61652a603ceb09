package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"eventreg_backend/internals/configs"
	database "eventreg_backend/internals/databases"
	"eventreg_backend/internals/features/registrations/model"
	scheduler "eventreg_backend/internals/features/registrations/scheduler"
	helper "eventreg_backend/internals/helpers"
	middlewares "eventreg_backend/internals/middlewares"
	routes "eventreg_backend/internals/route"
)

func main() {
	cfg, err := configs.LoadEnv()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		EnableIPValidation:      true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	middlewares.SetupMiddlewares(app, middlewares.CorsOrigins(cfg.FrontendURL, cfg.IsDevelopment()))

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("❌ DB: %v", err)
	}
	database.TunePool(db)
	if err := db.AutoMigrate(&model.RegistrationModel{}); err != nil {
		log.Fatalf("❌ migrate: %v", err)
	}
	database.WarmUpQueries(db)

	// ⏱ scheduler setelah DB siap
	reportCron, err := scheduler.StartRegistrationCron(db, cfg.ReportCron)
	if err != nil {
		log.Fatalf("❌ cron: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, db, cfg)

	go func() {
		log.Printf("🚀 Listening on :%s (public %s)", cfg.Port, cfg.PublicURL())
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	<-reportCron.Stop().Done()
	_ = app.ShutdownWithContext(ctx)
	database.Close(db)
	log.Println("🔄 Server stopped")
}
