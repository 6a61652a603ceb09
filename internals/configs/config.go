package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// =======================
// CONFIG
// =======================
type Config struct {
	Port string `env:"PORT" envDefault:"5000"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"` // postgres | sqlite
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"event_registration"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"require"`
	DBPath     string `env:"DB_PATH" envDefault:"event_registration.db"`

	// FrontendURL = origin tujuan redirect balik dari gateway
	FrontendURL string `env:"FRONTEND_URL"`
	// APIBaseURL = base endpoint backend yang dipanggil finalizer (default: server ini sendiri)
	APIBaseURL string `env:"API_BASE_URL"`

	PaymentGateway    string `env:"PAYMENT_GATEWAY" envDefault:"payu"` // payu | midtrans | bypass
	PayUPaymentURL    string `env:"PAYU_PAYMENT_URL" envDefault:"https://u.payu.in/HIVMYbY1Ko3O"`
	MidtransServerKey string `env:"MIDTRANS_SERVER_KEY"`
	MidtransUseProd   bool   `env:"MIDTRANS_USE_PROD" envDefault:"false"`

	RegistrationFee int64  `env:"REGISTRATION_FEE" envDefault:"500"`
	Currency        string `env:"CURRENCY" envDefault:"INR"`

	DraftSecret string `env:"DRAFT_SECRET"`

	EventName    string `env:"EVENT_NAME" envDefault:"LG 87 1st Skating Championship"`
	EventDate    string `env:"EVENT_DATE" envDefault:"Sunday, September 7, 2025"`
	EventVenue   string `env:"EVENT_VENUE" envDefault:"LG 87 Play Arena"`
	SupportEmail string `env:"SUPPORT_EMAIL" envDefault:"support@lg87arena.com"`

	ReportCron string `env:"REPORT_CRON" envDefault:"0 8 * * *"`
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// PublicURL: origin publik situs (dipakai untuk redirect dari gateway).
func (c *Config) PublicURL() string {
	if c.FrontendURL != "" {
		return strings.TrimRight(c.FrontendURL, "/")
	}
	return "http://localhost:" + c.Port
}

// BackendURL: base URL API registrasi.
func (c *Config) BackendURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	return "http://127.0.0.1:" + c.Port + "/api"
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() (*Config, error) {
	if os.Getenv("RENDER") == "" && os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env file not found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on a managed platform, using system ENV")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DraftSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("DRAFT_SECRET must be set when APP_ENV=%s", cfg.Env)
		}
		log.Println("⚠️ DRAFT_SECRET is not set, using an insecure development secret")
		cfg.DraftSecret = "dev-draft-secret"
	}
	if cfg.RegistrationFee <= 0 {
		return nil, fmt.Errorf("REGISTRATION_FEE must be positive, got %d", cfg.RegistrationFee)
	}

	log.Printf("[INFO] env=%s port=%s gateway=%s db=%s", cfg.Env, cfg.Port, cfg.PaymentGateway, cfg.DBDriver)
	return &cfg, nil
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(level gormLogger.LogLevel) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
