package database

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"time"

	"eventreg_backend/internals/configs"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func ConnectDB(cfg *configs.Config) (*gorm.DB, error) {
	level := gormLogger.Warn
	if cfg.IsDevelopment() {
		level = gormLogger.Info
	}
	gormCfg := &gorm.Config{
		Logger:         configs.NewGormLogger(level),
		TranslateError: true, // unique violation → gorm.ErrDuplicatedKey
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		log.Printf("🔌 Connecting to SQLite (%s)...", cfg.DBPath)
		dialector = sqlite.Open(cfg.DBPath)
	case "postgres", "":
		log.Println("🔌 Connecting to PostgreSQL...")
		dialector = postgres.New(postgres.Config{
			DSN:                  PostgresDSN(cfg),
			PreferSimpleProtocol: true, // 👍 aman untuk PgBouncer (transaction pooling)
		})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	log.Println("✅ DB connected.")
	return db, nil
}

// PostgresDSN membentuk URL koneksi; user/password di-escape (aman untuk @ / # dsb).
func PostgresDSN(cfg *configs.Config) string {
	q := url.Values{}
	q.Set("sslmode", cfg.DBSSLMode)
	q.Set("application_name", "eventreg")
	// statement_timeout di bawah timeout request
	q.Set("options", "-c statement_timeout=3000")
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:     net.JoinHostPort(cfg.DBHost, cfg.DBPort),
		Path:     "/" + cfg.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(db); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
