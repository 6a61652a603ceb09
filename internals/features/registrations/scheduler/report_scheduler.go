package scheduler

import (
	"log"
	"time"

	database "eventreg_backend/internals/databases"
	"eventreg_backend/internals/features/registrations/model"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type DailyReport struct {
	Total     int64
	LastDay   int64
	Confirmed int64
}

// BuildDailyReport: total registrasi, 24 jam terakhir, dan yang sudah confirmed.
func BuildDailyReport(db *gorm.DB, now time.Time) (DailyReport, error) {
	var r DailyReport
	q := db.Model(&model.RegistrationModel{})
	if err := q.Count(&r.Total).Error; err != nil {
		return r, err
	}
	if err := db.Model(&model.RegistrationModel{}).
		Where("created_at >= ?", now.Add(-24*time.Hour)).
		Count(&r.LastDay).Error; err != nil {
		return r, err
	}
	if err := db.Model(&model.RegistrationModel{}).
		Where("registration_status = ?", model.RegistrationStatusConfirmed).
		Count(&r.Confirmed).Error; err != nil {
		return r, err
	}
	return r, nil
}

// ── ENTRYPOINT: panggil dari main.go
// Laporan harian + ping pool tiap 5 menit (anti cold start).
func StartRegistrationCron(db *gorm.DB, schedule string) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(schedule, func() {
		r, err := BuildDailyReport(db, time.Now())
		if err != nil {
			log.Printf("[REPORT ERROR] gagal hitung registrasi: %v", err)
			return
		}
		log.Printf("[REPORT] registrations total=%d last24h=%d confirmed=%d", r.Total, r.LastDay, r.Confirmed)
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc("@every 5m", func() {
		if err := database.Ping(db); err != nil {
			log.Printf("[KEEPALIVE] db ping err: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("⏱ registration cron started (report=%q)", schedule)
	return c, nil
}
