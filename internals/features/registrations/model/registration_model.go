package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Constants ===================== */

// registrasi hanya dibuat setelah pembayaran sukses
const (
	RegistrationStatusConfirmed = "confirmed"
	PaymentStatusCompleted      = "completed"
)

/* ===================== Model ===================== */

// PaymentDetails disimpan sebagai kolom JSON (satu registrasi = satu pembayaran).
type PaymentDetails struct {
	PaymentID     string    `json:"payment_id"`
	OrderID       string    `json:"order_id"`
	AmountPaid    int64     `json:"amount_paid"`
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod string    `json:"payment_method"`
	VerifiedAt    time.Time `json:"verified_at"`
}

type RegistrationModel struct {
	RegistrationID uuid.UUID `gorm:"column:registration_id;type:uuid;primaryKey" json:"registration_id"`

	RegistrationName        string `gorm:"column:registration_name;type:varchar(50);not null" json:"registration_name"`
	RegistrationCoachName   string `gorm:"column:registration_coach_name;type:varchar(50);not null" json:"registration_coach_name"`
	RegistrationParentName  string `gorm:"column:registration_parent_name;type:varchar(50);not null" json:"registration_parent_name"`
	RegistrationParentPhone string `gorm:"column:registration_parent_phone;type:varchar(15);not null" json:"registration_parent_phone"`
	RegistrationGrade       string `gorm:"column:registration_grade;type:varchar(10);not null" json:"registration_grade"`
	RegistrationGender      string `gorm:"column:registration_gender;type:varchar(10);not null" json:"registration_gender"`
	RegistrationAddress     string `gorm:"column:registration_address;type:varchar(200);not null" json:"registration_address"`

	// payment_id unik → POST /register idempotent per transaksi gateway
	RegistrationPaymentID      string                              `gorm:"column:registration_payment_id;type:varchar(100);not null;uniqueIndex" json:"registration_payment_id"`
	RegistrationPaymentDetails datatypes.JSONType[PaymentDetails] `gorm:"column:registration_payment_details" json:"registration_payment_details"`

	RegistrationStatus string `gorm:"column:registration_status;type:varchar(20);default:'confirmed'" json:"registration_status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RegistrationModel) TableName() string { return "registrations" }

func (r *RegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if r.RegistrationID == uuid.Nil {
		r.RegistrationID = uuid.New()
	}
	return nil
}

/* ===================== Helpers ===================== */

func (r *RegistrationModel) Payment() PaymentDetails {
	return r.RegistrationPaymentDetails.Data()
}
