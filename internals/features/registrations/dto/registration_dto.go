package dto

import (
	"reflect"
	"strings"
	"time"

	"eventreg_backend/internals/constants"
	"eventreg_backend/internals/features/registrations/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	"gorm.io/datatypes"
)

/* ===================== Request DTO ===================== */

// UserData = field form registrasi (bentuk kanonik: grade/gender/address).
type UserData struct {
	Name        string `json:"name" form:"name" validate:"required,min=3,max=50"`
	CoachName   string `json:"coach_name" form:"coach_name" validate:"required,min=3,max=50"`
	ParentName  string `json:"parent_name" form:"parent_name" validate:"required,min=3,max=50"`
	ParentPhone string `json:"parent_phone" form:"parent_phone" validate:"required,len=10,numeric"`
	Grade       string `json:"grade" form:"grade" validate:"required,grade"`
	Gender      string `json:"gender" form:"gender" validate:"required,gender"`
	Address     string `json:"address" form:"address" validate:"required,min=10,max=200"`
}

type PaymentData struct {
	PaymentID     string `json:"payment_id" validate:"required,max=100"`
	OrderID       string `json:"order_id,omitempty" validate:"max=100"`
	AmountPaid    int64  `json:"amount_paid,omitempty" validate:"gte=0"`
	Currency      string `json:"currency,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	VerifiedAt    string `json:"verified_at,omitempty"`
}

type RegistrationRequest struct {
	User    *UserData    `json:"user"`
	Payment *PaymentData `json:"payment"`
}

/* ===================== Validator ===================== */

// FieldError = detail validasi per field (dikirim ke client).
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// pakai nama json sebagai nama field di pesan error
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
		return constants.IsValidGrade(fl.Field().String())
	})
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return constants.IsValidGender(fl.Field().String())
	})
	return v
}

func Validator() *validator.Validate { return validate }

// Normalize: trim + NFC supaya nama yang di-copy paste tetap konsisten.
func (u *UserData) Normalize() {
	u.Name = clean(u.Name)
	u.CoachName = clean(u.CoachName)
	u.ParentName = clean(u.ParentName)
	u.ParentPhone = strings.TrimSpace(u.ParentPhone)
	u.Grade = strings.TrimSpace(u.Grade)
	u.Gender = strings.ToLower(strings.TrimSpace(u.Gender))
	u.Address = clean(u.Address)
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// Validate mengembalikan nil kalau valid, atau daftar error per field.
func (u *UserData) Validate() []FieldError {
	return toFieldErrors(validate.Struct(u))
}

func (p *PaymentData) Validate() []FieldError {
	return toFieldErrors(validate.Struct(p))
}

func toFieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return label + " must be at least " + fe.Param() + " characters long"
	case "max":
		return label + " cannot exceed " + fe.Param() + " characters"
	case "len", "numeric":
		return "Phone number must be exactly 10 digits"
	case "grade":
		return "Please select a valid grade"
	case "gender":
		return "Please select a " + strings.ToLower(label)
	default:
		return label + " is invalid"
	}
}

func fieldLabel(field string) string {
	switch field {
	case "name":
		return "Name"
	case "coach_name":
		return "Coach name"
	case "parent_name":
		return "Parent name"
	case "parent_phone":
		return "Phone number"
	case "grade":
		return "Grade"
	case "gender":
		return "Gender"
	case "address":
		return "Address"
	case "payment_id":
		return "Payment ID"
	default:
		return field
	}
}

/* ===================== Mapping ===================== */

func (r *RegistrationRequest) ToModel(now time.Time) model.RegistrationModel {
	p := r.Payment
	currency := p.Currency
	if currency == "" {
		currency = constants.DefaultCurrency
	}
	status := p.PaymentStatus
	if status == "" {
		status = model.PaymentStatusCompleted
	}
	verifiedAt := now
	if p.VerifiedAt != "" {
		if t, err := time.Parse(time.RFC3339, p.VerifiedAt); err == nil {
			verifiedAt = t
		}
	}

	return model.RegistrationModel{
		RegistrationName:        r.User.Name,
		RegistrationCoachName:   r.User.CoachName,
		RegistrationParentName:  r.User.ParentName,
		RegistrationParentPhone: r.User.ParentPhone,
		RegistrationGrade:       r.User.Grade,
		RegistrationGender:      r.User.Gender,
		RegistrationAddress:     r.User.Address,
		RegistrationPaymentID:   p.PaymentID,
		RegistrationPaymentDetails: datatypes.NewJSONType(model.PaymentDetails{
			PaymentID:     p.PaymentID,
			OrderID:       p.OrderID,
			AmountPaid:    p.AmountPaid,
			Currency:      currency,
			PaymentStatus: status,
			PaymentMethod: p.PaymentMethod,
			VerifiedAt:    verifiedAt,
		}),
		// konfirmasi langsung: registrasi hanya dikirim setelah pembayaran sukses
		RegistrationStatus: model.RegistrationStatusConfirmed,
	}
}

/* ===================== Response DTO ===================== */

type PaymentSummary struct {
	PaymentID     string `json:"payment_id"`
	AmountPaid    int64  `json:"amount_paid"`
	PaymentStatus string `json:"payment_status"`
}

type RegistrationResponse struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	CoachName          string         `json:"coach_name"`
	ParentName         string         `json:"parent_name"`
	ParentPhone        string         `json:"parent_phone"`
	Grade              string         `json:"grade"`
	Gender             string         `json:"gender"`
	Address            string         `json:"address"`
	PaymentDetails     PaymentSummary `json:"payment_details"`
	RegistrationStatus string         `json:"registration_status"`
	CreatedAt          time.Time      `json:"created_at"`
}

func ToRegistrationResponse(m model.RegistrationModel) RegistrationResponse {
	pd := m.Payment()
	return RegistrationResponse{
		ID:          m.RegistrationID,
		Name:        m.RegistrationName,
		CoachName:   m.RegistrationCoachName,
		ParentName:  m.RegistrationParentName,
		ParentPhone: m.RegistrationParentPhone,
		Grade:       m.RegistrationGrade,
		Gender:      m.RegistrationGender,
		Address:     m.RegistrationAddress,
		PaymentDetails: PaymentSummary{
			PaymentID:     pd.PaymentID,
			AmountPaid:    pd.AmountPaid,
			PaymentStatus: pd.PaymentStatus,
		},
		RegistrationStatus: m.RegistrationStatus,
		CreatedAt:          m.CreatedAt,
	}
}

// RegistrationListItem: ringkasan untuk listing admin.
type RegistrationListItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ParentName  string    `json:"parent_name"`
	ParentPhone string    `json:"parent_phone"`
	Grade       string    `json:"grade"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToRegistrationListItems(rows []model.RegistrationModel) []RegistrationListItem {
	out := make([]RegistrationListItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, RegistrationListItem{
			ID:          m.RegistrationID,
			Name:        m.RegistrationName,
			ParentName:  m.RegistrationParentName,
			ParentPhone: m.RegistrationParentPhone,
			Grade:       m.RegistrationGrade,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out
}

/* ===================== Envelope (response API) ===================== */

// APIResponse = bentuk umum {success, message, data}.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Data    T      `json:"data,omitempty"`
}
