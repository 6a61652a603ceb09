package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"eventreg_backend/internals/features/registrations/dto"
	"eventreg_backend/internals/features/registrations/model"
	helper "eventreg_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/*
	========================================================
	  Controller
	========================================================
*/

type RegistrationController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{DB: db, Now: time.Now}
}

/*
	========================================================
	  POST /api/register — simpan registrasi + bukti bayar
	========================================================
*/

func (ctrl *RegistrationController) RegisterUser(c *fiber.Ctx) error {
	var body dto.RegistrationRequest
	if err := c.BodyParser(&body); err != nil {
		log.Println("[ERROR] BodyParser failed:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_BODY")
	}
	if body.User == nil || body.Payment == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing user data or payment information", "MISSING_DATA")
	}

	body.User.Normalize()
	body.Payment.PaymentID = strings.TrimSpace(body.Payment.PaymentID)

	details := append(body.User.Validate(), body.Payment.Validate()...)
	if len(details) > 0 {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Data validation failed", "VALIDATION_ERROR", details)
	}

	// Sudah pernah tersimpan untuk transaksi ini? balikan record lama (idempotent)
	if existing, found, err := ctrl.findByPaymentID(body.Payment.PaymentID); err != nil {
		log.Println("[ERROR] Lookup by payment_id failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	} else if found {
		log.Printf("[INFO] Registration for payment %s already exists, returning stored record", body.Payment.PaymentID)
		return helper.JsonOK(c, "Registration already confirmed for this payment", dto.ToRegistrationResponse(existing))
	}

	reg := body.ToModel(ctrl.Now())
	if err := ctrl.DB.Create(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// balapan dua request dengan payment_id sama
			if existing, found, lerr := ctrl.findByPaymentID(body.Payment.PaymentID); lerr == nil && found {
				return helper.JsonOK(c, "Registration already confirmed for this payment", dto.ToRegistrationResponse(existing))
			}
			return helper.JsonError(c, fiber.StatusBadRequest, "A database constraint violation occurred", "CONSTRAINT_VIOLATION")
		}
		log.Println("[ERROR] Failed to create registration:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}

	log.Printf("✅ Registration %s stored (payment %s)", reg.RegistrationID, body.Payment.PaymentID)
	return helper.JsonCreated(c, "User registered successfully with payment confirmation", dto.ToRegistrationResponse(reg))
}

func (ctrl *RegistrationController) findByPaymentID(paymentID string) (model.RegistrationModel, bool, error) {
	var m model.RegistrationModel
	err := ctrl.DB.Where("registration_payment_id = ?", paymentID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, false, nil
	}
	if err != nil {
		return m, false, err
	}
	return m, true, nil
}

/*
	========================================================
	  GET /api/registrations — listing (terbaru dulu)
	========================================================
*/

func (ctrl *RegistrationController) GetAllRegistrations(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := ctrl.DB.Model(&model.RegistrationModel{}).Count(&total).Error; err != nil {
		log.Println("[ERROR] Count registrations failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve registrations", "INTERNAL_ERROR")
	}

	var rows []model.RegistrationModel
	if err := ctrl.DB.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		log.Println("[ERROR] Fetch registrations failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve registrations", "INTERNAL_ERROR")
	}

	items := dto.ToRegistrationListItems(rows)
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage, len(items))
	return helper.JsonList(c, "Registrations retrieved successfully", items, len(items), pagination)
}
