package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventreg_backend/internals/features/registrations/model"
	helper "eventreg_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.RegistrationModel{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	ctrl := NewRegistrationController(db)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Post("/api/register", ctrl.RegisterUser)
	app.Get("/api/registrations", ctrl.GetAllRegistrations)
	return app, db
}

func validBody(paymentID string) map[string]any {
	return map[string]any{
		"user": map[string]any{
			"name":         "  Asha ",
			"coach_name":   "Ravi Kumar",
			"parent_name":  "Meera Rao",
			"parent_phone": "9876543210",
			"grade":        "5",
			"gender":       "Female",
			"address":      "Prestige Lakeside Habitat, Varthur",
		},
		"payment": map[string]any{
			"payment_id":     paymentID,
			"order_id":       "PAYU_1756722600000",
			"amount_paid":    500,
			"currency":       "INR",
			"payment_status": "completed",
			"payment_method": "PayU",
			"verified_at":    "2025-09-01T10:30:00Z",
		},
	}
}

func post(t *testing.T, app *fiber.App, body any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return resp.StatusCode, out
}

func TestRegisterUserCreatesConfirmedRecord(t *testing.T) {
	app, db := newTestApp(t)

	status, out := post(t, app, validBody("ABC123"))
	require.Equal(t, http.StatusCreated, status, out)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "User registered successfully with payment confirmation", out["message"])

	data := out["data"].(map[string]any)
	assert.Equal(t, "Asha", data["name"])
	assert.Equal(t, "female", data["gender"])
	assert.Equal(t, model.RegistrationStatusConfirmed, data["registration_status"])
	assert.Equal(t, "ABC123", data["payment_details"].(map[string]any)["payment_id"])

	var stored model.RegistrationModel
	require.NoError(t, db.First(&stored).Error)
	pd := stored.Payment()
	assert.Equal(t, "PAYU_1756722600000", pd.OrderID)
	assert.Equal(t, int64(500), pd.AmountPaid)
	assert.Equal(t, "PayU", pd.PaymentMethod)
	assert.True(t, pd.VerifiedAt.Equal(time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)))
}

func TestRegisterUserIsIdempotentOnPaymentID(t *testing.T) {
	app, db := newTestApp(t)

	status, first := post(t, app, validBody("ABC123"))
	require.Equal(t, http.StatusCreated, status)

	status, second := post(t, app, validBody("ABC123"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, second["success"])
	assert.Equal(t, "Registration already confirmed for this payment", second["message"])
	assert.Equal(t, first["data"].(map[string]any)["id"], second["data"].(map[string]any)["id"])

	var n int64
	require.NoError(t, db.Model(&model.RegistrationModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRegisterUserRejects(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("missing payment", func(t *testing.T) {
		body := validBody("X")
		delete(body, "payment")
		status, out := post(t, app, body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "MISSING_DATA", out["error"])
	})

	t.Run("missing user", func(t *testing.T) {
		status, out := post(t, app, map[string]any{"payment": map[string]any{"payment_id": "X"}})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "MISSING_DATA", out["error"])
	})

	t.Run("invalid user", func(t *testing.T) {
		body := validBody("X")
		user := body["user"].(map[string]any)
		user["parent_phone"] = "12345"
		user["grade"] = "12"
		status, out := post(t, app, body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, out["success"])
		assert.Equal(t, "VALIDATION_ERROR", out["error"])

		fields := map[string]string{}
		for _, d := range out["details"].([]any) {
			m := d.(map[string]any)
			fields[m["field"].(string)] = m["message"].(string)
		}
		assert.Equal(t, "Phone number must be exactly 10 digits", fields["parent_phone"])
		assert.Equal(t, "Please select a valid grade", fields["grade"])
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader([]byte(`{"user":`)))
		req.Header.Set("Content-Type", "application/json")
		status, out := do(t, app, req)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_BODY", out["error"])
	})
}

func TestGetAllRegistrationsNewestFirst(t *testing.T) {
	app, _ := newTestApp(t)

	for _, id := range []string{"P1", "P2", "P3"} {
		body := validBody(id)
		body["user"].(map[string]any)["name"] = "Child " + id
		status, _ := post(t, app, body)
		require.Equal(t, http.StatusCreated, status)
		// created_at berbeda per baris
		time.Sleep(10 * time.Millisecond)
	}

	status, out := do(t, app, httptest.NewRequest(http.MethodGet, "/api/registrations?page=1&per_page=2", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	assert.EqualValues(t, 2, out["count"])

	rows := out["data"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, "Child P3", rows[0].(map[string]any)["name"])
	assert.Equal(t, "Child P2", rows[1].(map[string]any)["name"])

	pg := out["pagination"].(map[string]any)
	assert.EqualValues(t, 3, pg["total"])
	assert.EqualValues(t, 2, pg["total_pages"])
	assert.Equal(t, true, pg["has_next"])
}
