package dto

import (
	"testing"
	"time"

	"eventreg_backend/internals/features/registrations/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() UserData {
	return UserData{
		Name:        "Asha",
		CoachName:   "Ravi Kumar",
		ParentName:  "Meera Rao",
		ParentPhone: "9876543210",
		Grade:       "U-KG",
		Gender:      "female",
		Address:     "Prestige Lakeside Habitat, Varthur",
	}
}

func TestNormalize(t *testing.T) {
	u := UserData{
		Name:        "  Renée ",
		ParentPhone: " 9876543210 ",
		Grade:       " 5 ",
		Gender:      " MALE ",
		Address:     "\tMain Road, Whitefield  ",
	}
	u.Normalize()

	assert.Equal(t, "Renée", u.Name)
	assert.Equal(t, "9876543210", u.ParentPhone)
	assert.Equal(t, "5", u.Grade)
	assert.Equal(t, "male", u.Gender)
	assert.Equal(t, "Main Road, Whitefield", u.Address)
}

func TestValidateUser(t *testing.T) {
	u := validUser()
	assert.Empty(t, u.Validate())

	tests := []struct {
		name    string
		mutate  func(*UserData)
		field   string
		message string
	}{
		{"short name", func(u *UserData) { u.Name = "Al" }, "name", "Name must be at least 3 characters long"},
		{"long coach", func(u *UserData) { u.CoachName = string(make([]byte, 51)) }, "coach_name", "Coach name cannot exceed 50 characters"},
		{"empty parent", func(u *UserData) { u.ParentName = "" }, "parent_name", "Parent name is required"},
		{"phone letters", func(u *UserData) { u.ParentPhone = "98765abcde" }, "parent_phone", "Phone number must be exactly 10 digits"},
		{"phone short", func(u *UserData) { u.ParentPhone = "98765" }, "parent_phone", "Phone number must be exactly 10 digits"},
		{"unknown grade", func(u *UserData) { u.Grade = "11" }, "grade", "Please select a valid grade"},
		{"unknown gender", func(u *UserData) { u.Gender = "other" }, "gender", "Please select a gender"},
		{"short address", func(u *UserData) { u.Address = "Road 1" }, "address", "Address must be at least 10 characters long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(&u)
			errs := u.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestValidatePayment(t *testing.T) {
	p := PaymentData{}
	errs := p.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "payment_id", errs[0].Field)
	assert.Equal(t, "Payment ID is required", errs[0].Message)
}

func TestToModelDefaults(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	u := validUser()
	req := RegistrationRequest{User: &u, Payment: &PaymentData{PaymentID: "ABC123", VerifiedAt: "yesterday"}}

	m := req.ToModel(now)
	assert.Equal(t, "ABC123", m.RegistrationPaymentID)
	assert.Equal(t, model.RegistrationStatusConfirmed, m.RegistrationStatus)

	pd := m.Payment()
	assert.Equal(t, "INR", pd.Currency)
	assert.Equal(t, model.PaymentStatusCompleted, pd.PaymentStatus)
	assert.True(t, pd.VerifiedAt.Equal(now), "unparseable verified_at falls back to now")
}
