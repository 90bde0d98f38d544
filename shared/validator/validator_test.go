package validator_test

import (
	"strings"
	"testing"

	"lifeguard/shared/failure"
	"lifeguard/shared/validator"

	"github.com/stretchr/testify/assert"
)

type quoteInput struct {
	ServiceDate string `json:"service_date" validate:"required,date"`
	StartTime   string `json:"start_time"   validate:"required,clock"`
	Hours       int    `json:"hours"        validate:"gt=0"`
	Email       string `json:"email"        validate:"omitempty,email"`
	ServiceType string `json:"service_type" validate:"omitempty,oneof=private_pool event resort school other"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    quoteInput
		message string
	}{
		{
			name: "valid input",
			data: quoteInput{ServiceDate: "2026-10-20", StartTime: "09:30", Hours: 3},
		},
		{
			name:    "missing date uses json name",
			data:    quoteInput{StartTime: "09:30", Hours: 3},
			message: "service_date is required",
		},
		{
			name:    "malformed date",
			data:    quoteInput{ServiceDate: "20/10/2026", StartTime: "09:30", Hours: 3},
			message: "service_date must be a date in YYYY-MM-DD format",
		},
		{
			name:    "malformed clock",
			data:    quoteInput{ServiceDate: "2026-10-20", StartTime: "25:00", Hours: 3},
			message: "start_time must be a time in HH:MM format",
		},
		{
			name:    "zero hours",
			data:    quoteInput{ServiceDate: "2026-10-20", StartTime: "09:30"},
			message: "hours must be greater than 0",
		},
		{
			name:    "unknown service type",
			data:    quoteInput{ServiceDate: "2026-10-20", StartTime: "09:30", Hours: 1, ServiceType: "beach"},
			message: "service_type must be one of private_pool event resort school other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.message)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestValidate_DecodeError(t *testing.T) {
	var data quoteInput

	err := validator.Validate(strings.NewReader("{not json"), &data)

	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("a@b.co", "email"))
	assert.Error(t, validator.ValidateVar("nope", "email"))
}
