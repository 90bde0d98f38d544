package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"lifeguard/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad body")), code: http.StatusBadRequest, message: "bad body"},
		{name: "bad request from string", err: failure.BadRequestFromString("hours must be greater than 0"), code: http.StatusBadRequest, message: "hours must be greater than 0"},
		{name: "validationf", err: failure.Validationf("too many lifeguards: %d over", 1), code: http.StatusBadRequest, message: "too many lifeguards: 1 over"},
		{name: "unauthorized", err: failure.Unauthorized("invalid credentials"), code: http.StatusUnauthorized, message: "invalid credentials"},
		{name: "forbidden", err: failure.Forbidden("nope"), code: http.StatusForbidden, message: "nope"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, message: "booking not found"},
		{name: "conflict", err: failure.Conflict("taken"), code: http.StatusConflict, message: "taken"},
		{name: "conflictf", err: failure.Conflictf("assigned to %d booking(s)", 2), code: http.StatusConflict, message: "assigned to 2 booking(s)"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "unimplemented", err: failure.Unimplemented("Export"), code: http.StatusNotImplemented, message: "Export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.message)
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.True(t, failure.Is(tt.err, tt.code))
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("assign: %w", failure.Conflict("busy"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.False(t, failure.Is(errors.New("plain"), http.StatusConflict))
}
