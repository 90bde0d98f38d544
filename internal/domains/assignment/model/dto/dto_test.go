package dto_test

import (
	"net/http"
	"testing"
	"time"

	"lifeguard/internal/domains/assignment/model/dto"
	"lifeguard/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindowQuery(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		query, err := dto.ParseWindowQuery("2026-10-20T01:00:00Z", "2026-10-20T05:00:00Z", "b-1")
		require.NoError(t, err)

		assert.True(t, query.Start.Equal(time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)))
		assert.Equal(t, "b-1", query.ExcludeBookingID)
	})

	t.Run("local time in the application timezone", func(t *testing.T) {
		query, err := dto.ParseWindowQuery("2026-10-20T09:00", "2026-10-20T13:00", "")
		require.NoError(t, err)

		assert.True(t, query.Start.Equal(time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)))
		assert.Equal(t, 4*time.Hour, query.End.Sub(query.Start))
	})

	t.Run("zero length", func(t *testing.T) {
		query, err := dto.ParseWindowQuery("2026-10-20T13:00", "2026-10-20T13:00", "")
		require.NoError(t, err)

		assert.True(t, query.Start.Equal(query.End))
	})

	tests := []struct {
		name       string
		start, end string
	}{
		{name: "missing end", start: "2026-10-20T09:00"},
		{name: "garbage", start: "tomorrow", end: "2026-10-20T13:00"},
		{name: "reversed", start: "2026-10-20T13:00", end: "2026-10-20T09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dto.ParseWindowQuery(tt.start, tt.end, "")

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}
