package postgres_test

import (
	"testing"

	"lifeguard/infras/postgres"

	"github.com/stretchr/testify/assert"
)

func TestDescriptor(t *testing.T) {
	tests := []struct {
		name     string
		password string
		sslMode  string
		timezone string
		expected string
	}{
		{
			name:     "defaults ssl mode",
			password: "secret",
			expected: "postgres://app:secret@db:5432/lifeguard?sslmode=disable",
		},
		{
			name:     "escapes password and sets timezone",
			password: "p@ss/word",
			sslMode:  "require",
			timezone: "Asia/Singapore",
			expected: "postgres://app:p%40ss%2Fword@db:5432/lifeguard?sslmode=require&timezone=Asia%2FSingapore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := postgres.Descriptor("app", tt.password, "db", "5432", "lifeguard", tt.sslMode, tt.timezone)

			assert.Equal(t, tt.expected, got)
		})
	}
}
