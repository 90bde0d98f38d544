package model_test

import (
	"testing"
	"time"

	"lifeguard/internal/domains/pricing/model"

	"github.com/stretchr/testify/assert"
)

func TestBaseRate(t *testing.T) {
	tests := []struct {
		hours int
		rate  float64
	}{
		{hours: 1, rate: 50},
		{hours: 3, rate: 50},
		{hours: 4, rate: 30},
		{hours: 5, rate: 25},
		{hours: 6, rate: 21},
		{hours: 10, rate: 21},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.rate, model.BaseRate(tt.hours), "hours=%d", tt.hours)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name     string
		leadTime time.Duration
		tier     model.Tier
		pct      int
	}{
		{name: "23 hours", leadTime: 23 * time.Hour, tier: model.TierUnderDay, pct: 100},
		{name: "36 hours", leadTime: 36 * time.Hour, tier: model.TierUnder2Day, pct: 40},
		{name: "5 days", leadTime: 5 * 24 * time.Hour, tier: model.TierUnderWeek, pct: 20},
		{name: "10 days", leadTime: 10 * 24 * time.Hour, tier: model.TierNone, pct: 0},
		{name: "in the past", leadTime: -2 * time.Hour, tier: model.TierUnderDay, pct: 100},
		{name: "exactly 1 day", leadTime: 24 * time.Hour, tier: model.TierUnder2Day, pct: 40},
		{name: "just under 1 day", leadTime: 24*time.Hour - time.Second, tier: model.TierUnderDay, pct: 100},
		{name: "exactly 2 days", leadTime: 48 * time.Hour, tier: model.TierUnderWeek, pct: 20},
		{name: "exactly 7 days", leadTime: 7 * 24 * time.Hour, tier: model.TierNone, pct: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := model.TierFor(tt.leadTime)

			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, tt.pct, model.SurchargePercent(tier))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, model.Round2(1.005000001))
	assert.Equal(t, 25.2, model.Round2(25.2))
	assert.Equal(t, 0.13, model.Round2(0.125))
	assert.Equal(t, -0.13, model.Round2(-0.125))
}

func TestNewQuote_TotalsAddUp(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	for _, hours := range []int{1, 2, 3, 4, 5, 6, 7, 10, 12} {
		for _, lead := range []time.Duration{-time.Hour, 23 * time.Hour, 36 * time.Hour, 100 * time.Hour, 400 * time.Hour} {
			quote := model.NewQuote(now, now.Add(lead), hours)

			assert.Equal(t, model.Round2(quote.BaseSubtotal+quote.SurchargeAmount), quote.Total, "hours=%d lead=%s", hours, lead)
			assert.Equal(t, model.Round2(quote.BaseRate*float64(hours)), quote.BaseSubtotal)
		}
	}
}
