package model

import (
	"math"
	"time"
)

const EntityName = "quote"

type Tier string

const (
	TierNone      Tier = "none"
	TierUnderWeek Tier = "<1w"
	TierUnder2Day Tier = "<2d"
	TierUnderDay  Tier = "<1d"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// surchargePercent is applied on top of the base subtotal.
var surchargePercent = map[Tier]int{
	TierUnderDay:  100,
	TierUnder2Day: 40,
	TierUnderWeek: 20,
	TierNone:      0,
}

type Quote struct {
	Hours           int
	ServiceAt       time.Time
	LeadTime        time.Duration
	BaseRate        float64
	BaseSubtotal    float64
	SurchargeTier   Tier
	SurchargePct    int
	SurchargeAmount float64
	Total           float64
}

// BaseRate is the hourly rate for a booking of the given length. The table is
// intentionally not monotonic: anything under four hours pays the top rate.
func BaseRate(hours int) float64 {
	switch {
	case hours < 4:
		return 50
	case hours == 4:
		return 30
	case hours == 5:
		return 25
	default:
		return 21
	}
}

// TierFor picks the surcharge tier for a lead time. Each bound is strict, so a
// lead time of exactly one day is not "<1d". Negative lead times are "<1d".
func TierFor(leadTime time.Duration) Tier {
	switch {
	case leadTime < day:
		return TierUnderDay
	case leadTime < 2*day:
		return TierUnder2Day
	case leadTime < week:
		return TierUnderWeek
	default:
		return TierNone
	}
}

func SurchargePercent(tier Tier) int {
	return surchargePercent[tier]
}

// Round2 rounds half away from zero to two decimals.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// NewQuote prices hours of service starting at serviceAt as seen from now.
// Callers validate that hours is positive.
func NewQuote(now, serviceAt time.Time, hours int) Quote {
	rate := BaseRate(hours)
	subtotal := Round2(rate * float64(hours))
	leadTime := serviceAt.Sub(now)
	tier := TierFor(leadTime)
	pct := SurchargePercent(tier)
	surcharge := Round2(subtotal * float64(pct) / 100)

	return Quote{
		Hours:           hours,
		ServiceAt:       serviceAt,
		LeadTime:        leadTime,
		BaseRate:        rate,
		BaseSubtotal:    subtotal,
		SurchargeTier:   tier,
		SurchargePct:    pct,
		SurchargeAmount: surcharge,
		Total:           Round2(subtotal + surcharge),
	}
}
