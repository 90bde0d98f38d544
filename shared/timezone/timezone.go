package timezone

import (
	"time"

	"lifeguard/config"

	"github.com/rs/zerolog/log"
)

// fallbackOffset is the civil offset the business operates in (UTC+8).
const fallbackOffset = 8 * 60 * 60

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using fixed UTC+8")
		appLocation = time.FixedZone("UTC+8", fallbackOffset)

		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to fixed UTC+8. Please use standard timezone names like 'Asia/Singapore'")
		appLocation = time.FixedZone("UTC+8", fallbackOffset)

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Clock is the time source used by rules that depend on "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return Now()
}

// NewClock returns the wall clock in the application timezone.
func NewClock() Clock {
	return systemClock{}
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return ToAppTime(c.At)
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, returning UTC")

		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// CombineDateTime joins a YYYY-MM-DD date and a HH:MM time into an instant in the application timezone.
func CombineDateTime(date, clock string) (time.Time, error) {
	return Parse("2006-01-02 15:04", date+" "+clock)
}
