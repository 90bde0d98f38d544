// Package timezone keeps every business timestamp in the application's civil
// timezone (APP_TIMEZONE, default Asia/Singapore, UTC+8).
//
//	now := timezone.Now()
//	start, err := timezone.CombineDateTime("2026-10-20", "14:00")
//	formatted := timezone.Format(start, "02 Jan 2006 15:04")
//
// Code that reasons about lead time takes a Clock instead of calling Now
// directly, so tests can pin the current instant with FixedClock.
package timezone
