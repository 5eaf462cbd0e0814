// Package timezone pins every timestamp the studio renders or compares to one
// configured zone (APP_TIMEZONE, an IANA name such as "Asia/Jakarta").
//
// Entrypoints call Init once with the configured name; until then UTC is used.
// Services that need "now" take a Clock so tests can freeze time:
//
//	svc := service.New(..., timezone.NewClock())
//	svcUnderTest := service.New(..., timezone.FixedClock(at))
package timezone
