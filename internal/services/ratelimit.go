package services

import "time"

// RateLimit is the guard shared by the login, email-change and password-reset
// flows: an attempt counter paired with a last-attempt timestamp, re-derived
// on every request instead of being maintained by a scheduler.
type RateLimit struct {
	MaxCount int
	Window   time.Duration
}

// Check reports whether the next attempt is blocked and, if so, how long the
// caller has to wait. A nil lastAttemptAt means no attempt was ever made, so
// the action is never blocked. Check never resets the counter; that happens
// only on an explicit successful terminal action.
func (r RateLimit) Check(now time.Time, count int, lastAttemptAt *time.Time) (wait time.Duration, blocked bool) {
	if lastAttemptAt == nil {
		return 0, false
	}

	elapsed := now.Sub(*lastAttemptAt)
	if count >= r.MaxCount && elapsed <= r.Window {
		return r.Window - elapsed, true
	}
	return 0, false
}
