package services_test

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/account-service/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_Check(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	limit := services.RateLimit{MaxCount: 5, Window: 10 * time.Second}

	tests := []struct {
		name        string
		count       int
		elapsed     time.Duration
		wantBlocked bool
		wantWait    time.Duration
	}{
		{name: "at max, mid window", count: 5, elapsed: 5 * time.Second, wantBlocked: true, wantWait: 5 * time.Second},
		{name: "at max, window passed", count: 5, elapsed: 11 * time.Second, wantBlocked: false},
		{name: "at max, boundary", count: 5, elapsed: 10 * time.Second, wantBlocked: true, wantWait: 0},
		{name: "under max, mid window", count: 4, elapsed: 5 * time.Second, wantBlocked: false},
		{name: "over max, mid window", count: 7, elapsed: 1 * time.Second, wantBlocked: true, wantWait: 9 * time.Second},
		{name: "zero count", count: 0, elapsed: 0, wantBlocked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := now.Add(-tt.elapsed)
			wait, blocked := limit.Check(now, tt.count, &last)
			assert.Equal(t, tt.wantBlocked, blocked)
			if tt.wantBlocked {
				assert.Equal(t, tt.wantWait, wait)
			}
		})
	}
}

func TestRateLimit_NeverAttempted(t *testing.T) {
	limit := services.RateLimit{MaxCount: 1, Window: time.Hour}

	// A nil timestamp means the action never ran; even an absurd count must
	// not block.
	wait, blocked := limit.Check(time.Now(), 100, nil)
	assert.False(t, blocked)
	assert.Zero(t, wait)
}
