package timeutil

import (
	"testing"
	"time"
)

func TestRealClockNow(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, want between %v and %v", now, before, after)
	}
}

func TestRealClockSince(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)

	if d := clock.Since(past); d < time.Second {
		t.Errorf("Since() = %v, want >= 1s", d)
	}
}

func TestMockClockPinned(t *testing.T) {
	at := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	clock := NewMockClock(at)

	if !clock.Now().Equal(at) {
		t.Errorf("Now() = %v, want %v", clock.Now(), at)
	}
	// Repeated reads do not drift.
	if !clock.Now().Equal(at) {
		t.Error("pinned clock moved between reads")
	}
}

func TestMockClockSet(t *testing.T) {
	clock := NewMockClock(time.Time{})
	at := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	clock.Set(at)

	if !clock.Now().Equal(at) {
		t.Errorf("Now() = %v, want %v", clock.Now(), at)
	}
}

func TestMockClockAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	clock.Advance(time.Hour)

	if want := start.Add(time.Hour); !clock.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", clock.Now(), want)
	}
}

func TestMockClockSince(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(now)

	if d := clock.Since(now.Add(-5 * time.Minute)); d != 5*time.Minute {
		t.Errorf("Since() = %v, want 5m", d)
	}
	if d := clock.Since(now); d != 0 {
		t.Errorf("Since(now) = %v, want 0", d)
	}
}
