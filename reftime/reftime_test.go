package reftime

import (
	"testing"
	"time"
)

func TestToTicks(t *testing.T) {
	values := []struct {
		T time.Duration
		V int64
	}{
		{0, 0},
		{99 * time.Nanosecond, 0},
		{100 * time.Nanosecond, 1},
		{101 * time.Nanosecond, 1},
		{time.Millisecond, 10000},
		{time.Second, 10000000},
		{10 * time.Second, 100000000},
		{-time.Second, -10000000},
	}
	for _, ex := range values {
		n := ToTicks(ex.T)
		if n != ex.V {
			t.Errorf("%d (%s): expected %d, got %d", ex.T, ex.T, ex.V, n)
		}
	}
}

func TestToDuration(t *testing.T) {
	values := []struct {
		V int64
		T time.Duration
	}{
		{0, 0},
		{1, 100 * time.Nanosecond},
		{10000000, time.Second},
		{-10000000, -time.Second},
	}
	for _, ex := range values {
		d := ToDuration(ex.V)
		if d != ex.T {
			t.Errorf("%d: expected %s, got %s", ex.V, ex.T, d)
		}
	}
}

func TestRoundTripTruncates(t *testing.T) {
	for _, ns := range []time.Duration{0, 50, 100, 150, 12345678} {
		got := ToDuration(ToTicks(ns))
		want := ns - ns%Tick
		if got != want {
			t.Errorf("%d: expected %d, got %d", ns, want, got)
		}
	}
}
