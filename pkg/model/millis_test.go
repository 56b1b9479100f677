package model

import (
	"testing"
	"time"
)

func TestMillis_Clock(t *testing.T) {
	cases := []struct {
		in   Millis
		want string
	}{
		{0, "0:00:00.000"},
		{42, "0:00:00.042"},
		{61_500, "0:01:01.500"},
		{3_661_042, "1:01:01.042"},
		{-5, "0:00:00.000"},
	}
	for _, tc := range cases {
		if got := tc.in.Clock(); got != tc.want {
			t.Errorf("Clock(%d) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestMillis_AddFloorsAtZero(t *testing.T) {
	if got := Millis(100).Add(-500); got != 0 {
		t.Errorf("Add past zero = %d; want 0", got)
	}
	if got := Millis(100).Add(400); got != 500 {
		t.Errorf("Add = %d; want 500", got)
	}
}

func TestMillis_Clamp(t *testing.T) {
	if got := Millis(5000).Clamp(3000); got != 3000 {
		t.Errorf("Clamp = %d; want 3000", got)
	}
	// max 0 means unknown total: only the zero floor applies
	if got := Millis(5000).Clamp(0); got != 5000 {
		t.Errorf("Clamp without max = %d; want 5000", got)
	}
	if got := Millis(-1).Clamp(0); got != 0 {
		t.Errorf("Clamp negative = %d; want 0", got)
	}
}

func TestFromDuration(t *testing.T) {
	if got := FromDuration(1500 * time.Millisecond); got != 1500 {
		t.Errorf("FromDuration = %d; want 1500", got)
	}
	if got := FromDuration(-time.Second); got != 0 {
		t.Errorf("FromDuration negative = %d; want 0", got)
	}
}
