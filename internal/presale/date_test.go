package presale

import (
	"errors"
	"testing"
	"time"
)

func mustLoadBerlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("loading Europe/Berlin: %v", err)
	}
	return loc
}

func TestResolveDate(t *testing.T) {
	berlin := mustLoadBerlin(t)

	tests := []struct {
		name     string
		day      int
		month    int
		hour     int
		minute   int
		anchor   time.Time
		wantYear int
	}{
		{
			name: "date after anchor keeps publication year",
			day:  23, month: 10, hour: 15, minute: 0,
			anchor:   time.Date(2025, time.September, 1, 0, 0, 0, 0, berlin),
			wantYear: 2025,
		},
		{
			name: "date before anchor rolls over to next year",
			day:  15, month: 1, hour: 15, minute: 0,
			anchor:   time.Date(2025, time.December, 1, 0, 0, 0, 0, berlin),
			wantYear: 2026,
		},
		{
			name: "same day as anchor keeps publication year",
			day:  1, month: 9, hour: 10, minute: 30,
			anchor:   time.Date(2025, time.September, 1, 0, 0, 0, 0, berlin),
			wantYear: 2025,
		},
		{
			name: "single digit day and month",
			day:  7, month: 10, hour: 15, minute: 30,
			anchor:   time.Date(2025, time.September, 29, 0, 0, 0, 0, berlin),
			wantYear: 2025,
		},
		{
			name: "midnight hour",
			day:  24, month: 12, hour: 0, minute: 0,
			anchor:   time.Date(2025, time.November, 1, 0, 0, 0, 0, berlin),
			wantYear: 2025,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDate(tt.day, tt.month, tt.hour, tt.minute, tt.anchor, berlin)
			if err != nil {
				t.Fatalf("ResolveDate() error: %v", err)
			}

			// Inputs must survive exactly, no silent truncation.
			if got.Day() != tt.day {
				t.Errorf("Day() = %d, want %d", got.Day(), tt.day)
			}
			if int(got.Month()) != tt.month {
				t.Errorf("Month() = %d, want %d", got.Month(), tt.month)
			}
			if got.Hour() != tt.hour {
				t.Errorf("Hour() = %d, want %d", got.Hour(), tt.hour)
			}
			if got.Minute() != tt.minute {
				t.Errorf("Minute() = %d, want %d", got.Minute(), tt.minute)
			}
			if got.Year() != tt.wantYear {
				t.Errorf("Year() = %d, want %d", got.Year(), tt.wantYear)
			}
			if got.Location() != berlin {
				t.Errorf("Location() = %v, want Europe/Berlin", got.Location())
			}
		})
	}
}

func TestResolveDate_Invalid(t *testing.T) {
	berlin := mustLoadBerlin(t)
	anchor := time.Date(2025, time.September, 1, 0, 0, 0, 0, berlin)

	tests := []struct {
		name   string
		day    int
		month  int
		hour   int
		minute int
	}{
		{name: "day 31 in 30-day month", day: 31, month: 4, hour: 15, minute: 0},
		{name: "day 30 in February", day: 30, month: 2, hour: 15, minute: 0},
		{name: "day zero", day: 0, month: 5, hour: 15, minute: 0},
		{name: "day out of range", day: 32, month: 5, hour: 15, minute: 0},
		{name: "month zero", day: 15, month: 0, hour: 15, minute: 0},
		{name: "month out of range", day: 15, month: 13, hour: 15, minute: 0},
		{name: "hour out of range", day: 15, month: 5, hour: 24, minute: 0},
		{name: "negative hour", day: 15, month: 5, hour: -1, minute: 0},
		{name: "minute out of range", day: 15, month: 5, hour: 15, minute: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveDate(tt.day, tt.month, tt.hour, tt.minute, anchor, berlin)
			if err == nil {
				t.Fatalf("ResolveDate(%d, %d, %d, %d) expected error", tt.day, tt.month, tt.hour, tt.minute)
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("error = %v, want ErrInvalidDate", err)
			}
		})
	}
}

func TestResolveDate_LeapDayRollover(t *testing.T) {
	berlin := mustLoadBerlin(t)

	// 29.2. exists in the anchor year 2024 and the anchor precedes it.
	got, err := ResolveDate(29, 2, 12, 0, time.Date(2024, time.January, 15, 0, 0, 0, 0, berlin), berlin)
	if err != nil {
		t.Fatalf("ResolveDate() error: %v", err)
	}
	if got.Year() != 2024 {
		t.Errorf("Year() = %d, want 2024", got.Year())
	}

	// Anchored after 29.2.2024 the date rolls to 2025, where it does not exist.
	_, err = ResolveDate(29, 2, 12, 0, time.Date(2024, time.March, 1, 0, 0, 0, 0, berlin), berlin)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate after rollover to non-leap year", err)
	}
}

func TestResolveDate_TimezoneOffset(t *testing.T) {
	berlin := mustLoadBerlin(t)
	anchor := time.Date(2025, time.September, 1, 0, 0, 0, 0, berlin)

	// October 23rd is still CEST (+2), January 15th is CET (+1).
	summer, err := ResolveDate(23, 10, 15, 0, anchor, berlin)
	if err != nil {
		t.Fatal(err)
	}
	if _, offset := summer.Zone(); offset != 2*3600 {
		t.Errorf("October offset = %d, want +2h (CEST)", offset)
	}

	winter, err := ResolveDate(15, 1, 15, 0, time.Date(2025, time.December, 1, 0, 0, 0, 0, berlin), berlin)
	if err != nil {
		t.Fatal(err)
	}
	if _, offset := winter.Zone(); offset != 3600 {
		t.Errorf("January offset = %d, want +1h (CET)", offset)
	}
}
