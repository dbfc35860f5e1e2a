package services

import (
	"testing"
	"time"

	"hotel-booking-backend/models"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func TestNights(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"one night", "2024-11-01", "2024-11-02", 1},
		{"four nights", "2024-11-01", "2024-11-05", 4},
		{"same day bills one night", "2024-11-01", "2024-11-01", 1},
		{"month boundary", "2024-11-29", "2024-12-02", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Nights(day(t, tc.checkIn), day(t, tc.checkOut))
			if got != tc.want {
				t.Fatalf("Nights(%s, %s) = %d, want %d", tc.checkIn, tc.checkOut, got, tc.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	room := &models.Room{RoomNumber: "101", PricePerNight: 120000}

	cases := []struct {
		name     string
		checkIn  string
		checkOut string
		want     float64
	}{
		{"same day floors to one night", "2024-11-01", "2024-11-01", 120000},
		{"four nights", "2024-11-01", "2024-11-05", 480000},
		{"single night", "2024-11-01", "2024-11-02", 120000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Price(room, day(t, tc.checkIn), day(t, tc.checkOut))
			if got != tc.want {
				t.Fatalf("Price = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPriceDeterministic(t *testing.T) {
	room := &models.Room{RoomNumber: "102", PricePerNight: 160000}
	in, out := day(t, "2025-03-10"), day(t, "2025-03-14")

	first := Price(room, in, out)
	for i := 0; i < 100; i++ {
		if got := Price(room, in, out); got != first {
			t.Fatalf("Price not deterministic: %v != %v", got, first)
		}
	}
}
