package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlappingHalfOpenSemantics(t *testing.T) {
	idx := NewAvailabilityIndex()
	idx.Insert("101", Interval{BookingID: 1, Start: day(t, "2025-05-01"), End: day(t, "2025-05-05")})

	cases := []struct {
		name     string
		from, to string
		want     []uint
	}{
		{"identical range conflicts", "2025-05-01", "2025-05-05", []uint{1}},
		{"contained range conflicts", "2025-05-02", "2025-05-03", []uint{1}},
		{"straddling start conflicts", "2025-04-28", "2025-05-02", []uint{1}},
		{"straddling end conflicts", "2025-05-04", "2025-05-09", []uint{1}},
		{"checkout day is free for next checkin", "2025-05-05", "2025-05-08", nil},
		{"range ending on checkin is free", "2025-04-28", "2025-05-01", nil},
		{"disjoint before", "2025-04-01", "2025-04-10", nil},
		{"disjoint after", "2025-06-01", "2025-06-10", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := idx.Overlapping("101", day(t, tc.from), day(t, tc.to), 0)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOverlappingExcludesOwnBooking(t *testing.T) {
	idx := NewAvailabilityIndex()
	idx.Insert("101", Interval{BookingID: 7, Start: day(t, "2025-05-01"), End: day(t, "2025-05-05")})
	idx.Insert("101", Interval{BookingID: 8, Start: day(t, "2025-05-10"), End: day(t, "2025-05-12")})

	// Extending booking 7 over its own dates conflicts with nothing.
	assert.Empty(t, idx.Overlapping("101", day(t, "2025-05-01"), day(t, "2025-05-06"), 7))
	// But extending it into booking 8 does.
	assert.Equal(t, []uint{8}, idx.Overlapping("101", day(t, "2025-05-01"), day(t, "2025-05-11"), 7))
}

func TestOverlappingIsPerRoom(t *testing.T) {
	idx := NewAvailabilityIndex()
	idx.Insert("101", Interval{BookingID: 1, Start: day(t, "2025-05-01"), End: day(t, "2025-05-05")})

	assert.True(t, idx.IsAvailable("102", day(t, "2025-05-01"), day(t, "2025-05-05")))
	assert.False(t, idx.IsAvailable("101", day(t, "2025-05-01"), day(t, "2025-05-05")))
}

func TestBookedRangesOrdered(t *testing.T) {
	idx := NewAvailabilityIndex()
	// Insert out of order; the index keeps them sorted by start.
	idx.Insert("101", Interval{BookingID: 3, Start: day(t, "2025-07-20"), End: day(t, "2025-07-25")})
	idx.Insert("101", Interval{BookingID: 1, Start: day(t, "2025-07-01"), End: day(t, "2025-07-04")})
	idx.Insert("101", Interval{BookingID: 2, Start: day(t, "2025-07-10"), End: day(t, "2025-07-12")})

	got := idx.BookedRanges("101", day(t, "2025-07-01"), day(t, "2025-08-01"))
	if assert.Len(t, got, 3) {
		assert.Equal(t, uint(1), got[0].BookingID)
		assert.Equal(t, uint(2), got[1].BookingID)
		assert.Equal(t, uint(3), got[2].BookingID)
	}

	// Window clips to intersecting intervals only.
	got = idx.BookedRanges("101", day(t, "2025-07-11"), day(t, "2025-07-21"))
	if assert.Len(t, got, 2) {
		assert.Equal(t, uint(2), got[0].BookingID)
		assert.Equal(t, uint(3), got[1].BookingID)
	}
}

func TestRemoveAndReplace(t *testing.T) {
	idx := NewAvailabilityIndex()
	idx.Insert("101", Interval{BookingID: 1, Start: day(t, "2025-05-01"), End: day(t, "2025-05-05")})

	idx.Remove("101", 1)
	assert.True(t, idx.IsAvailable("101", day(t, "2025-05-01"), day(t, "2025-05-05")))

	// Remove of a missing booking is a no-op.
	idx.Remove("101", 99)

	idx.Insert("101", Interval{BookingID: 2, Start: day(t, "2025-06-01"), End: day(t, "2025-06-03")})
	idx.Replace("101", 2, "102", Interval{BookingID: 2, Start: day(t, "2025-06-01"), End: day(t, "2025-06-03")})

	assert.True(t, idx.IsAvailable("101", day(t, "2025-06-01"), day(t, "2025-06-03")))
	assert.False(t, idx.IsAvailable("102", day(t, "2025-06-01"), day(t, "2025-06-03")))
}
