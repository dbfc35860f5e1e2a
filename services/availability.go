package services

import (
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"hotel-booking-backend/models"
)

// Interval is a half-open booked date range [Start, End) owned by a booking.
type Interval struct {
	BookingID uint      `json:"bookingId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// overlaps: [a,b) and [c,d) share a night iff a < d && c < b.
func (iv Interval) overlaps(start, end time.Time) bool {
	return iv.Start.Before(end) && start.Before(iv.End)
}

// AvailabilityIndex is the derived per-room view of occupied date ranges.
// It is a cache over the bookings table, rebuildable at any time, and is the
// structure the reservation engine consults inside its per-room critical
// section. Intervals per room are kept sorted by start; since active bookings
// never overlap, they are disjoint, so lookups are a binary search plus a
// short scan.
type AvailabilityIndex struct {
	mu    sync.RWMutex
	rooms map[string][]Interval
}

func NewAvailabilityIndex() *AvailabilityIndex {
	return &AvailabilityIndex{rooms: make(map[string][]Interval)}
}

// Rebuild replaces the whole index from the blocking bookings in the store.
func (idx *AvailabilityIndex) Rebuild(db *gorm.DB) error {
	var bookings []models.Booking
	if err := db.
		Where("status IN ?", []models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
		Find(&bookings).Error; err != nil {
		return err
	}

	rooms := make(map[string][]Interval, len(bookings))
	for _, b := range bookings {
		rooms[b.RoomNumber] = append(rooms[b.RoomNumber], Interval{
			BookingID: b.ID,
			Start:     b.CheckIn,
			End:       b.CheckOut,
		})
	}
	for room := range rooms {
		ivs := rooms[room]
		sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start.Before(ivs[j].Start) })
	}

	idx.mu.Lock()
	idx.rooms = rooms
	idx.mu.Unlock()
	return nil
}

// Overlapping returns the booking ids whose intervals conflict with
// [checkIn, checkOut) on the room, skipping excludeBookingID (0 = none).
func (idx *AvailabilityIndex) Overlapping(roomNumber string, checkIn, checkOut time.Time, excludeBookingID uint) []uint {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ivs := idx.rooms[roomNumber]
	// First interval that could still overlap: the one before the first
	// interval starting at or after checkIn also has to be checked, since it
	// may extend past checkIn.
	i := sort.Search(len(ivs), func(i int) bool { return !ivs[i].Start.Before(checkIn) })
	if i > 0 {
		i--
	}

	var conflicts []uint
	for ; i < len(ivs) && ivs[i].Start.Before(checkOut); i++ {
		if ivs[i].BookingID == excludeBookingID {
			continue
		}
		if ivs[i].overlaps(checkIn, checkOut) {
			conflicts = append(conflicts, ivs[i].BookingID)
		}
	}
	return conflicts
}

// IsAvailable reports whether the room has no blocking interval over the range.
func (idx *AvailabilityIndex) IsAvailable(roomNumber string, checkIn, checkOut time.Time) bool {
	return len(idx.Overlapping(roomNumber, checkIn, checkOut, 0)) == 0
}

// BookedRanges returns the intervals intersecting [from, to) for a room,
// ordered by start date.
func (idx *AvailabilityIndex) BookedRanges(roomNumber string, from, to time.Time) []Interval {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ivs := idx.rooms[roomNumber]
	i := sort.Search(len(ivs), func(i int) bool { return !ivs[i].Start.Before(from) })
	if i > 0 {
		i--
	}

	var out []Interval
	for ; i < len(ivs) && ivs[i].Start.Before(to); i++ {
		if ivs[i].overlaps(from, to) {
			out = append(out, ivs[i])
		}
	}
	return out
}

// Insert adds a booking's interval. The caller holds the room's exclusion
// scope, so readers never observe a half-applied commit.
func (idx *AvailabilityIndex) Insert(roomNumber string, iv Interval) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.insertLocked(roomNumber, iv)
}

// Remove drops the interval owned by bookingID, if present. Idempotent.
func (idx *AvailabilityIndex) Remove(roomNumber string, bookingID uint) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(roomNumber, bookingID)
}

// Replace atomically swaps a booking's interval, possibly across rooms.
// A single write lock ensures no reader sees the booking on zero or two rooms.
func (idx *AvailabilityIndex) Replace(oldRoom string, bookingID uint, newRoom string, iv Interval) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(oldRoom, bookingID)
	idx.insertLocked(newRoom, iv)
}

func (idx *AvailabilityIndex) insertLocked(roomNumber string, iv Interval) {
	ivs := idx.rooms[roomNumber]
	i := sort.Search(len(ivs), func(i int) bool { return ivs[i].Start.After(iv.Start) })
	ivs = append(ivs, Interval{})
	copy(ivs[i+1:], ivs[i:])
	ivs[i] = iv
	idx.rooms[roomNumber] = ivs
}

func (idx *AvailabilityIndex) removeLocked(roomNumber string, bookingID uint) {
	ivs := idx.rooms[roomNumber]
	for i := range ivs {
		if ivs[i].BookingID == bookingID {
			idx.rooms[roomNumber] = append(ivs[:i], ivs[i+1:]...)
			return
		}
	}
}
