package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-booking-backend/models"
)

const defaultLockTimeout = 3 * time.Second

// BookingService is the reservation engine. Every mutating operation on a
// room's bookings runs inside that room's exclusion scope: the overlap
// re-check, the transactional commit and the availability-index mutation all
// happen while the lock is held, so two concurrent requests for the same room
// can never both pass the check. Notification and payment I/O stay outside
// the critical section.
type BookingService struct {
	DB       *gorm.DB
	Index    *AvailabilityIndex
	Locks    *RoomLocker
	Guests   *GuestService
	Notifier Notifier

	// InitialStatus is the status assigned on create: Confirmed (default,
	// single-phase) or Pending (two-phase hold-then-confirm).
	InitialStatus models.BookingStatus
	LockTimeout   time.Duration
}

func NewBookingService(db *gorm.DB, index *AvailabilityIndex, locks *RoomLocker, guests *GuestService, notifier Notifier) *BookingService {
	return &BookingService{
		DB:            db,
		Index:         index,
		Locks:         locks,
		Guests:        guests,
		Notifier:      notifier,
		InitialStatus: models.BookingConfirmed,
		LockTimeout:   defaultLockTimeout,
	}
}

type CreateBookingInput struct {
	CheckIn    string     `json:"checkIn" binding:"required"`
	CheckOut   string     `json:"checkOut" binding:"required"`
	NumGuests  int        `json:"numGuests" binding:"required"`
	RoomNumber string     `json:"roomNumber" binding:"required"`
	Guest      GuestInput `json:"guest" binding:"required"`
}

// UpdateBookingInput is a partial patch; nil fields stay untouched.
type UpdateBookingInput struct {
	CheckIn    *string               `json:"checkIn"`
	CheckOut   *string               `json:"checkOut"`
	NumGuests  *int                  `json:"numGuests"`
	RoomNumber *string               `json:"roomNumber"`
	Status     *models.BookingStatus `json:"status"`
}

// BookingFilter narrows listings; zero values mean no filtering.
type BookingFilter struct {
	Status    models.BookingStatus
	RoomType  models.RoomType
	GuestName string
}

// parseDate accepts the wire formats the frontends actually send.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Truncate(24 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrValidation, value)
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func validateStayRange(checkIn, checkOut time.Time, requirePresent bool) error {
	if !checkIn.Before(checkOut) {
		return fmt.Errorf("%w: checkOut must be after checkIn (at least one night)", ErrValidation)
	}
	if requirePresent && checkIn.Before(today()) {
		return fmt.Errorf("%w: checkIn must not be in the past", ErrValidation)
	}
	return nil
}

// acquireRoom takes the room lock, retrying once before surfacing ErrBusy.
func (s *BookingService) acquireRoom(rooms ...string) (func(), error) {
	release, err := s.Locks.AcquireAll(rooms, s.LockTimeout)
	if errors.Is(err, ErrBusy) {
		release, err = s.Locks.AcquireAll(rooms, s.LockTimeout)
	}
	return release, err
}

// Create validates, serializes on the room, re-checks availability inside the
// exclusion scope and commits guest upsert + booking in one transaction.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	checkIn, err := parseDate(in.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDate(in.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := validateStayRange(checkIn, checkOut, true); err != nil {
		return nil, err
	}
	if in.NumGuests <= 0 {
		return nil, fmt.Errorf("%w: numGuests must be positive", ErrValidation)
	}

	var room models.Room
	if err := s.DB.Where("room_number = ?", in.RoomNumber).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room '%s'", ErrNotFound, in.RoomNumber)
		}
		return nil, fmt.Errorf("db error checking room: %w", err)
	}
	if in.NumGuests > room.Capacity {
		return nil, fmt.Errorf("%w: room '%s' sleeps at most %d guests", ErrValidation, room.RoomNumber, room.Capacity)
	}

	release, err := s.acquireRoom(room.RoomNumber)
	if err != nil {
		return nil, err
	}
	defer release()

	// Overlap re-check MUST happen inside the exclusion scope.
	if conflicts := s.Index.Overlapping(room.RoomNumber, checkIn, checkOut, 0); len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: room '%s' is booked for the requested dates", ErrRoomUnavailable, room.RoomNumber)
	}

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		guest, err := s.Guests.Upsert(tx, in.Guest)
		if err != nil {
			return err
		}

		booking = models.Booking{
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			NumGuests:     in.NumGuests,
			TotalAmount:   Price(&room, checkIn, checkOut),
			Status:        s.InitialStatus,
			PaymentStatus: models.PaymentPending,
			GuestID:       guest.ID,
			RoomNumber:    room.RoomNumber,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Index.Insert(room.RoomNumber, Interval{BookingID: booking.ID, Start: checkIn, End: checkOut})

	result, err := s.Get(booking.ID)
	if err != nil {
		return nil, err
	}
	dispatch("booking confirmed", func() error { return s.Notifier.BookingConfirmed(result) })
	return result, nil
}

// Update patches dates, room, guest count or status. Date/room changes
// re-check overlap excluding the booking's own interval; a conflict leaves
// both bookings untouched.
func (s *BookingService) Update(id uint, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && *in.Status == models.BookingCancelled {
		return s.Cancel(id)
	}

	newCheckIn := booking.CheckIn
	newCheckOut := booking.CheckOut
	if in.CheckIn != nil {
		if newCheckIn, err = parseDate(*in.CheckIn); err != nil {
			return nil, err
		}
	}
	if in.CheckOut != nil {
		if newCheckOut, err = parseDate(*in.CheckOut); err != nil {
			return nil, err
		}
	}
	// Existing bookings may already be mid-stay, so the no-backdating rule
	// only applies when the check-in date itself moves.
	if err := validateStayRange(newCheckIn, newCheckOut, in.CheckIn != nil); err != nil {
		return nil, err
	}

	newRoomNumber := booking.RoomNumber
	if in.RoomNumber != nil && strings.TrimSpace(*in.RoomNumber) != "" {
		newRoomNumber = strings.TrimSpace(*in.RoomNumber)
	}
	var newRoom models.Room
	if err := s.DB.Where("room_number = ?", newRoomNumber).First(&newRoom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room '%s'", ErrNotFound, newRoomNumber)
		}
		return nil, fmt.Errorf("db error checking room: %w", err)
	}

	newNumGuests := booking.NumGuests
	if in.NumGuests != nil {
		newNumGuests = *in.NumGuests
	}
	if newNumGuests <= 0 || newNumGuests > newRoom.Capacity {
		return nil, fmt.Errorf("%w: numGuests must be between 1 and %d for room '%s'", ErrValidation, newRoom.Capacity, newRoom.RoomNumber)
	}

	newStatus := booking.Status
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *in.Status)
		}
		if !booking.Status.CanTransitionTo(*in.Status) {
			return nil, fmt.Errorf("%w: cannot transition booking from %s to %s", ErrValidation, booking.Status, *in.Status)
		}
		newStatus = *in.Status
	}

	release, err := s.acquireRoom(booking.RoomNumber, newRoomNumber)
	if err != nil {
		return nil, err
	}
	defer release()

	if newStatus.Blocking() {
		if conflicts := s.Index.Overlapping(newRoomNumber, newCheckIn, newCheckOut, booking.ID); len(conflicts) > 0 {
			return nil, fmt.Errorf("%w: room '%s' is booked for the requested dates", ErrRoomUnavailable, newRoomNumber)
		}
	}

	// The room exclusion scope already serializes writers; no row lock needed.
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]interface{}{
			"check_in":     newCheckIn,
			"check_out":    newCheckOut,
			"num_guests":   newNumGuests,
			"room_number":  newRoom.RoomNumber,
			"status":       newStatus,
			"total_amount": Price(&newRoom, newCheckIn, newCheckOut),
		}).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	if newStatus.Blocking() {
		s.Index.Replace(booking.RoomNumber, booking.ID, newRoom.RoomNumber,
			Interval{BookingID: booking.ID, Start: newCheckIn, End: newCheckOut})
	} else {
		// Completed stays no longer block new bookings.
		s.Index.Remove(booking.RoomNumber, booking.ID)
	}

	return s.Get(booking.ID)
}

// Cancel soft-cancels a booking and frees its date range. Cancelling an
// already-cancelled booking is a no-op success.
func (s *BookingService) Cancel(id uint) (*models.Booking, error) {
	booking, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingCancelled {
		return s.Get(id)
	}
	if booking.Status == models.BookingCompleted {
		return nil, fmt.Errorf("%w: completed bookings cannot be cancelled", ErrValidation)
	}

	release, err := s.acquireRoom(booking.RoomNumber)
	if err != nil {
		return nil, err
	}
	defer release()

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("status", models.BookingCancelled).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Index.Remove(booking.RoomNumber, booking.ID)

	result, err := s.Get(booking.ID)
	if err != nil {
		return nil, err
	}
	dispatch("booking cancelled", func() error { return s.Notifier.BookingCancelled(result) })
	return result, nil
}

// SetPaymentStatus updates the payment state only. It never touches booking
// status or the availability index: a Failed payment keeps the room occupied
// pending manual resolution.
func (s *BookingService) SetPaymentStatus(id uint, status models.PaymentStatus, paymentRef *string) (*models.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid payment status %q", ErrValidation, status)
	}
	if _, err := s.load(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"payment_status": status}
	if paymentRef != nil {
		updates["payment_ref"] = *paymentRef
	}
	if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	return s.Get(id)
}

// Get returns a booking with its nested guest and room.
func (s *BookingService) Get(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("Guest").
		Preload("Room.Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

// GetAll lists bookings with nested guest/room, newest first, optionally
// filtered by status, room type and a case-insensitive guest-name substring.
func (s *BookingService) GetAll(filter BookingFilter) ([]models.Booking, error) {
	q := s.DB.
		Preload("Guest").
		Preload("Room").
		Joins("JOIN guests ON guests.id = bookings.guest_id").
		Joins("JOIN rooms ON rooms.room_number = bookings.room_number")

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
		}
		q = q.Where("bookings.status = ?", filter.Status)
	}
	if filter.RoomType != "" {
		q = q.Where("rooms.room_type = ?", filter.RoomType)
	}
	if name := strings.ToLower(strings.TrimSpace(filter.GuestName)); name != "" {
		like := "%" + name + "%"
		q = q.Where("LOWER(guests.first_name) LIKE ? OR LOWER(guests.last_name) LIKE ?", like, like)
	}

	var bookings []models.Booking
	if err := q.Order("bookings.created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return bookings, nil
}

// BookedRanges exposes the availability view for a room over a date window.
func (s *BookingService) BookedRanges(roomNumber, from, to string) ([]Interval, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if _, err := s.roomExists(roomNumber); err != nil {
		return nil, err
	}
	return s.Index.BookedRanges(roomNumber, start, end), nil
}

func (s *BookingService) roomExists(roomNumber string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Room{}).Where("room_number = ?", roomNumber).Count(&count).Error; err != nil {
		return false, fmt.Errorf("db error checking room: %w", err)
	}
	if count == 0 {
		return false, fmt.Errorf("%w: room '%s'", ErrNotFound, roomNumber)
	}
	return true, nil
}

func (s *BookingService) load(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &booking, nil
}
