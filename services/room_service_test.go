package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking-backend/models"
)

func TestCreateRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room, err := svc.Create(CreateRoomInput{
		RoomNumber:    "201",
		RoomType:      models.RoomTypeSuite,
		PricePerNight: 250000,
		Capacity:      4,
		Size:          45,
		Features:      []string{"WiFi", "Jacuzzi"},
		Description:   "Top floor suite.",
		Images: []RoomImageInput{
			{URL: "/images/suite-1.jpg", DisplayOrder: 2},
			{URL: "/images/suite-main.jpg", DisplayOrder: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "201", room.RoomNumber)
	if assert.Len(t, room.Images, 2) {
		// Images come back ordered for display.
		assert.Equal(t, "/images/suite-main.jpg", room.Images[0].URL)
		assert.Equal(t, "/images/suite-1.jpg", room.Images[1].URL)
	}
}

func TestCreateRoomDefaultsImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room, err := svc.Create(CreateRoomInput{
		RoomNumber:    "202",
		RoomType:      models.RoomTypeDouble,
		PricePerNight: 160000,
		Capacity:      2,
		Size:          30,
		Features:      []string{},
	})
	require.NoError(t, err)

	if assert.Len(t, room.Images, 1) {
		assert.Equal(t, "/images/double-room.jpg", room.Images[0].URL)
	}
}

func TestCreateRoomRejectsDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	in := CreateRoomInput{
		RoomNumber:    "203",
		RoomType:      models.RoomTypeSingle,
		PricePerNight: 120000,
		Capacity:      1,
		Size:          20,
		Features:      []string{},
	}
	_, err := svc.Create(in)
	require.NoError(t, err)

	_, err = svc.Create(in)
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)
}

func TestCreateRoomValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	cases := []struct {
		name   string
		mutate func(*CreateRoomInput)
	}{
		{"blank number", func(in *CreateRoomInput) { in.RoomNumber = "  " }},
		{"unknown type", func(in *CreateRoomInput) { in.RoomType = "Penthouse" }},
		{"zero price", func(in *CreateRoomInput) { in.PricePerNight = 0 }},
		{"zero capacity", func(in *CreateRoomInput) { in.Capacity = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := CreateRoomInput{
				RoomNumber:    "204",
				RoomType:      models.RoomTypeSingle,
				PricePerNight: 120000,
				Capacity:      1,
				Size:          20,
				Features:      []string{},
			}
			tc.mutate(&in)
			_, err := svc.Create(in)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}
}

func TestUpdateRoom(t *testing.T) {
	db := newTestDB(t)
	seedRoom(t, db, "101", models.RoomTypeSingle, 120000, 1)
	svc := NewRoomService(db)

	room, err := svc.Update("101", UpdateRoomInput{
		RoomType:      models.RoomTypeDouble,
		PricePerNight: 140000,
		Capacity:      2,
		Size:          28,
		Features:      []string{"WiFi", "Balcony"},
		Description:   "Refurbished.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomTypeDouble, room.RoomType)
	assert.Equal(t, float64(140000), room.PricePerNight)

	_, err = svc.Update("999", UpdateRoomInput{
		RoomType:      models.RoomTypeSingle,
		PricePerNight: 100000,
		Capacity:      1,
		Size:          20,
		Features:      []string{},
	})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteRoomRefusedWhileBooked(t *testing.T) {
	db := newTestDB(t)
	seedRoom(t, db, "101", models.RoomTypeSingle, 120000, 2)
	rooms := NewRoomService(db)
	bookings := newBookingService(t, db)

	booking, err := bookings.Create(createInput("101", 10, 14))
	require.NoError(t, err)

	err = rooms.Delete("101")
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)

	// After cancelling, the room can go; historical rows are cascaded.
	_, err = bookings.Cancel(booking.ID)
	require.NoError(t, err)
	require.NoError(t, rooms.Delete("101"))

	_, err = rooms.GetByNumber("101")
	assert.True(t, errors.Is(err, ErrNotFound))

	var leftovers int64
	require.NoError(t, db.Model(&models.Booking{}).Where("room_number = ?", "101").Count(&leftovers).Error)
	assert.Zero(t, leftovers)
}

func TestGetAllRoomsFilters(t *testing.T) {
	db := newTestDB(t)
	seedRoom(t, db, "101", models.RoomTypeSingle, 120000, 1)
	seedRoom(t, db, "102", models.RoomTypeDouble, 160000, 2)
	seedRoom(t, db, "201", models.RoomTypeDouble, 170000, 2)
	svc := NewRoomService(db)

	all, err := svc.GetAll(RoomFilter{})
	require.NoError(t, err)
	if assert.Len(t, all, 3) {
		assert.Equal(t, "101", all[0].RoomNumber) // sorted by number
	}

	doubles, err := svc.GetAll(RoomFilter{RoomType: models.RoomTypeDouble})
	require.NoError(t, err)
	assert.Len(t, doubles, 2)

	firstFloor, err := svc.GetAll(RoomFilter{NumberLike: "10"})
	require.NoError(t, err)
	assert.Len(t, firstFloor, 2)
}
