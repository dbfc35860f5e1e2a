package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking-backend/models"
)

func TestGuestUpsertCreatesThenRefreshes(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	first, err := svc.Upsert(db, guestInput("AB-123"))
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// Same identity with new contact details updates in place.
	refreshed := guestInput("AB-123")
	refreshed.Email = "ada.lovelace@example.com"
	refreshed.Phone = "+44987654321"
	second, err := svc.Upsert(db, refreshed)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "ada.lovelace@example.com", second.Email)
	assert.Equal(t, "+44987654321", second.Phone)

	var count int64
	require.NoError(t, db.Model(&models.Guest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGuestUpsertIdentityIsDocumentPair(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	passport := guestInput("AB-123")
	_, err := svc.Upsert(db, passport)
	require.NoError(t, err)

	// Same number under a different document type is a different person,
	// even with the same email address.
	license := guestInput("AB-123")
	license.DocumentType = "DriverLicense"
	other, err := svc.Upsert(db, license)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Guest{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
	assert.NotZero(t, other.ID)
}

func TestGuestUpsertValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	in := guestInput("AB-123")
	in.FirstName = "   "
	_, err := svc.Upsert(db, in)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestGuestsSortedByFirstName(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	for _, g := range []struct{ id, name string }{
		{"C-1", "Charlie"},
		{"A-1", "Alice"},
		{"B-1", "Bob"},
	} {
		in := guestInput(g.id)
		in.FirstName = g.name
		_, err := svc.Upsert(db, in)
		require.NoError(t, err)
	}

	guests, err := svc.GetAll()
	require.NoError(t, err)
	require.Len(t, guests, 3)
	assert.Equal(t, "Alice", guests[0].FirstName)
	assert.Equal(t, "Bob", guests[1].FirstName)
	assert.Equal(t, "Charlie", guests[2].FirstName)
}
