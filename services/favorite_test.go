package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"SwipeEstate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAdd_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteService(db, nopLogger())
	user := createUser(t, db, models.RoleTenant)
	listing := createListing(t, db, listingSeed{city: "Berlin", price: 500})
	ctx := context.Background()

	first, err := favorites.Add(ctx, user.ID, listing.ID)
	require.NoError(t, err)
	second, err := favorites.Add(ctx, user.ID, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteAdd_UnknownListing(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteService(db, nopLogger())
	user := createUser(t, db, models.RoleTenant)

	_, err := favorites.Add(context.Background(), user.ID, 4242)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFavoriteRemove_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteService(db, nopLogger())
	user := createUser(t, db, models.RoleTenant)
	listing := createListing(t, db, listingSeed{city: "Berlin", price: 500})
	ctx := context.Background()

	_, err := favorites.Add(ctx, user.ID, listing.ID)
	require.NoError(t, err)

	require.NoError(t, favorites.Remove(ctx, user.ID, listing.ID))
	require.NoError(t, favorites.Remove(ctx, user.ID, listing.ID))

	got, err := favorites.ListListings(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFavoriteListListings_ActiveOnlyNewestFirst(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteService(db, nopLogger())
	user := createUser(t, db, models.RoleTenant)
	other := createUser(t, db, models.RoleTenant)
	ctx := context.Background()

	a := createListing(t, db, listingSeed{city: "Berlin", price: 500})
	b := createListing(t, db, listingSeed{city: "Berlin", price: 600, age: time.Hour})
	hidden := createListing(t, db, listingSeed{city: "Berlin", price: 700, inactive: true})

	for _, id := range []uint{a.ID, hidden.ID, b.ID} {
		_, err := favorites.Add(ctx, user.ID, id)
		require.NoError(t, err)
	}
	_, err := favorites.Add(ctx, other.ID, a.ID)
	require.NoError(t, err)

	got, err := favorites.ListListings(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}
