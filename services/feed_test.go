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

func TestFeedNext_EmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	user := createUser(t, db, models.RoleTenant)

	listing, err := feed.Next(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, listing)
}

func TestFeedNext_NoPreferenceReturnsNewestActive(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	user := createUser(t, db, models.RoleTenant)

	createListing(t, db, listingSeed{city: "Berlin", price: 500, age: 0})
	newest := createListing(t, db, listingSeed{city: "Hamburg", price: 700, age: time.Hour})
	createListing(t, db, listingSeed{city: "Munich", price: 900, age: 2 * time.Hour, inactive: true})

	listing, err := feed.Next(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, newest.ID, listing.ID)
}

func TestFeedNext_AnyActionMarksListingSeen(t *testing.T) {
	for _, action := range []string{models.ActionLike, models.ActionDislike, models.ActionFavorite} {
		t.Run(action, func(t *testing.T) {
			db := newTestDB(t)
			feed := NewFeedService(db, nopLogger())
			user := createUser(t, db, models.RoleTenant)
			ctx := context.Background()

			older := createListing(t, db, listingSeed{city: "Berlin", price: 500, age: 0})
			newer := createListing(t, db, listingSeed{city: "Berlin", price: 600, age: time.Hour})

			require.NoError(t, feed.RecordAction(ctx, user.ID, models.FeedActionRequest{ListingID: newer.ID, Action: action}))

			listing, err := feed.Next(ctx, user.ID)
			require.NoError(t, err)
			require.NotNil(t, listing)
			assert.Equal(t, older.ID, listing.ID)

			require.NoError(t, feed.RecordAction(ctx, user.ID, models.FeedActionRequest{ListingID: older.ID, Action: action}))

			listing, err = feed.Next(ctx, user.ID)
			require.NoError(t, err)
			assert.Nil(t, listing)
		})
	}
}

func TestFeedNext_SeenIsPerUser(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	alice := createUser(t, db, models.RoleTenant)
	bob := createUser(t, db, models.RoleTenant)
	ctx := context.Background()

	only := createListing(t, db, listingSeed{city: "Berlin", price: 500})
	require.NoError(t, feed.RecordAction(ctx, alice.ID, models.FeedActionRequest{ListingID: only.ID, Action: models.ActionDislike}))

	listing, err := feed.Next(ctx, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, only.ID, listing.ID)
}

func TestFeedNext_FallsBackWhenPreferencesMatchNothing(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	prefs := NewPreferenceService(db, nopLogger())
	user := createUser(t, db, models.RoleTenant)
	ctx := context.Background()

	_, err := prefs.Upsert(ctx, user.ID, models.PreferenceRequest{City: strPtr("Paris")})
	require.NoError(t, err)

	createListing(t, db, listingSeed{city: "Berlin", price: 500, age: 0})
	newest := createListing(t, db, listingSeed{city: "Munich", price: 800, age: time.Hour})

	listing, err := feed.Next(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, newest.ID, listing.ID)
}

func TestFeedNext_AppliesEveryPreferenceFilter(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	prefs := NewPreferenceService(db, nopLogger())
	user := createUser(t, db, models.RoleTenant)
	ctx := context.Background()

	match := createListing(t, db, listingSeed{city: "Berlin", price: 800, deal: models.DealSale, kind: models.PropertyHouse, age: 0})
	createListing(t, db, listingSeed{city: "Berlin", price: 800, deal: models.DealRent, kind: models.PropertyHouse, age: time.Hour})
	createListing(t, db, listingSeed{city: "Berlin", price: 800, deal: models.DealSale, kind: models.PropertyFlat, age: 2 * time.Hour})
	createListing(t, db, listingSeed{city: "Berlin", price: 100, deal: models.DealSale, kind: models.PropertyHouse, age: 3 * time.Hour})
	createListing(t, db, listingSeed{city: "Berlin", price: 5000, deal: models.DealSale, kind: models.PropertyHouse, age: 4 * time.Hour})

	_, err := prefs.Upsert(ctx, user.ID, models.PreferenceRequest{
		City:         strPtr("Berlin"),
		DealType:     strPtr(models.DealSale),
		PropertyType: strPtr(models.PropertyHouse),
		PriceMin:     floatPtr(500),
		PriceMax:     floatPtr(1000),
		RoomsMin:     intPtr(3),
	})
	require.NoError(t, err)

	listing, err := feed.Next(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, match.ID, listing.ID)
}

func TestFeedNext_BerlinScenario(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	prefs := NewPreferenceService(db, nopLogger())
	user := createUser(t, db, models.RoleTenant)
	ctx := context.Background()

	_, err := prefs.Upsert(ctx, user.ID, models.PreferenceRequest{City: strPtr("Berlin"), PriceMax: floatPtr(1000)})
	require.NoError(t, err)

	a := createListing(t, db, listingSeed{city: "Berlin", price: 900, age: 0})
	b := createListing(t, db, listingSeed{city: "Berlin", price: 1500, age: time.Hour})
	c := createListing(t, db, listingSeed{city: "Munich", price: 500, age: 2 * time.Hour})

	listing, err := feed.Next(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, a.ID, listing.ID)

	require.NoError(t, feed.RecordAction(ctx, user.ID, models.FeedActionRequest{ListingID: a.ID, Action: models.ActionDislike}))

	// Nothing passes the filters any more: the unfiltered tier picks the newest of B and C.
	listing, err = feed.Next(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, c.ID, listing.ID)

	require.NoError(t, feed.RecordAction(ctx, user.ID, models.FeedActionRequest{ListingID: c.ID, Action: models.ActionLike}))

	listing, err = feed.Next(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, b.ID, listing.ID)

	require.NoError(t, feed.RecordAction(ctx, user.ID, models.FeedActionRequest{ListingID: b.ID, Action: models.ActionFavorite}))

	listing, err = feed.Next(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, listing)
}

func TestRecordAction_LikeTwiceCreatesOneLeadAndTwoEvents(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	owner := createUser(t, db, models.RoleLandlord)
	tenant := createUser(t, db, models.RoleTenant)
	listing := createListing(t, db, listingSeed{owner: &owner.ID, city: "Berlin", price: 900})
	ctx := context.Background()

	req := models.FeedActionRequest{ListingID: listing.ID, Action: models.ActionLike, Source: strPtr("telegram")}
	require.NoError(t, feed.RecordAction(ctx, tenant.ID, req))
	require.NoError(t, feed.RecordAction(ctx, tenant.ID, req))

	var events []models.FeedAction
	require.NoError(t, db.Where("user_id = ?", tenant.ID).Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "telegram", *events[0].Source)

	var leads []models.Lead
	require.NoError(t, db.Where("tenant_id = ?", tenant.ID).Find(&leads).Error)
	require.Len(t, leads, 1)
	assert.Equal(t, listing.ID, leads[0].ListingID)
	require.NotNil(t, leads[0].OwnerID)
	assert.Equal(t, owner.ID, *leads[0].OwnerID)
	assert.Equal(t, models.LeadNew, leads[0].Status)
}

func TestRecordAction_LikeOnMissingListingHasNoOwner(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	tenant := createUser(t, db, models.RoleTenant)

	require.NoError(t, feed.RecordAction(context.Background(), tenant.ID, models.FeedActionRequest{ListingID: 4242, Action: models.ActionLike}))

	var lead models.Lead
	require.NoError(t, db.Where("tenant_id = ?", tenant.ID).First(&lead).Error)
	assert.Nil(t, lead.OwnerID)
}

func TestRecordAction_FavoriteIsDeduplicated(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	tenant := createUser(t, db, models.RoleTenant)
	listing := createListing(t, db, listingSeed{city: "Berlin", price: 900})
	ctx := context.Background()

	req := models.FeedActionRequest{ListingID: listing.ID, Action: models.ActionFavorite}
	require.NoError(t, feed.RecordAction(ctx, tenant.ID, req))
	require.NoError(t, feed.RecordAction(ctx, tenant.ID, req))

	var favorites int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("user_id = ?", tenant.ID).Count(&favorites).Error)
	assert.Equal(t, int64(1), favorites)

	var events []models.FeedAction
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, defaultActionSource, *events[0].Source)
}

func TestRecordAction_DislikeOnlyLogs(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	tenant := createUser(t, db, models.RoleTenant)
	listing := createListing(t, db, listingSeed{city: "Berlin", price: 900})

	require.NoError(t, feed.RecordAction(context.Background(), tenant.ID, models.FeedActionRequest{ListingID: listing.ID, Action: models.ActionDislike}))

	var favorites, leads, events int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favorites).Error)
	require.NoError(t, db.Model(&models.Lead{}).Count(&leads).Error)
	require.NoError(t, db.Model(&models.FeedAction{}).Count(&events).Error)
	assert.Zero(t, favorites)
	assert.Zero(t, leads)
	assert.Equal(t, int64(1), events)
}

func TestRecordAction_RollsBackWhenDerivedWriteFails(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())
	tenant := createUser(t, db, models.RoleTenant)
	listing := createListing(t, db, listingSeed{city: "Berlin", price: 900})

	require.NoError(t, db.Migrator().DropTable(&models.Favorite{}))

	err := feed.RecordAction(context.Background(), tenant.ID, models.FeedActionRequest{ListingID: listing.ID, Action: models.ActionFavorite})
	require.Error(t, err)

	var events int64
	require.NoError(t, db.Model(&models.FeedAction{}).Count(&events).Error)
	assert.Zero(t, events)
}

func TestRecordAction_RejectsUnknownAction(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db, nopLogger())

	err := feed.RecordAction(context.Background(), 1, models.FeedActionRequest{ListingID: 1, Action: "superlike"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}
