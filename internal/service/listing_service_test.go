package service

import (
	"context"
	"testing"

	"campus-hub/internal/dto"
	"campus-hub/internal/messaging"
	"campus-hub/internal/models"
	"campus-hub/internal/repository"
	"campus-hub/internal/saved"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySaved struct {
	items map[uuid.UUID][]uuid.UUID
}

func (m *memorySaved) Save(_ context.Context, userID, listingID uuid.UUID) error {
	for _, id := range m.items[userID] {
		if id == listingID {
			return nil
		}
	}
	m.items[userID] = append([]uuid.UUID{listingID}, m.items[userID]...)
	return nil
}

func (m *memorySaved) Remove(_ context.Context, userID, listingID uuid.UUID) error {
	var kept []uuid.UUID
	for _, id := range m.items[userID] {
		if id != listingID {
			kept = append(kept, id)
		}
	}
	m.items[userID] = kept
	return nil
}

func (m *memorySaved) Exists(_ context.Context, userID, listingID uuid.UUID) (bool, error) {
	for _, id := range m.items[userID] {
		if id == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memorySaved) ListingIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.items[userID], nil
}

func newTestListingService(profiles *fakeProfiles) (*ListingService, *fakeListings, *recordingPublisher) {
	listings := &fakeListings{}
	pub := &recordingPublisher{}
	bookmarks := saved.NewService(saved.NewRemoteStore(&memorySaved{items: map[uuid.UUID][]uuid.UUID{}}), zap.NewNop())
	return NewListingService(listings, profiles, bookmarks, pub, zap.NewNop()), listings, pub
}

func TestListingService_Create(t *testing.T) {
	city := uuid.New()
	seller := newProfile(func(p *models.Profile) { p.CityID = &city })
	pre := newProfile(func(p *models.Profile) { p.IsVerifiedStudent, p.IsPreStudent = false, true })
	svc, listings, pub := newTestListingService(newFakeProfiles(seller, pre))
	ctx := context.Background()

	resp, err := svc.Create(ctx, seller.UserID, &dto.CreateListingRequest{
		Title: "  Calculus textbook ", Price: 5000, Category: "Books",
	})
	require.NoError(t, err)
	assert.Equal(t, "Calculus textbook", resp.Title)
	assert.Equal(t, "books", resp.Category)
	assert.Equal(t, defaultCurrency, resp.Currency)
	require.NotNil(t, resp.CityID)
	assert.Equal(t, city.String(), *resp.CityID, "defaults to the seller's city")
	assert.Len(t, listings.items, 1)
	assert.Equal(t, []publishedEvent{{messaging.SubjectListingCreated, "listing.created"}}, pub.events)

	_, err = svc.Create(ctx, pre.UserID, &dto.CreateListingRequest{Title: "Lamp", Price: 1})
	assert.ErrorIs(t, err, ErrForbidden)

	for _, req := range []dto.CreateListingRequest{
		{Title: "", Price: 1},
		{Title: "Lamp", Price: -1},
		{Title: "Lamp", Price: 1, Category: "weapons"},
	} {
		_, err = svc.Create(ctx, seller.UserID, &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestListingService_SavedFlow(t *testing.T) {
	seller := newProfile(nil)
	buyer := newProfile(nil)
	svc, _, _ := newTestListingService(newFakeProfiles(seller, buyer))
	ctx := context.Background()

	first, err := svc.Create(ctx, seller.UserID, &dto.CreateListingRequest{Title: "Desk", Price: 10})
	require.NoError(t, err)
	second, err := svc.Create(ctx, seller.UserID, &dto.CreateListingRequest{Title: "Chair", Price: 5})
	require.NoError(t, err)
	firstID, secondID := uuid.MustParse(first.ID), uuid.MustParse(second.ID)

	res, err := svc.Save(ctx, buyer.UserID, firstID)
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, saved.BackendRemote, res.Backend)

	_, err = svc.Save(ctx, buyer.UserID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	toggled, err := svc.ToggleSaved(ctx, seller.UserID, secondID)
	require.NoError(t, err)
	assert.True(t, toggled.Saved)
	toggled, err = svc.ToggleSaved(ctx, seller.UserID, secondID)
	require.NoError(t, err)
	assert.False(t, toggled.Saved)
	_, err = svc.ToggleSaved(ctx, seller.UserID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := svc.List(ctx, buyer.UserID, repository.ListingFilter{})
	require.NoError(t, err)
	marks := map[string]bool{}
	for _, l := range all {
		marks[l.ID] = l.Saved
	}
	assert.True(t, marks[first.ID])
	assert.False(t, marks[second.ID])

	got, err := svc.Get(ctx, seller.UserID, firstID)
	require.NoError(t, err)
	assert.False(t, got.Saved, "bookmarks are per user")

	_, err = svc.Save(ctx, buyer.UserID, secondID)
	require.NoError(t, err)
	list, err := svc.Saved(ctx, buyer.UserID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	_, err = svc.Unsave(ctx, buyer.UserID, secondID)
	require.NoError(t, err)
	list, err = svc.Saved(ctx, buyer.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestListingService_Delete(t *testing.T) {
	seller := newProfile(nil)
	other := newProfile(nil)
	svc, listings, pub := newTestListingService(newFakeProfiles(seller, other))
	ctx := context.Background()

	l, err := svc.Create(ctx, seller.UserID, &dto.CreateListingRequest{Title: "Bike", Price: 100})
	require.NoError(t, err)
	id := uuid.MustParse(l.ID)

	assert.ErrorIs(t, svc.Delete(ctx, other.UserID, id), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, seller.UserID, id))
	assert.Empty(t, listings.items)
	assert.Equal(t, messaging.SubjectListingDeleted, pub.events[len(pub.events)-1].subject)
}
