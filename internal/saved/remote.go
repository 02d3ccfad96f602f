package saved

import (
	"context"

	"github.com/google/uuid"
)

// TableRepository is the subset of repository.SavedRepository RemoteStore
// needs.
type TableRepository interface {
	Save(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	ListingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// RemoteStore keeps bookmarks in the saved_items table.
type RemoteStore struct {
	repo TableRepository
}

func NewRemoteStore(repo TableRepository) *RemoteStore {
	return &RemoteStore{repo: repo}
}

func (s *RemoteStore) Save(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.repo.Save(ctx, userID, listingID)
}

func (s *RemoteStore) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, listingID)
}

func (s *RemoteStore) IsSaved(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, userID, listingID)
}

func (s *RemoteStore) List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListingIDs(ctx, userID)
}

func (s *RemoteStore) Backend() string { return BackendRemote }
