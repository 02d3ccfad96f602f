package saved

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	logger.Info("Saved items store selected", zap.String("backend", store.Backend()))
	return &Service{store: store, logger: logger}
}

func (s *Service) Backend() string { return s.store.Backend() }

func (s *Service) Save(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.store.Save(ctx, userID, listingID)
}

func (s *Service) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.store.Remove(ctx, userID, listingID)
}

func (s *Service) IsSaved(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	return s.store.IsSaved(ctx, userID, listingID)
}

// Toggle flips the bookmark and returns the new state. On error the
// returned state is false.
func (s *Service) Toggle(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	saved, err := s.store.IsSaved(ctx, userID, listingID)
	if err != nil {
		return false, err
	}
	if saved {
		return false, s.store.Remove(ctx, userID, listingID)
	}
	if err := s.store.Save(ctx, userID, listingID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.store.List(ctx, userID)
}

// Annotate returns the subset of listingIDs the user has saved.
func (s *Service) Annotate(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(listingIDs))
	if len(listingIDs) == 0 {
		return out, nil
	}
	all, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	savedSet := make(map[uuid.UUID]struct{}, len(all))
	for _, id := range all {
		savedSet[id] = struct{}{}
	}
	for _, id := range listingIDs {
		if _, ok := savedSet[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}
