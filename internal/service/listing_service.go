package service

import (
	"context"
	"strings"
	"time"

	"campus-hub/internal/dto"
	"campus-hub/internal/messaging"
	"campus-hub/internal/models"
	"campus-hub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultCurrency = "KZT"
	maxTitleLength  = 140
)

type ListingStore interface {
	Create(ctx context.Context, l *models.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Listing, error)
	List(ctx context.Context, f repository.ListingFilter) ([]*models.Listing, error)
	Delete(ctx context.Context, id, sellerID uuid.UUID) error
}

// Bookmarks is the saved-items surface the marketplace needs.
type Bookmarks interface {
	Backend() string
	Save(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	Toggle(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Annotate(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type ListingService struct {
	listings  ListingStore
	profiles  ProfileReader
	bookmarks Bookmarks
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewListingService(listings ListingStore, profiles ProfileReader, bookmarks Bookmarks, publisher messaging.Publisher, logger *zap.Logger) *ListingService {
	return &ListingService{
		listings:  listings,
		profiles:  profiles,
		bookmarks: bookmarks,
		publisher: publisher,
		logger:    logger,
	}
}

// Create publishes a listing for a verified student.
func (s *ListingService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateListingRequest) (*dto.ListingResponse, error) {
	seller, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	if seller.IsPreStudent {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(sanitizeUTF8(req.Title))
	category := models.ListingCategory(strings.ToLower(req.Category))
	if category == "" {
		category = models.ListingCategoryOther
	}
	if title == "" || len([]rune(title)) > maxTitleLength || req.Price < 0 || !category.Valid() {
		return nil, ErrInvalidInput
	}
	cityID, err := parseOptionalID(req.CityID)
	if err != nil {
		return nil, err
	}
	if cityID == nil {
		cityID = seller.CityID
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now()
	listing := &models.Listing{
		ID:          uuid.New(),
		SellerID:    seller.ID,
		Title:       title,
		Description: strings.TrimSpace(sanitizeUTF8(req.Description)),
		Price:       req.Price,
		Currency:    currency,
		Category:    category,
		CityID:      cityID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}

	resp := toListingResponse(listing, false)
	s.publish(messaging.SubjectListingCreated, "listing.created", resp)
	return &resp, nil
}

func (s *ListingService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.ListingResponse, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	out, err := s.annotate(ctx, userID, []*models.Listing{listing})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *ListingService) List(ctx context.Context, userID uuid.UUID, f repository.ListingFilter) ([]dto.ListingResponse, error) {
	if f.Category != "" && !f.Category.Valid() {
		return nil, ErrInvalidInput
	}
	f.Limit = clampLimit(f.Limit)
	listings, err := s.listings.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, userID, listings)
}

// Delete removes one of the caller's own listings.
func (s *ListingService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	seller, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return notFound(err)
	}
	if err := s.listings.Delete(ctx, id, seller.ID); err != nil {
		return notFound(err)
	}
	s.publish(messaging.SubjectListingDeleted, "listing.deleted", map[string]string{"id": id.String()})
	return nil
}

func (s *ListingService) Save(ctx context.Context, userID, id uuid.UUID) (*dto.SavedResponse, error) {
	if _, err := s.listings.GetByID(ctx, id); err != nil {
		return nil, notFound(err)
	}
	if err := s.bookmarks.Save(ctx, userID, id); err != nil {
		return nil, err
	}
	return &dto.SavedResponse{ListingID: id.String(), Saved: true, Backend: s.bookmarks.Backend()}, nil
}

func (s *ListingService) Unsave(ctx context.Context, userID, id uuid.UUID) (*dto.SavedResponse, error) {
	if err := s.bookmarks.Remove(ctx, userID, id); err != nil {
		return nil, err
	}
	return &dto.SavedResponse{ListingID: id.String(), Saved: false, Backend: s.bookmarks.Backend()}, nil
}

// ToggleSaved flips the caller's bookmark on a listing.
func (s *ListingService) ToggleSaved(ctx context.Context, userID, id uuid.UUID) (*dto.SavedResponse, error) {
	if _, err := s.listings.GetByID(ctx, id); err != nil {
		return nil, notFound(err)
	}
	state, err := s.bookmarks.Toggle(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &dto.SavedResponse{ListingID: id.String(), Saved: state, Backend: s.bookmarks.Backend()}, nil
}

// Saved lists the caller's bookmarked listings, most recently saved first.
// Bookmarks of deleted listings are skipped.
func (s *ListingService) Saved(ctx context.Context, userID uuid.UUID) ([]dto.ListingResponse, error) {
	ids, err := s.bookmarks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l, true))
	}
	return out, nil
}

func (s *ListingService) annotate(ctx context.Context, userID uuid.UUID, listings []*models.Listing) ([]dto.ListingResponse, error) {
	ids := make([]uuid.UUID, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	marks, err := s.bookmarks.Annotate(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l, marks[l.ID]))
	}
	return out, nil
}

// publish is best effort; the row is already stored.
func (s *ListingService) publish(subject, eventType string, payload any) {
	if err := s.publisher.PublishEvent(subject, eventType, payload); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
