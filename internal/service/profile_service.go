package service

import (
	"context"
	"strings"

	"campus-hub/internal/dto"
	"campus-hub/internal/models"
	"campus-hub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxStudyYear     = 7
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ProfileStore interface {
	ProfileReader
	UpdateAcademic(ctx context.Context, p *models.Profile) error
	Search(ctx context.Context, f repository.ProfileFilter) ([]*models.Profile, error)
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
}

type ProfileService struct {
	profiles ProfileStore
	logger   *zap.Logger
}

func NewProfileService(profiles ProfileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

func (s *ProfileService) Me(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*dto.ProfileResponse, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

// Update stores the onboarding answers of the caller.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	if name := strings.TrimSpace(req.FullName); name != "" {
		p.FullName = sanitizeUTF8(name)
	}
	p.Bio = strings.TrimSpace(sanitizeUTF8(req.Bio))
	if req.StudyYear != nil && (*req.StudyYear < 1 || *req.StudyYear > maxStudyYear) {
		return nil, ErrInvalidInput
	}
	p.StudyYear = req.StudyYear

	ids := []idField{
		{req.SchoolID, &p.SchoolID},
		{req.DepartmentID, &p.DepartmentID},
		{req.CityID, &p.CityID},
	}
	// Verified students keep the university their email proved.
	if !p.IsVerifiedStudent {
		ids = append(ids, idField{req.UniversityID, &p.UniversityID})
	}
	for _, f := range ids {
		id, err := parseOptionalID(f.in)
		if err != nil {
			return nil, err
		}
		*f.out = id
	}

	if err := s.profiles.UpdateAcademic(ctx, p); err != nil {
		return nil, notFound(err)
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

func (s *ProfileService) Search(ctx context.Context, f repository.ProfileFilter) ([]dto.ProfileResponse, error) {
	f.Limit = clampLimit(f.Limit)
	profiles, err := s.profiles.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	return out, nil
}

func (s *ProfileService) Follow(ctx context.Context, userID, targetID uuid.UUID) error {
	me, err := s.followPair(ctx, userID, targetID)
	if err != nil {
		return err
	}
	return s.profiles.Follow(ctx, me, targetID)
}

func (s *ProfileService) Unfollow(ctx context.Context, userID, targetID uuid.UUID) error {
	me, err := s.followPair(ctx, userID, targetID)
	if err != nil {
		return err
	}
	return s.profiles.Unfollow(ctx, me, targetID)
}

func (s *ProfileService) followPair(ctx context.Context, userID, targetID uuid.UUID) (uuid.UUID, error) {
	me, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return uuid.Nil, notFound(err)
	}
	if me.ID == targetID {
		return uuid.Nil, ErrInvalidInput
	}
	if _, err := s.profiles.GetByID(ctx, targetID); err != nil {
		return uuid.Nil, notFound(err)
	}
	return me.ID, nil
}

type idField struct {
	in  *string
	out **uuid.UUID
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
