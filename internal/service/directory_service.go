package service

import (
	"context"

	"campus-hub/internal/lookup"
	"campus-hub/internal/metrics"
	"campus-hub/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DirectoryStore interface {
	ListCities(ctx context.Context) ([]models.City, error)
	UniversitiesByCityRPC(ctx context.Context, cityID uuid.UUID) ([]models.University, error)
	UniversitiesByCityDirect(ctx context.Context, cityID uuid.UUID) ([]models.University, error)
	SchoolsByUniversityRPC(ctx context.Context, universityID uuid.UUID) ([]models.School, error)
	SchoolsByUniversityDirect(ctx context.Context, universityID uuid.UUID) ([]models.School, error)
	DepartmentsBySchoolRPC(ctx context.Context, schoolID uuid.UUID) ([]models.Department, error)
	DepartmentsBySchoolDirect(ctx context.Context, schoolID uuid.UUID) ([]models.Department, error)
}

// DirectoryService serves the cascading city, university, school and
// department pickers used during onboarding.
type DirectoryService struct {
	store  DirectoryStore
	logger *zap.Logger
}

func NewDirectoryService(store DirectoryStore, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{store: store, logger: logger}
}

func (s *DirectoryService) Cities(ctx context.Context) ([]models.City, error) {
	return s.store.ListCities(ctx)
}

func (s *DirectoryService) UniversitiesByCity(ctx context.Context, cityID uuid.UUID) ([]models.University, error) {
	return resolve(ctx, s, lookup.Source[models.University]{
		Name:     "universities_by_city",
		RPC:      func(ctx context.Context) ([]models.University, error) { return s.store.UniversitiesByCityRPC(ctx, cityID) },
		Fallback: func(ctx context.Context) ([]models.University, error) { return s.store.UniversitiesByCityDirect(ctx, cityID) },
		Key:      func(u models.University) string { return u.ID.String() },
		Label:    func(u models.University) string { return u.Name },
	})
}

func (s *DirectoryService) SchoolsByUniversity(ctx context.Context, universityID uuid.UUID) ([]models.School, error) {
	return resolve(ctx, s, lookup.Source[models.School]{
		Name:     "schools_by_university",
		RPC:      func(ctx context.Context) ([]models.School, error) { return s.store.SchoolsByUniversityRPC(ctx, universityID) },
		Fallback: func(ctx context.Context) ([]models.School, error) { return s.store.SchoolsByUniversityDirect(ctx, universityID) },
		Key:      func(sc models.School) string { return sc.ID.String() },
		Label:    func(sc models.School) string { return sc.Name },
	})
}

func (s *DirectoryService) DepartmentsBySchool(ctx context.Context, schoolID uuid.UUID) ([]models.Department, error) {
	return resolve(ctx, s, lookup.Source[models.Department]{
		Name:     "departments_by_school",
		RPC:      func(ctx context.Context) ([]models.Department, error) { return s.store.DepartmentsBySchoolRPC(ctx, schoolID) },
		Fallback: func(ctx context.Context) ([]models.Department, error) { return s.store.DepartmentsBySchoolDirect(ctx, schoolID) },
		Key:      func(d models.Department) string { return d.ID.String() },
		Label:    func(d models.Department) string { return d.Name },
	})
}

func resolve[T any](ctx context.Context, s *DirectoryService, src lookup.Source[T]) ([]T, error) {
	res, err := lookup.Resolve(ctx, src)
	if err != nil {
		s.logger.Error("Directory lookup failed", zap.String("lookup", src.Name), zap.Error(err))
		return nil, err
	}
	if res.UsedFallback {
		metrics.LookupFallbacks.WithLabelValues(src.Name).Inc()
		s.logger.Warn("Directory function missing, read tables directly", zap.String("lookup", src.Name))
	}
	if res.Items == nil {
		return []T{}, nil
	}
	return res.Items, nil
}
