package service

import (
	"context"
	"errors"
	"testing"

	"campus-hub/internal/lookup"
	"campus-hub/internal/models"
	"campus-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDirectory struct {
	rpcErr      error
	rpcRows     []models.University
	directRows  []models.University
	schoolRows  []models.School
	deptRows    []models.Department
	rpcCalls    int
	directCalls int
}

func (f *fakeDirectory) ListCities(context.Context) ([]models.City, error) { return nil, nil }

func (f *fakeDirectory) UniversitiesByCityRPC(context.Context, uuid.UUID) ([]models.University, error) {
	f.rpcCalls++
	return f.rpcRows, f.rpcErr
}

func (f *fakeDirectory) UniversitiesByCityDirect(context.Context, uuid.UUID) ([]models.University, error) {
	f.directCalls++
	return f.directRows, nil
}

func (f *fakeDirectory) SchoolsByUniversityRPC(context.Context, uuid.UUID) ([]models.School, error) {
	return nil, f.rpcErr
}

func (f *fakeDirectory) SchoolsByUniversityDirect(context.Context, uuid.UUID) ([]models.School, error) {
	f.directCalls++
	return f.schoolRows, nil
}

func (f *fakeDirectory) DepartmentsBySchoolRPC(context.Context, uuid.UUID) ([]models.Department, error) {
	return nil, f.rpcErr
}

func (f *fakeDirectory) DepartmentsBySchoolDirect(context.Context, uuid.UUID) ([]models.Department, error) {
	f.directCalls++
	return f.deptRows, nil
}

func missingFunction(name string) error {
	return &repository.UnsupportedError{
		Object: name,
		Code:   "42883",
		Err:    &pgconn.PgError{Code: "42883", Message: "function " + name + "(uuid) does not exist"},
	}
}

func universityNames(us []models.University) []string {
	names := make([]string, len(us))
	for i, u := range us {
		names[i] = u.Name
	}
	return names
}

func TestDirectoryServiceUniversitiesByCity(t *testing.T) {
	ctx := context.Background()
	zeta := models.University{ID: uuid.New(), Name: "zeta"}
	alpha := models.University{ID: uuid.New(), Name: "Alpha"}

	t.Run("rpc rows are returned as received", func(t *testing.T) {
		store := &fakeDirectory{rpcRows: []models.University{zeta, alpha}}
		svc := NewDirectoryService(store, zap.NewNop())

		got, err := svc.UniversitiesByCity(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "Alpha"}, universityNames(got))
		assert.Zero(t, store.directCalls)
	})

	t.Run("missing function reads tables, deduped and sorted", func(t *testing.T) {
		store := &fakeDirectory{
			rpcErr:     missingFunction("universities_by_city"),
			directRows: []models.University{zeta, alpha, zeta},
		}
		svc := NewDirectoryService(store, zap.NewNop())

		got, err := svc.UniversitiesByCity(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "zeta"}, universityNames(got))
		assert.Equal(t, 1, store.rpcCalls)
		assert.Equal(t, 1, store.directCalls)
	})

	t.Run("other database errors fail the lookup", func(t *testing.T) {
		store := &fakeDirectory{rpcErr: &pgconn.PgError{Code: "42501", Message: "permission denied"}}
		svc := NewDirectoryService(store, zap.NewNop())

		_, err := svc.UniversitiesByCity(ctx, uuid.New())
		assert.ErrorIs(t, err, lookup.ErrLookupFailed)
		assert.Zero(t, store.directCalls)
	})

	t.Run("empty fallback is an empty list", func(t *testing.T) {
		store := &fakeDirectory{rpcErr: missingFunction("universities_by_city")}
		svc := NewDirectoryService(store, zap.NewNop())

		got, err := svc.UniversitiesByCity(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestDirectoryServiceSchoolsAndDepartmentsFallBack(t *testing.T) {
	ctx := context.Background()
	site := models.School{ID: uuid.New(), Name: "SITE"}
	business := models.School{ID: uuid.New(), Name: "business"}
	cs := models.Department{ID: uuid.New(), Name: "Computer Science"}

	store := &fakeDirectory{
		rpcErr:     missingFunction("schools_by_university"),
		schoolRows: []models.School{site, business, site},
		deptRows:   []models.Department{cs, cs},
	}
	svc := NewDirectoryService(store, zap.NewNop())

	schools, err := svc.SchoolsByUniversity(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []models.School{business, site}, schools)

	depts, err := svc.DepartmentsBySchool(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []models.Department{cs}, depts)
}

func TestMissingFunctionIsUnsupported(t *testing.T) {
	assert.True(t, lookup.IsUnsupported(missingFunction("departments_by_school")))
	assert.False(t, lookup.IsUnsupported(errors.New("connection reset")))
}
