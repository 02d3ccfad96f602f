package repository

import (
	"context"
	"strings"

	"campus-hub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DirectoryRepository reads cities, universities, schools and departments.
// The *RPC methods call the aggregation functions installed by migrations;
// the *Direct methods read the tables and are used when a function is
// missing from the connected database.
type DirectoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDirectoryRepository(db *pgxpool.Pool, logger *zap.Logger) *DirectoryRepository {
	return &DirectoryRepository{
		db:     db,
		logger: logger,
	}
}

func collect[T any](ctx context.Context, db *pgxpool.Pool, object, sql string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, object)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, translate(err, object)
	}
	return out, nil
}

func collectBuilder[T any](ctx context.Context, db *pgxpool.Pool, object string, q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return collect[T](ctx, db, object, sql, args...)
}

func (r *DirectoryRepository) ListCities(ctx context.Context) ([]models.City, error) {
	return collectBuilder[models.City](ctx, r.db, "cities",
		psql.Select("id", "name").From("cities").OrderBy("name"))
}

func (r *DirectoryRepository) UniversitiesByCityRPC(ctx context.Context, cityID uuid.UUID) ([]models.University, error) {
	return collect[models.University](ctx, r.db, "universities_by_city",
		`SELECT id, name, city_id FROM universities_by_city($1)`, cityID)
}

// UniversitiesByCityDirect reads the same rows as universities_by_city:
// universities located in the city plus universities whose students list
// the city, joined in memory.
func (r *DirectoryRepository) UniversitiesByCityDirect(ctx context.Context, cityID uuid.UUID) ([]models.University, error) {
	located, err := collectBuilder[models.University](ctx, r.db, "universities",
		psql.Select("id", "name", "city_id").From("universities").Where(squirrel.Eq{"city_id": cityID}))
	if err != nil {
		return nil, err
	}

	sql, args, err := psql.Select("DISTINCT university_id").
		From("profiles").
		Where(squirrel.Eq{"city_id": cityID}).
		Where(squirrel.NotEq{"university_id": nil}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "profiles")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, translate(err, "profiles")
	}
	if len(ids) == 0 {
		return located, nil
	}

	attended, err := collectBuilder[models.University](ctx, r.db, "universities",
		psql.Select("id", "name", "city_id").From("universities").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	return append(located, attended...), nil
}

func (r *DirectoryRepository) SchoolsByUniversityRPC(ctx context.Context, universityID uuid.UUID) ([]models.School, error) {
	return collect[models.School](ctx, r.db, "schools_by_university",
		`SELECT id, name, university_id FROM schools_by_university($1)`, universityID)
}

func (r *DirectoryRepository) SchoolsByUniversityDirect(ctx context.Context, universityID uuid.UUID) ([]models.School, error) {
	return collectBuilder[models.School](ctx, r.db, "schools",
		psql.Select("id", "name", "university_id").From("schools").Where(squirrel.Eq{"university_id": universityID}))
}

func (r *DirectoryRepository) DepartmentsBySchoolRPC(ctx context.Context, schoolID uuid.UUID) ([]models.Department, error) {
	return collect[models.Department](ctx, r.db, "departments_by_school",
		`SELECT id, name, school_id FROM departments_by_school($1)`, schoolID)
}

func (r *DirectoryRepository) DepartmentsBySchoolDirect(ctx context.Context, schoolID uuid.UUID) ([]models.Department, error) {
	return collectBuilder[models.Department](ctx, r.db, "departments",
		psql.Select("id", "name", "school_id").From("departments").Where(squirrel.Eq{"school_id": schoolID}))
}

type namedRow struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// Names maps ids of the given table to their names. Unknown ids are absent
// from the result.
func (r *DirectoryRepository) Names(ctx context.Context, table string, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := collectBuilder[namedRow](ctx, r.db, table,
		psql.Select("id", "name").From(table).Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}

// UniversityByEmailDomain finds the university owning the domain of email,
// walking up parent domains (student.kbtu.kz -> kbtu.kz).
func (r *DirectoryRepository) UniversityByEmailDomain(ctx context.Context, email string) (*uuid.UUID, error) {
	candidates := models.DomainCandidates(email)
	if len(candidates) == 0 {
		return nil, ErrNotFound
	}

	sql, args, err := psql.Select("university_id").
		From("university_domains").
		Where(squirrel.Eq{"domain": candidates}).
		OrderBy("length(domain) DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return nil, translate(err, "university_domains")
	}
	return &id, nil
}

// UpsertCity inserts the city if its name is new and returns its id.
func (r *DirectoryRepository) UpsertCity(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO cities (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, name).Scan(&id)
	return id, translate(err, "cities")
}

func (r *DirectoryRepository) CreateUniversity(ctx context.Context, name string, cityID *uuid.UUID, domains []string) (uuid.UUID, error) {
	var id uuid.UUID
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO universities (name, city_id) VALUES ($1, $2) RETURNING id`, name, cityID).Scan(&id); err != nil {
			return translate(err, "universities")
		}
		for _, d := range domains {
			if _, err := tx.Exec(ctx,
				`INSERT INTO university_domains (university_id, domain) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				id, strings.ToLower(d)); err != nil {
				return translate(err, "university_domains")
			}
		}
		return nil
	})
	return id, err
}

func (r *DirectoryRepository) CreateSchool(ctx context.Context, universityID uuid.UUID, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO schools (university_id, name) VALUES ($1, $2) RETURNING id`, universityID, name).Scan(&id)
	return id, translate(err, "schools")
}

func (r *DirectoryRepository) CreateDepartment(ctx context.Context, schoolID uuid.UUID, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO departments (school_id, name) VALUES ($1, $2) RETURNING id`, schoolID, name).Scan(&id)
	return id, translate(err, "departments")
}
