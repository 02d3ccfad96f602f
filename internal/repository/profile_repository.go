package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-hub/internal/models"
	"campus-hub/internal/recommend"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var profileColumns = []string{
	"id", "user_id", "full_name", "bio", "university_id", "school_id", "department_id", "city_id",
	"study_year", "is_verified_student", "is_pre_student", "followers_count", "created_at", "updated_at",
}

// ProfileFilter narrows directory searches. Zero values are ignored.
type ProfileFilter struct {
	Query        string
	UniversityID *uuid.UUID
	CityID       *uuid.UUID
	Limit        int
	Offset       int
}

type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

func insertProfile(p *models.Profile) squirrel.InsertBuilder {
	return psql.Insert("profiles").
		Columns(profileColumns...).
		Values(p.ID, p.UserID, p.FullName, p.Bio, p.UniversityID, p.SchoolID, p.DepartmentID, p.CityID,
			p.StudyYear, p.IsVerifiedStudent, p.IsPreStudent, p.FollowersCount, p.CreatedAt, p.UpdatedAt)
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Bio, &p.UniversityID, &p.SchoolID, &p.DepartmentID, &p.CityID,
		&p.StudyYear, &p.IsVerifiedStudent, &p.IsPreStudent, &p.FollowersCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

func (r *ProfileRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Profile, error) {
	sql, args, err := psql.Select(profileColumns...).From("profiles").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err, "profiles")
	}
	return p, nil
}

// UpdateAcademic stores the onboarding fields of a profile.
func (r *ProfileRepository) UpdateAcademic(ctx context.Context, p *models.Profile) error {
	sql, args, err := psql.Update("profiles").
		Set("full_name", p.FullName).
		Set("bio", p.Bio).
		Set("university_id", p.UniversityID).
		Set("school_id", p.SchoolID).
		Set("department_id", p.DepartmentID).
		Set("city_id", p.CityID).
		Set("study_year", p.StudyYear).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translate(err, "profiles")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Search lists verified and pre-student profiles matching the filter,
// most followed first.
func (r *ProfileRepository) Search(ctx context.Context, f ProfileFilter) ([]*models.Profile, error) {
	q := psql.Select(profileColumns...).From("profiles").OrderBy("followers_count DESC", "full_name")
	if f.Query != "" {
		q = q.Where(squirrel.ILike{"full_name": "%" + f.Query + "%"})
	}
	if f.UniversityID != nil {
		q = q.Where(squirrel.Eq{"university_id": *f.UniversityID})
	}
	if f.CityID != nil {
		q = q.Where(squirrel.Eq{"city_id": *f.CityID})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return r.query(ctx, q)
}

// Candidates returns profiles sharing at least one academic or location
// attribute with self, excluding self. The pool is ordered by the same match
// weights the scorer uses so a small limit keeps the closest peers rather
// than the most followed ones. When self has none of the attributes set the
// most followed profiles are returned instead.
func (r *ProfileRepository) Candidates(ctx context.Context, self *models.Profile, limit int) ([]*models.Profile, error) {
	return r.query(ctx, candidatesQuery(self, limit))
}

func candidatesQuery(self *models.Profile, limit int) squirrel.SelectBuilder {
	var (
		shared  squirrel.Or
		weights []string
		args    []any
	)
	for _, attr := range []struct {
		column string
		id     *uuid.UUID
		weight int
	}{
		{"department_id", self.DepartmentID, recommend.DepartmentMatch},
		{"school_id", self.SchoolID, recommend.SchoolMatch},
		{"university_id", self.UniversityID, recommend.UniversityMatch},
		{"city_id", self.CityID, recommend.CityMatch},
	} {
		if attr.id == nil {
			continue
		}
		shared = append(shared, squirrel.Eq{attr.column: *attr.id})
		weights = append(weights, fmt.Sprintf("CASE WHEN %s = ? THEN %d ELSE 0 END", attr.column, attr.weight))
		args = append(args, attr.id.String())
	}
	if self.StudyYear != nil {
		weights = append(weights, fmt.Sprintf("CASE WHEN study_year = ? THEN %d ELSE 0 END", recommend.StudyYearMatch))
		args = append(args, *self.StudyYear)
	}

	q := psql.Select(profileColumns...).
		From("profiles").
		Where(squirrel.NotEq{"id": self.ID})
	if len(shared) > 0 {
		q = q.Where(shared).
			OrderByClause("("+strings.Join(weights, " + ")+") DESC", args...)
	}
	return q.OrderBy("followers_count DESC").Limit(uint64(limit))
}

// GetByIDs loads the given profiles in no particular order.
func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx, psql.Select(profileColumns...).From("profiles").Where(squirrel.Eq{"id": ids}))
}

func (r *ProfileRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Profile, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "profiles")
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Follow records that follower follows followee and bumps the counter.
// Following twice is a no-op.
func (r *ProfileRepository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			followerID, followeeID)
		if err != nil {
			return translate(err, "follows")
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		_, err = tx.Exec(ctx,
			`UPDATE profiles SET followers_count = followers_count + 1 WHERE id = $1`, followeeID)
		return translate(err, "profiles")
	})
}

// Unfollow is the inverse of Follow.
func (r *ProfileRepository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`, followerID, followeeID)
		if err != nil {
			return translate(err, "follows")
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		_, err = tx.Exec(ctx,
			`UPDATE profiles SET followers_count = GREATEST(followers_count - 1, 0) WHERE id = $1`, followeeID)
		return translate(err, "profiles")
	})
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// MarkVerified turns a pre-student into a verified student of universityID.
func (r *ProfileRepository) MarkVerified(ctx context.Context, profileID, universityID uuid.UUID) error {
	sql, args, err := psql.Update("profiles").
		Set("is_verified_student", true).
		Set("is_pre_student", false).
		Set("university_id", universityID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": profileID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return translate(err, "profiles")
}
