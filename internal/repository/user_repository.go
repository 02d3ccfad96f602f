package repository

import (
	"context"
	"time"

	"campus-hub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// CreateWithProfile inserts the account and its profile in one transaction.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		sql, args, err := psql.Insert("users").
			Columns("id", "email", "password", "created_at", "updated_at").
			Values(user.ID, user.Email, user.Password, user.CreatedAt, user.UpdatedAt).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return translate(err, "users")
		}

		sql, args, err = insertProfile(profile).ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return translate(err, "profiles")
	})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sql, args, err := psql.Select("id", "email", "password", "created_at", "updated_at").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err, "users")
	}
	return &user, nil
}

// ExpiredPreStudents returns the ids of pre-student accounts created before
// cutoff.
func (r *UserRepository) ExpiredPreStudents(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	sql, args, err := psql.Select("u.id").
		From("users u").
		Join("profiles p ON p.user_id = u.id").
		Where(squirrel.Eq{"p.is_pre_student": true}).
		Where(squirrel.Lt{"u.created_at": cutoff}).
		OrderBy("u.created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "users")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	return ids, translate(err, "users")
}

// DeleteByIDs removes accounts; profiles and owned rows cascade.
func (r *UserRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	sql, args, err := psql.Delete("users").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, translate(err, "users")
	}
	return tag.RowsAffected(), nil
}
