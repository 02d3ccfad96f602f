package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SavedRepository stores saved listings in the saved_items table.
type SavedRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSavedRepository(db *pgxpool.Pool, logger *zap.Logger) *SavedRepository {
	return &SavedRepository{
		db:     db,
		logger: logger,
	}
}

// TableExists reports whether saved_items is present in the search path.
func (r *SavedRepository) TableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT to_regclass('saved_items') IS NOT NULL`).Scan(&exists)
	return exists, translate(err, "saved_items")
}

func (r *SavedRepository) Save(ctx context.Context, userID, listingID uuid.UUID) error {
	sql, args, err := psql.Insert("saved_items").
		Columns("user_id", "listing_id").
		Values(userID, listingID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return translate(err, "saved_items")
}

func (r *SavedRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	sql, args, err := psql.Delete("saved_items").
		Where(squirrel.Eq{"user_id": userID, "listing_id": listingID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return translate(err, "saved_items")
}

func (r *SavedRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	sql, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("saved_items").
		Where(squirrel.Eq{"user_id": userID, "listing_id": listingID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}
	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	return exists, translate(err, "saved_items")
}

// ListingIDs returns the user's saved listings, newest first.
func (r *SavedRepository) ListingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	sql, args, err := psql.Select("listing_id").
		From("saved_items").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "saved_items")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	return ids, translate(err, "saved_items")
}
