package repository

import (
	"context"

	"campus-hub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var listingColumns = []string{
	"id", "seller_id", "title", "description", "price", "currency", "category", "city_id", "created_at", "updated_at",
}

type ListingFilter struct {
	Category models.ListingCategory
	CityID   *uuid.UUID
	SellerID *uuid.UUID
	Query    string
	Limit    int
	Offset   int
}

type ListingRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewListingRepository(db *pgxpool.Pool, logger *zap.Logger) *ListingRepository {
	return &ListingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ListingRepository) Create(ctx context.Context, l *models.Listing) error {
	sql, args, err := psql.Insert("listings").
		Columns(listingColumns...).
		Values(l.ID, l.SellerID, l.Title, l.Description, l.Price, l.Currency, l.Category, l.CityID, l.CreatedAt, l.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return translate(err, "listings")
}

func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listings, err := r.query(ctx, psql.Select(listingColumns...).From("listings").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, ErrNotFound
	}
	return listings[0], nil
}

// GetByIDs keeps the order of ids and skips listings that no longer exist.
func (r *ListingRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := r.query(ctx, psql.Select(listingColumns...).From("listings").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Listing, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	ordered := make([]*models.Listing, 0, len(found))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

func (r *ListingRepository) List(ctx context.Context, f ListingFilter) ([]*models.Listing, error) {
	q := psql.Select(listingColumns...).From("listings").OrderBy("created_at DESC")
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"category": f.Category})
	}
	if f.CityID != nil {
		q = q.Where(squirrel.Eq{"city_id": *f.CityID})
	}
	if f.SellerID != nil {
		q = q.Where(squirrel.Eq{"seller_id": *f.SellerID})
	}
	if f.Query != "" {
		q = q.Where(squirrel.Or{
			squirrel.ILike{"title": "%" + f.Query + "%"},
			squirrel.ILike{"description": "%" + f.Query + "%"},
		})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return r.query(ctx, q)
}

// Delete removes a listing owned by sellerID.
func (r *ListingRepository) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	sql, args, err := psql.Delete("listings").
		Where(squirrel.Eq{"id": id, "seller_id": sellerID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translate(err, "listings")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ListingRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Listing, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "listings")
	}
	listings, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Listing])
	if err != nil {
		return nil, translate(err, "listings")
	}
	return listings, nil
}
