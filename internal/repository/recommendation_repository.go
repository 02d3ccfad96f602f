package repository

import (
	"context"

	"campus-hub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type RecommendationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecommendationRepository(db *pgxpool.Pool, logger *zap.Logger) *RecommendationRepository {
	return &RecommendationRepository{
		db:     db,
		logger: logger,
	}
}

// PeerRecommendations calls get_peer_recommendations for the user. Rows come
// back ordered by match tier.
func (r *RecommendationRepository) PeerRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]models.TieredRecommendation, error) {
	recs, err := collect[models.TieredRecommendation](ctx, r.db, "get_peer_recommendations",
		`SELECT profile_id, match_tier, school_id, university_id, city_id
		 FROM get_peer_recommendations($1, $2)`, userID, limit)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Peer recommendations fetched",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(recs)),
	)
	return recs, nil
}
