package models

import "github.com/google/uuid"

// TieredRecommendation is one row of get_peer_recommendations. MatchTier is
// assigned by the database function (1-4).
type TieredRecommendation struct {
	ProfileID    uuid.UUID  `db:"profile_id"`
	MatchTier    int        `db:"match_tier"`
	SchoolID     *uuid.UUID `db:"school_id"`
	UniversityID *uuid.UUID `db:"university_id"`
	CityID       *uuid.UUID `db:"city_id"`
}
