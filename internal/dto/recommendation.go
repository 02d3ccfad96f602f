package dto

type PeerRecommendation struct {
	Profile ProfileResponse `json:"profile"`
	Score   int             `json:"score"`
}

type TieredPeer struct {
	ProfileID string `json:"profile_id"`
	// MatchTier is the ordinal assigned by the database (1-4).
	MatchTier  int    `json:"match_tier"`
	MatchCount int    `json:"match_count"`
	Label      string `json:"label"`
	SameSchool bool   `json:"same_school"`
	SameUni    bool   `json:"same_university"`
	SameCity   bool   `json:"same_city"`
}

type TieredRecommendationsResponse struct {
	Language      string       `json:"language"`
	StrongMatches []TieredPeer `json:"strong_matches"`
	MediumMatches []TieredPeer `json:"medium_matches"`
	WeakMatches   []TieredPeer `json:"weak_matches"`
}
