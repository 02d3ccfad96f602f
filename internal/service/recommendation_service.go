package service

import (
	"context"

	"campus-hub/internal/dto"
	"campus-hub/internal/metrics"
	"campus-hub/internal/models"
	"campus-hub/internal/recommend"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

const (
	defaultPeerLimit = 20
	maxPeerLimit     = 50
	// candidatePoolFactor widens the candidate query so scoring has room to
	// reorder beyond the database's follower ordering.
	candidatePoolFactor = 5
)

type CandidateStore interface {
	ProfileReader
	Candidates(ctx context.Context, self *models.Profile, limit int) ([]*models.Profile, error)
}

type TierStore interface {
	PeerRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]models.TieredRecommendation, error)
}

type NameStore interface {
	Names(ctx context.Context, table string, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type RecommendationService struct {
	profiles CandidateStore
	tiers    TierStore
	names    NameStore
	logger   *zap.Logger
}

func NewRecommendationService(profiles CandidateStore, tiers TierStore, names NameStore, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		profiles: profiles,
		tiers:    tiers,
		names:    names,
		logger:   logger,
	}
}

// Peers returns scored peer suggestions for the user's profile.
func (s *RecommendationService) Peers(ctx context.Context, userID uuid.UUID, limit int) ([]dto.PeerRecommendation, error) {
	self, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return s.peersFor(ctx, self, limit)
}

// PeersForProfile is Peers keyed by profile id.
func (s *RecommendationService) PeersForProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]dto.PeerRecommendation, error) {
	self, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, notFound(err)
	}
	return s.peersFor(ctx, self, limit)
}

func (s *RecommendationService) peersFor(ctx context.Context, self *models.Profile, limit int) ([]dto.PeerRecommendation, error) {
	limit = clampPeerLimit(limit)
	profiles, err := s.profiles.Candidates(ctx, self, limit*candidatePoolFactor)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Profile, len(profiles))
	candidates := make([]recommend.Candidate, 0, len(profiles))
	for _, p := range profiles {
		if p.ID == self.ID {
			continue
		}
		byID[p.ID.String()] = p
		candidates = append(candidates, toCandidate(p))
	}

	ranked := recommend.Rank(candidates, toContext(self))
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]dto.PeerRecommendation, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, dto.PeerRecommendation{
			Profile: toProfileResponse(byID[r.Candidate.ProfileID]),
			Score:   r.Score,
		})
	}

	metrics.RecommendationsServed.WithLabelValues("scored").Add(float64(len(out)))
	s.logger.Debug("Scored peers computed",
		zap.String("profile_id", self.ID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(out)),
	)
	return out, nil
}

// Tiered returns the database-tiered suggestions grouped by how many of
// school, university and city they share with the user, labelled in lang.
// The database tier is reported as-is next to the local grouping.
func (s *RecommendationService) Tiered(ctx context.Context, userID uuid.UUID, lang language.Tag, limit int) (*dto.TieredRecommendationsResponse, error) {
	self, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	rows, err := s.tiers.PeerRecommendations(ctx, userID, clampPeerLimit(limit))
	if err != nil {
		return nil, err
	}

	names, err := s.resolveNames(ctx, rows)
	if err != nil {
		return nil, err
	}

	tiered := make([]recommend.TieredCandidate, len(rows))
	for i, r := range rows {
		tiered[i] = recommend.TieredCandidate{
			ProfileID:    r.ProfileID.String(),
			Tier:         recommend.MatchTier(r.MatchTier),
			SchoolID:     idString(r.SchoolID),
			UniversityID: idString(r.UniversityID),
			CityID:       idString(r.CityID),
		}
	}

	buckets := recommend.Classify(tiered, recommend.Self{
		SchoolID:     idString(self.SchoolID),
		UniversityID: idString(self.UniversityID),
		CityID:       idString(self.CityID),
	}, recommend.LabelsFor(lang), names)

	metrics.RecommendationsServed.WithLabelValues("tiered").Add(float64(len(rows)))
	return &dto.TieredRecommendationsResponse{
		Language:      lang.String(),
		StrongMatches: toTieredPeers(buckets.Strong),
		MediumMatches: toTieredPeers(buckets.Medium),
		WeakMatches:   toTieredPeers(buckets.Weak),
	}, nil
}

// resolveNames loads school, university and city names referenced by rows
// in parallel.
func (s *RecommendationService) resolveNames(ctx context.Context, rows []models.TieredRecommendation) (recommend.Names, error) {
	var schools, universities, cities []uuid.UUID
	for _, r := range rows {
		schools = appendID(schools, r.SchoolID)
		universities = appendID(universities, r.UniversityID)
		cities = appendID(cities, r.CityID)
	}

	var names recommend.Names
	g, gctx := errgroup.WithContext(ctx)
	for _, q := range []struct {
		table string
		ids   []uuid.UUID
		dst   *map[string]string
	}{
		{"schools", schools, &names.Schools},
		{"universities", universities, &names.Universities},
		{"cities", cities, &names.Cities},
	} {
		q := q
		g.Go(func() error {
			m, err := s.names.Names(gctx, q.table, q.ids)
			if err != nil {
				return err
			}
			*q.dst = make(map[string]string, len(m))
			for id, name := range m {
				(*q.dst)[id.String()] = name
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return recommend.Names{}, err
	}
	return names, nil
}

func appendID(ids []uuid.UUID, id *uuid.UUID) []uuid.UUID {
	if id == nil {
		return ids
	}
	for _, existing := range ids {
		if existing == *id {
			return ids
		}
	}
	return append(ids, *id)
}

func toCandidate(p *models.Profile) recommend.Candidate {
	verified, pre, followers := p.IsVerifiedStudent, p.IsPreStudent, p.FollowersCount
	return recommend.Candidate{
		ProfileID:         p.ID.String(),
		UniversityID:      idString(p.UniversityID),
		SchoolID:          idString(p.SchoolID),
		DepartmentID:      idString(p.DepartmentID),
		CityID:            idString(p.CityID),
		StudyYear:         p.StudyYear,
		IsVerifiedStudent: &verified,
		IsPreStudent:      &pre,
		FollowersCount:    &followers,
	}
}

func toContext(p *models.Profile) recommend.Context {
	return recommend.Context{
		UniversityID: idString(p.UniversityID),
		SchoolID:     idString(p.SchoolID),
		DepartmentID: idString(p.DepartmentID),
		CityID:       idString(p.CityID),
		StudyYear:    p.StudyYear,
	}
}

func toTieredPeers(cs []recommend.Classified) []dto.TieredPeer {
	out := make([]dto.TieredPeer, 0, len(cs))
	for _, c := range cs {
		out = append(out, dto.TieredPeer{
			ProfileID:  c.ProfileID,
			MatchTier:  int(c.Tier),
			MatchCount: c.MatchCount,
			Label:      c.Label,
			SameSchool: c.Predicates.School,
			SameUni:    c.Predicates.University,
			SameCity:   c.Predicates.City,
		})
	}
	return out
}

func clampPeerLimit(limit int) int {
	if limit <= 0 {
		return defaultPeerLimit
	}
	if limit > maxPeerLimit {
		return maxPeerLimit
	}
	return limit
}
