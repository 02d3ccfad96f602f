package service

import (
	"context"
	"errors"
	"testing"

	"campus-hub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type fakeTiers []models.TieredRecommendation

func (f fakeTiers) PeerRecommendations(context.Context, uuid.UUID, int) ([]models.TieredRecommendation, error) {
	return f, nil
}

type fakeNames struct {
	byTable map[string]map[uuid.UUID]string
	err     error
}

func (f fakeNames) Names(_ context.Context, table string, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[uuid.UUID]string{}
	for _, id := range ids {
		if name, ok := f.byTable[table][id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func TestRecommendationService_Peers(t *testing.T) {
	uni, school, city := uuid.New(), uuid.New(), uuid.New()
	self := newProfile(func(p *models.Profile) {
		p.UniversityID, p.SchoolID, p.CityID = &uni, &school, &city
	})
	classmate := newProfile(func(p *models.Profile) {
		p.UniversityID, p.SchoolID = &uni, &school
	})
	neighbour := newProfile(func(p *models.Profile) {
		p.CityID = &city
		p.FollowersCount = 200
	})
	stranger := newProfile(func(p *models.Profile) {
		p.IsVerifiedStudent, p.IsPreStudent = false, true
	})
	profiles := newFakeProfiles(self, stranger, neighbour, classmate)

	svc := NewRecommendationService(profiles, fakeTiers{}, fakeNames{}, zap.NewNop())
	peers, err := svc.Peers(context.Background(), self.UserID, 10)
	require.NoError(t, err)
	require.Len(t, peers, 3)

	assert.Equal(t, classmate.ID.String(), peers[0].Profile.ID)
	assert.Equal(t, 6+36+42, peers[0].Score)
	assert.Equal(t, neighbour.ID.String(), peers[1].Profile.ID)
	assert.Equal(t, 6+6+20, peers[1].Score)
	assert.Equal(t, stranger.ID.String(), peers[2].Profile.ID)
	assert.Equal(t, 0, peers[2].Score)

	limited, err := svc.PeersForProfile(context.Background(), self.ID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, classmate.ID.String(), limited[0].Profile.ID)

	_, err = svc.Peers(context.Background(), uuid.New(), 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendationService_Tiered(t *testing.T) {
	uni, school, city, otherCity := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	self := newProfile(func(p *models.Profile) {
		p.UniversityID, p.SchoolID, p.CityID = &uni, &school, &city
	})
	profiles := newFakeProfiles(self)

	weak, medium, strong := uuid.New(), uuid.New(), uuid.New()
	rows := fakeTiers{
		{ProfileID: weak, MatchTier: 4, CityID: &otherCity},
		{ProfileID: medium, MatchTier: 2, UniversityID: &uni},
		{ProfileID: strong, MatchTier: 1, SchoolID: &school, UniversityID: &uni, CityID: &city},
	}
	names := fakeNames{byTable: map[string]map[uuid.UUID]string{
		"universities": {uni: "KBTU"},
		"cities":       {city: "Almaty", otherCity: "Astana"},
		"schools":      {school: "SITE"},
	}}

	svc := NewRecommendationService(profiles, rows, names, zap.NewNop())
	resp, err := svc.Tiered(context.Background(), self.UserID, language.English, 10)
	require.NoError(t, err)

	assert.Equal(t, "en", resp.Language)
	require.Len(t, resp.StrongMatches, 1)
	assert.Equal(t, strong.String(), resp.StrongMatches[0].ProfileID)
	assert.Equal(t, 3, resp.StrongMatches[0].MatchCount)
	assert.Equal(t, 1, resp.StrongMatches[0].MatchTier)
	assert.Equal(t, "Same school at KBTU in Almaty", resp.StrongMatches[0].Label)

	require.Len(t, resp.MediumMatches, 1)
	assert.Equal(t, "Also studies at KBTU", resp.MediumMatches[0].Label)
	assert.True(t, resp.MediumMatches[0].SameUni)

	require.Len(t, resp.WeakMatches, 1)
	assert.Equal(t, 4, resp.WeakMatches[0].MatchTier, "database tier is reported unchanged")
	assert.Equal(t, 0, resp.WeakMatches[0].MatchCount)
	assert.Equal(t, "Suggested for you", resp.WeakMatches[0].Label)

	ru, err := svc.Tiered(context.Background(), self.UserID, language.Russian, 10)
	require.NoError(t, err)
	assert.Equal(t, "Рекомендуем", ru.WeakMatches[0].Label)
}

func TestRecommendationService_TieredNameFailure(t *testing.T) {
	uni := uuid.New()
	self := newProfile(nil)
	rows := fakeTiers{{ProfileID: uuid.New(), MatchTier: 2, UniversityID: &uni}}
	svc := NewRecommendationService(newFakeProfiles(self), rows,
		fakeNames{err: errors.New("connection reset")}, zap.NewNop())

	_, err := svc.Tiered(context.Background(), self.UserID, language.English, 10)
	assert.Error(t, err)
}
