package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }
func num(n int) *int       { return &n }
func flag(b bool) *bool    { return &b }

func TestPopularityBonus(t *testing.T) {
	cases := []struct {
		followers int
		want      int
	}{
		{0, 0},
		{19, 0},
		{20, 1},
		{119, 5},
		{120, 6},
		{1000, 6},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PopularityBonus(num(tc.followers)), "followers=%d", tc.followers)
	}
	assert.Equal(t, 0, PopularityBonus(nil))
	assert.Equal(t, 0, PopularityBonus(num(-40)))
}

func TestIsVerifiedMember(t *testing.T) {
	assert.True(t, IsVerifiedMember(Candidate{IsVerifiedStudent: flag(true)}))
	assert.True(t, IsVerifiedMember(Candidate{IsVerifiedStudent: flag(true), IsPreStudent: flag(false)}))
	assert.False(t, IsVerifiedMember(Candidate{IsVerifiedStudent: flag(true), IsPreStudent: flag(true)}))
	assert.False(t, IsVerifiedMember(Candidate{IsVerifiedStudent: flag(false)}))
	assert.False(t, IsVerifiedMember(Candidate{}))
}

func TestScore(t *testing.T) {
	t.Run("city and study year with verified and popular candidate", func(t *testing.T) {
		x := Context{CityID: str("C9"), StudyYear: num(3)}
		c := Candidate{
			CityID:            str("C9"),
			StudyYear:         num(3),
			IsVerifiedStudent: flag(true),
			IsPreStudent:      flag(false),
			FollowersCount:    num(45),
		}
		assert.Equal(t, 38, Score(c, x))
	})

	t.Run("every attribute matches", func(t *testing.T) {
		x := Context{UniversityID: str("U"), SchoolID: str("S"), DepartmentID: str("D"), CityID: str("C"), StudyYear: num(2)}
		c := Candidate{UniversityID: str("U"), SchoolID: str("S"), DepartmentID: str("D"), CityID: str("C"), StudyYear: num(2)}
		assert.Equal(t, 36+42+56+20+10, Score(c, x))
	})

	t.Run("nil context fields never match", func(t *testing.T) {
		c := Candidate{UniversityID: str("U"), SchoolID: str("S"), DepartmentID: str("D"), CityID: str("C"), StudyYear: num(1)}
		assert.Equal(t, 0, Score(c, Context{}))
	})

	t.Run("candidate without identifiers scores only activity", func(t *testing.T) {
		x := Context{UniversityID: str("U"), SchoolID: str("S"), DepartmentID: str("D"), CityID: str("C"), StudyYear: num(1)}
		c := Candidate{IsVerifiedStudent: flag(true), FollowersCount: num(60)}
		assert.Equal(t, 6+3, Score(c, x))
	})

	t.Run("study year zero is a valid match", func(t *testing.T) {
		assert.Equal(t, StudyYearMatch, Score(Candidate{StudyYear: num(0)}, Context{StudyYear: num(0)}))
	})

	t.Run("pre-student gets no verified bonus", func(t *testing.T) {
		c := Candidate{IsVerifiedStudent: flag(true), IsPreStudent: flag(true)}
		assert.Equal(t, 0, Score(c, Context{}))
	})

	t.Run("is idempotent", func(t *testing.T) {
		x := Context{SchoolID: str("S"), CityID: str("C")}
		c := Candidate{SchoolID: str("S"), CityID: str("X"), FollowersCount: num(77)}
		assert.Equal(t, Score(c, x), Score(c, x))
	})
}

func TestScoreMonotonic(t *testing.T) {
	x := Context{UniversityID: str("U"), SchoolID: str("S"), DepartmentID: str("D"), CityID: str("C"), StudyYear: num(4)}
	base := Candidate{UniversityID: str("u"), SchoolID: str("s"), DepartmentID: str("d"), CityID: str("c"), StudyYear: num(1)}
	before := Score(base, x)

	flips := map[string]func(c *Candidate){
		"university": func(c *Candidate) { c.UniversityID = str("U") },
		"school":     func(c *Candidate) { c.SchoolID = str("S") },
		"department": func(c *Candidate) { c.DepartmentID = str("D") },
		"city":       func(c *Candidate) { c.CityID = str("C") },
		"study year": func(c *Candidate) { c.StudyYear = num(4) },
		"verified":   func(c *Candidate) { c.IsVerifiedStudent = flag(true) },
	}
	for name, flip := range flips {
		t.Run(name, func(t *testing.T) {
			c := base
			flip(&c)
			assert.Greater(t, Score(c, x), before)
		})
	}
}

func TestSortByRecommendation(t *testing.T) {
	x := Context{SchoolID: str("S"), CityID: str("C")}

	t.Run("orders by score", func(t *testing.T) {
		in := []Candidate{
			{ProfileID: "city", CityID: str("C")},
			{ProfileID: "none"},
			{ProfileID: "school", SchoolID: str("S")},
		}
		out := SortByRecommendation(in, x)
		require.Len(t, out, 3)
		assert.Equal(t, []string{"school", "city", "none"}, ids(out))
		assert.Equal(t, "city", in[0].ProfileID, "input must not be reordered")
	})

	t.Run("verified member wins a score tie", func(t *testing.T) {
		// 6 verified points vs 6 popularity points.
		in := []Candidate{
			{ProfileID: "popular", FollowersCount: num(120)},
			{ProfileID: "verified", IsVerifiedStudent: flag(true)},
		}
		assert.Equal(t, []string{"verified", "popular"}, ids(SortByRecommendation(in, x)))
	})

	t.Run("followers break the remaining tie", func(t *testing.T) {
		in := []Candidate{
			{ProfileID: "ten", CityID: str("C"), FollowersCount: num(10)},
			{ProfileID: "nineteen", CityID: str("C"), FollowersCount: num(19)},
			{ProfileID: "nil", CityID: str("C")},
		}
		assert.Equal(t, []string{"nineteen", "ten", "nil"}, ids(SortByRecommendation(in, x)))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SortByRecommendation(nil, x))
	})
}

func TestRankCarriesScores(t *testing.T) {
	x := Context{CityID: str("C")}
	ranked := Rank([]Candidate{{ProfileID: "a"}, {ProfileID: "b", CityID: str("C")}}, x)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].Candidate.ProfileID)
	assert.Equal(t, CityMatch, ranked[0].Score)
	assert.Equal(t, 0, ranked[1].Score)
}

func ids(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ProfileID
	}
	return out
}
