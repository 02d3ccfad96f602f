// Package recommend scores and groups peer recommendations.
//
// Everything here works on already-fetched, in-memory records and performs no
// I/O, so callers resolve candidate rows and display names before calling in.
package recommend

import "sort"

// Point values for the additive recommendation score.
const (
	VerifiedBonus   = 6
	PopularityCap   = 6
	FollowersPerPt  = 20
	UniversityMatch = 36
	SchoolMatch     = 42
	DepartmentMatch = 56
	CityMatch       = 20
	StudyYearMatch  = 10
)

// Context describes the academic and location attributes of the user the
// recommendations are computed for. Nil fields never match.
type Context struct {
	UniversityID *string
	SchoolID     *string
	DepartmentID *string
	CityID       *string
	StudyYear    *int
}

// Candidate is a peer profile as returned by the profile query.
type Candidate struct {
	ProfileID         string
	UniversityID      *string
	SchoolID          *string
	DepartmentID      *string
	CityID            *string
	StudyYear         *int
	IsVerifiedStudent *bool
	IsPreStudent      *bool
	FollowersCount    *int
}

// IsVerifiedMember reports whether c is a verified student who is not a
// pre-student.
func IsVerifiedMember(c Candidate) bool {
	return isTrue(c.IsVerifiedStudent) && !isTrue(c.IsPreStudent)
}

// PopularityBonus returns one point per 20 followers, capped at 6.
func PopularityBonus(followers *int) int {
	n := intOrZero(followers)
	if n <= 0 {
		return 0
	}
	return min(PopularityCap, n/FollowersPerPt)
}

// Score returns the affinity between c and the user described by x.
func Score(c Candidate, x Context) int {
	score := 0
	if IsVerifiedMember(c) {
		score += VerifiedBonus
	}
	score += PopularityBonus(c.FollowersCount)

	if sameID(x.UniversityID, c.UniversityID) {
		score += UniversityMatch
	}
	if sameID(x.SchoolID, c.SchoolID) {
		score += SchoolMatch
	}
	if sameID(x.DepartmentID, c.DepartmentID) {
		score += DepartmentMatch
	}
	if sameID(x.CityID, c.CityID) {
		score += CityMatch
	}
	if x.StudyYear != nil && c.StudyYear != nil && *x.StudyYear == *c.StudyYear {
		score += StudyYearMatch
	}
	return score
}

// Scored pairs a candidate with its computed score.
type Scored struct {
	Candidate Candidate
	Score     int
}

// Rank scores every candidate and orders the result by recommendation
// precedence. The input slice is not modified.
func Rank(candidates []Candidate, x Context) []Scored {
	ranked := make([]Scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = Scored{Candidate: c, Score: Score(c, x)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})
	return ranked
}

// SortByRecommendation returns a new slice ordered by descending score,
// verified members first on ties, then by descending follower count.
func SortByRecommendation(candidates []Candidate, x Context) []Candidate {
	ranked := Rank(candidates, x)
	out := make([]Candidate, len(ranked))
	for i, r := range ranked {
		out[i] = r.Candidate
	}
	return out
}

func less(a, b Scored) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	av, bv := IsVerifiedMember(a.Candidate), IsVerifiedMember(b.Candidate)
	if av != bv {
		return av
	}
	return intOrZero(a.Candidate.FollowersCount) > intOrZero(b.Candidate.FollowersCount)
}
