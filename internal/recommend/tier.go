package recommend

import "sort"

// MatchTier is the ordinal assigned by the peer recommendation query in the
// database. It is carried through as-is and is not derived from the local
// match count used by Classify.
type MatchTier int

const (
	TierUnranked                     MatchTier = 0
	TierSameSchool                   MatchTier = 1
	TierSameUniversity               MatchTier = 2
	TierSameSchoolAcrossUniversities MatchTier = 3
	TierSameCity                     MatchTier = 4
)

// Valid reports whether t is one of the known tiers.
func (t MatchTier) Valid() bool {
	return t >= TierUnranked && t <= TierSameCity
}

func (t MatchTier) String() string {
	switch t {
	case TierSameSchool:
		return "same_school"
	case TierSameUniversity:
		return "same_university"
	case TierSameSchoolAcrossUniversities:
		return "same_school_across_universities"
	case TierSameCity:
		return "same_city"
	default:
		return "unranked"
	}
}

// TieredCandidate is one row of the tiered recommendation query.
type TieredCandidate struct {
	ProfileID    string
	Tier         MatchTier
	SchoolID     *string
	UniversityID *string
	CityID       *string
}

// Self holds the requesting user's own identifiers.
type Self struct {
	SchoolID     *string
	UniversityID *string
	CityID       *string
}

// Predicates are the three match flags evaluated for a candidate.
type Predicates struct {
	School     bool
	University bool
	City       bool
}

// Count returns the number of true predicates.
func (p Predicates) Count() int {
	n := 0
	for _, ok := range []bool{p.School, p.University, p.City} {
		if ok {
			n++
		}
	}
	return n
}

// Evaluate compares a candidate's identifiers against the user's.
func Evaluate(t TieredCandidate, self Self) Predicates {
	return Predicates{
		School:     sameID(self.SchoolID, t.SchoolID),
		University: sameID(self.UniversityID, t.UniversityID),
		City:       sameID(self.CityID, t.CityID),
	}
}

// Classified is a tiered candidate annotated with its local match data.
type Classified struct {
	TieredCandidate
	Predicates Predicates
	MatchCount int
	Label      string
}

// Buckets groups classified candidates by match count.
type Buckets struct {
	Strong []Classified
	Medium []Classified
	Weak   []Classified
}

// Classify labels every candidate and groups them by how many of school,
// university and city they share with self. Strong matches (two or more) are
// ordered by match count, ties keeping arrival order; the other buckets keep
// arrival order.
func Classify(rows []TieredCandidate, self Self, labels Labels, names Names) Buckets {
	var b Buckets
	for _, row := range rows {
		p := Evaluate(row, self)
		c := Classified{
			TieredCandidate: row,
			Predicates:      p,
			MatchCount:      p.Count(),
			Label:           MatchLabel(p, labels, names.For(row)),
		}
		switch {
		case c.MatchCount >= 2:
			b.Strong = append(b.Strong, c)
		case c.MatchCount == 1:
			b.Medium = append(b.Medium, c)
		default:
			b.Weak = append(b.Weak, c)
		}
	}
	sort.SliceStable(b.Strong, func(i, j int) bool {
		return b.Strong[i].MatchCount > b.Strong[j].MatchCount
	})
	return b
}
