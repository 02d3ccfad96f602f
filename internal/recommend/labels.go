package recommend

import (
	"strings"

	"golang.org/x/text/language"
)

// Labels is the set of match descriptions for one language. Templates may
// reference {school}, {university} and {city}.
type Labels struct {
	SchoolUniversityCity string
	SchoolUniversity     string
	SchoolCity           string
	UniversityCity       string
	School               string
	University           string
	City                 string
	Suggestion           string
}

// Names maps identifiers to display names. Missing entries render as empty.
type Names struct {
	Schools      map[string]string
	Universities map[string]string
	Cities       map[string]string
}

// ResolvedNames are the display names for a single candidate.
type ResolvedNames struct {
	School     string
	University string
	City       string
}

// For resolves the names referenced by a tiered row.
func (n Names) For(t TieredCandidate) ResolvedNames {
	return ResolvedNames{
		School:     lookupName(n.Schools, t.SchoolID),
		University: lookupName(n.Universities, t.UniversityID),
		City:       lookupName(n.Cities, t.CityID),
	}
}

func lookupName(m map[string]string, id *string) string {
	if id == nil || m == nil {
		return ""
	}
	return m[*id]
}

// MatchLabel picks the description for p. Combinations are checked from the
// most to the least specific and the first one that holds wins.
func MatchLabel(p Predicates, labels Labels, names ResolvedNames) string {
	var tmpl string
	switch {
	case p.School && p.University && p.City:
		tmpl = labels.SchoolUniversityCity
	case p.School && p.University:
		tmpl = labels.SchoolUniversity
	case p.School && p.City:
		tmpl = labels.SchoolCity
	case p.University && p.City:
		tmpl = labels.UniversityCity
	case p.School:
		tmpl = labels.School
	case p.University:
		tmpl = labels.University
	case p.City:
		tmpl = labels.City
	default:
		tmpl = labels.Suggestion
	}
	return render(tmpl, names)
}

func render(tmpl string, names ResolvedNames) string {
	r := strings.NewReplacer(
		"{school}", names.School,
		"{university}", names.University,
		"{city}", names.City,
	)
	return strings.TrimSpace(r.Replace(tmpl))
}

var (
	englishLabels = Labels{
		SchoolUniversityCity: "Same school at {university} in {city}",
		SchoolUniversity:     "Same school at {university}",
		SchoolCity:           "Same school in {city}",
		UniversityCity:       "Same university in {city}",
		School:               "Also studies at {school}",
		University:           "Also studies at {university}",
		City:                 "Lives in {city}",
		Suggestion:           "Suggested for you",
	}
	russianLabels = Labels{
		SchoolUniversityCity: "Тот же факультет в {university}, {city}",
		SchoolUniversity:     "Тот же факультет в {university}",
		SchoolCity:           "Тот же факультет, {city}",
		UniversityCity:       "Тот же университет, {city}",
		School:               "Тоже учится в {school}",
		University:           "Тоже учится в {university}",
		City:                 "Живёт в городе {city}",
		Suggestion:           "Рекомендуем",
	}
	kazakhLabels = Labels{
		SchoolUniversityCity: "{university} ішіндегі бір факультет, {city}",
		SchoolUniversity:     "{university} ішіндегі бір факультет",
		SchoolCity:           "Бір факультет, {city}",
		UniversityCity:       "Бір университет, {city}",
		School:               "{school} оқиды",
		University:           "{university} оқиды",
		City:                 "{city} қаласында тұрады",
		Suggestion:           "Сізге ұсынамыз",
	}
)

// Supported lists the languages labels exist for, default first.
var Supported = []language.Tag{language.English, language.Russian, language.Kazakh}

var matcher = language.NewMatcher(Supported)

// LabelsFor returns the label set for tag, falling back to English.
func LabelsFor(tag language.Tag) Labels {
	base, _ := tag.Base()
	switch base.String() {
	case "ru":
		return russianLabels
	case "kk":
		return kazakhLabels
	default:
		return englishLabels
	}
}

// MatchLanguage negotiates a supported language from an Accept-Language
// header value or a bare language code. fallback is used when nothing parses.
func MatchLanguage(accept string, fallback language.Tag) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Supported[idx]
}
