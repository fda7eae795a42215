package recommend

import (
	"fmt"
	"strings"

	"github.com/dishahq/disha/internal/model"
)

// WhyTags derives the short badges shown on a recommendation card.
// Tags come out in a fixed order so identical inputs produce identical
// output.
func WhyTags(rec *model.Recommendation, profile *model.UserProfile, p Params) []string {
	tags := make([]string, 0, 4)
	s := rec.Scores

	switch {
	case s.SemanticScore >= p.SemanticHighThreshold:
		tags = append(tags, "excellent profile fit")
	case s.SemanticScore >= p.SemanticGoodThreshold:
		tags = append(tags, "good profile fit")
	}

	switch {
	case len(profile.Skills) > 0 && s.SkillOverlapRatio >= 1:
		tags = append(tags, "all your skills match")
	case s.SkillOverlapRatio >= 0.5:
		tags = append(tags, "strong skill match")
	case len(rec.SkillMatches) > 0:
		tags = append(tags, "skill match")
	}

	if rec.DistanceKm != nil && *rec.DistanceKm <= closeDistanceKm {
		tags = append(tags, "close to you")
	} else if rec.DistanceKm == nil && profile.RemoteOK {
		tags = append(tags, "remote friendly")
	}

	if profile.MinStipend > 0 && s.StipendScore >= 100 {
		tags = append(tags, "meets stipend expectation")
	}
	if s.DateScore > 0 && s.DateScore < 100 {
		tags = append(tags, "deadline soon")
	}
	return tags
}

const closeDistanceKm = 10.0

// Explain builds the longer narrative for a recommendation. It is pure
// text assembly over the already-computed sub-scores, so two calls with
// the same input produce byte-identical output.
func Explain(rec *model.Recommendation, profile *model.UserProfile, p Params) string {
	s := rec.Scores
	w := p.Weights

	var b strings.Builder
	fmt.Fprintf(&b, "%s ranked with an overall score of %.2f.", listingName(&rec.Listing), s.FinalScore)

	fmt.Fprintf(&b, " Profile similarity is %.2f, contributing %.2f (weight %.0f%%).",
		s.SemanticScore, w.SemanticScore*s.SemanticScore, w.SemanticScore*100)

	if len(profile.Skills) > 0 {
		fmt.Fprintf(&b, " %d of your %d skills matched (%s), contributing %.2f (weight %.0f%%).",
			len(rec.SkillMatches), len(NormalizeSkills(profile.Skills)), matchedSkillList(rec.SkillMatches),
			w.SkillOverlapRatio*s.SkillOverlapRatio, w.SkillOverlapRatio*100)
	} else {
		b.WriteString(" You listed no skills, so skill overlap was not a constraint.")
	}

	if rec.DistanceKm != nil {
		fmt.Fprintf(&b, " It is %.0f km away, giving a location score of %.2f (weight %.0f%%).",
			*rec.DistanceKm, s.LocationScore, w.LocationScore*100)
	} else {
		fmt.Fprintf(&b, " Its location could not be resolved, so a neutral location score of %.2f was applied.",
			s.LocationScore)
	}

	fmt.Fprintf(&b, " Stipend scored %.0f/100 and deadline %.0f/100, together contributing %.2f.",
		s.StipendScore, s.DateScore,
		w.StipendScore*(s.StipendScore/100)+w.DateScore*(s.DateScore/100))

	return b.String()
}

func listingName(listing *model.Listing) string {
	if listing.Title != "" {
		return listing.Title
	}
	return "Listing " + listing.ID
}

func matchedSkillList(matches []model.SkillMatch) string {
	if len(matches) == 0 {
		return "none"
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Skill)
	}
	return strings.Join(names, ", ")
}
