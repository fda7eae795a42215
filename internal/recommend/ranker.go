package recommend

import (
	"sort"
	"time"

	"github.com/dishahq/disha/internal/model"
)

type RankInput struct {
	Profile *model.UserProfile

	// UserVector is the embedded profile; nil (embedder unavailable)
	// zeroes the semantic contribution instead of failing the request.
	UserVector []float32

	// K limits the result length; non-positive falls back to the
	// configured top-k.
	K int

	// MaxDistanceKm drops listings whose resolved distance exceeds it.
	// Listings with an unresolved distance are never dropped.
	MaxDistanceKm *float64
}

// candidate carries the per-request derived columns for one listing.
// Everything here is request-scoped; the snapshot is never written to.
type candidate struct {
	listing    model.Listing
	matches    []model.SkillMatch
	scores     model.ScoreBreakdown
	distanceKm *float64
}

// Rank runs the full scoring pipeline over the snapshot and returns at
// most k recommendations, ordered by final score with listing-ID
// tie-break so identical inputs always produce identical output. An
// empty result is a normal outcome, not an error.
func Rank(snap *Snapshot, p Params, in RankInput) []model.Recommendation {
	profile := in.Profile
	userSkills := NormalizeSkills(profile.Skills)

	// Stage 1: skill matching and the hard filter.
	candidates := make([]candidate, 0, len(snap.Listings))
	for _, listing := range snap.Listings {
		matches := MatchSkills(userSkills, listing.ParsedSkills, snap.SkillVectors, p)
		if !PassesSkillFilter(len(userSkills), matches, p) {
			continue
		}
		candidates = append(candidates, candidate{listing: listing, matches: matches})
	}
	if len(candidates) == 0 {
		return []model.Recommendation{}
	}

	// Stage 2: semantic similarity. Listings without a vector in the
	// snapshot keep the global minimum of 0 rather than erroring or
	// being scored against stale data.
	for i := range candidates {
		vec, ok := snap.ListingVector(candidates[i].listing.ID)
		if ok && len(in.UserVector) > 0 {
			candidates[i].scores.SemanticScore = clamp01(CosineSimilarity(in.UserVector, vec))
		}
	}

	// Stage 3: location score, then the optional distance cutoff.
	filtered := candidates[:0:0]
	for _, c := range candidates {
		score, dist := ScoreLocation(&c.listing, profile, snap, p.LocationRadiusKm)
		c.scores.LocationScore = score
		c.distanceKm = dist
		if in.MaxDistanceKm != nil && dist != nil && *dist > *in.MaxDistanceKm {
			continue
		}
		filtered = append(filtered, c)
	}
	if len(filtered) == 0 {
		return []model.Recommendation{}
	}

	// Stages 4-6: remaining sub-scores and the weighted composite.
	availableFrom := ParseDate(profile.AvailableFrom)
	for i := range filtered {
		c := &filtered[i]
		if len(userSkills) > 0 {
			c.scores.SkillOverlapRatio = clamp01(float64(len(c.matches)) / float64(len(userSkills)))
		}
		c.scores.StipendScore = ScoreStipend(c.listing.StipendNumeric, profile.MinStipend, p.NeutralFieldScore)
		var deadline *time.Time
		if c.listing.DeadlineUnix != nil {
			t := time.Unix(*c.listing.DeadlineUnix, 0).UTC()
			deadline = &t
		}
		c.scores.DateScore = ScoreDeadline(deadline, availableFrom, p.NeutralFieldScore)
		c.scores.FinalScore = p.Weights.SemanticScore*c.scores.SemanticScore +
			p.Weights.SkillOverlapRatio*c.scores.SkillOverlapRatio +
			p.Weights.LocationScore*c.scores.LocationScore +
			p.Weights.StipendScore*(c.scores.StipendScore/100) +
			p.Weights.DateScore*(c.scores.DateScore/100)
	}

	// Stages 7-8: deterministic order, then truncate.
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].scores.FinalScore != filtered[j].scores.FinalScore {
			return filtered[i].scores.FinalScore > filtered[j].scores.FinalScore
		}
		return filtered[i].listing.ID < filtered[j].listing.ID
	})
	k := in.K
	if k <= 0 {
		k = p.TopK
	}
	if k > len(filtered) {
		k = len(filtered)
	}

	result := make([]model.Recommendation, 0, k)
	for _, c := range filtered[:k] {
		rec := model.Recommendation{
			Listing:      c.listing,
			Scores:       c.scores,
			SkillMatches: c.matches,
			DistanceKm:   c.distanceKm,
		}
		rec.WhyTags = WhyTags(&rec, profile, p)
		rec.Explanation = Explain(&rec, profile, p)
		result = append(result, rec)
	}
	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
