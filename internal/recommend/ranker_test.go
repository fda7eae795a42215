package recommend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dishahq/disha/internal/model"
)

func mkListing(id, skills, stipend, deadline string) model.Listing {
	listing := model.Listing{
		ID:           id,
		Title:        "Internship " + id,
		SkillsText:   skills,
		StipendText:  stipend,
		DeadlineText: deadline,
	}
	listing.ParsedSkills = ParseSkills(skills)
	listing.StipendNumeric = ParseStipend(stipend)
	if t := ParseDate(deadline); t != nil {
		unix := t.Unix()
		listing.DeadlineUnix = &unix
	}
	return listing
}

func coord(lat, lon float64) (*float64, *float64) {
	return &lat, &lon
}

func baseProfile() *model.UserProfile {
	return &model.UserProfile{
		Skills:        []string{"python", "sql"},
		Qualification: "B.Tech",
		MinStipend:    5000,
		AvailableFrom: "2024-06-01",
	}
}

func TestRankExampleScenario(t *testing.T) {
	a := mkListing("a", "Python, SQL, Excel", "8000", "2024-07-01")
	a.Lat, a.Lon = coord(28.6139, 77.2090)
	b := mkListing("b", "Java", "3000", "2024-07-01")

	profile := baseProfile()
	profile.Lat, profile.Lon = coord(28.6139, 77.2090)

	snap := &Snapshot{
		Listings: []model.Listing{a, b},
		ListingVectors: map[string][]float32{
			"a": {1, 0},
			"b": {0, 1},
		},
	}
	recs := Rank(snap, DefaultParams(), RankInput{Profile: profile, UserVector: []float32{1, 0}})

	require.Len(t, recs, 1, "listing b fails the hard skill filter")
	got := recs[0]
	require.Equal(t, "a", got.Listing.ID)
	require.Equal(t, 1.0, got.Scores.SkillOverlapRatio)
	require.Equal(t, 100.0, got.Scores.StipendScore)
	require.Equal(t, 100.0, got.Scores.DateScore)
	require.InDelta(t, 1.0, got.Scores.SemanticScore, 0.001)
	require.NotEmpty(t, got.WhyTags)
	require.NotEmpty(t, got.Explanation)
}

func TestRankEmptySkillsBypassesFilter(t *testing.T) {
	snap := &Snapshot{
		Listings: []model.Listing{
			mkListing("a", "Java", "3000", "2024-07-01"),
			mkListing("b", "Cobol", "", ""),
		},
	}
	profile := &model.UserProfile{Skills: nil, AvailableFrom: "2024-06-01"}

	recs := Rank(snap, DefaultParams(), RankInput{Profile: profile})
	require.Len(t, recs, 2, "no stated skills means skills are not a constraint")
	for _, rec := range recs {
		require.Equal(t, 0.0, rec.Scores.SkillOverlapRatio)
	}
}

func TestRankNoSurvivorsIsEmptyNotError(t *testing.T) {
	snap := &Snapshot{Listings: []model.Listing{mkListing("a", "Java", "", "")}}
	recs := Rank(snap, DefaultParams(), RankInput{Profile: baseProfile()})
	require.NotNil(t, recs)
	require.Empty(t, recs)
}

func TestRankDistanceCutoff(t *testing.T) {
	user := baseProfile()
	user.Skills = nil
	user.Lat, user.Lon = coord(28.6139, 77.2090)

	near := mkListing("near", "", "", "")
	near.Lat, near.Lon = coord(28.6139, 77.2090)
	far := mkListing("far", "", "", "")
	far.Lat, far.Lon = coord(29.3339, 77.2090) // ~80km north
	unknown := mkListing("unknown", "", "", "")

	snap := &Snapshot{Listings: []model.Listing{near, far, unknown}}
	maxDist := 50.0
	recs := Rank(snap, DefaultParams(), RankInput{Profile: user, MaxDistanceKm: &maxDist})

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.Listing.ID)
	}
	require.Contains(t, ids, "near")
	require.NotContains(t, ids, "far", "beyond the cutoff")
	require.Contains(t, ids, "unknown", "unresolved distance is never dropped")
}

func TestRankTruncatesToK(t *testing.T) {
	snap := &Snapshot{}
	for i := 0; i < 10; i++ {
		listing := mkListing(fmt.Sprintf("l%02d", i), "python", fmt.Sprintf("%d", 1000*i), "2024-07-01")
		snap.Listings = append(snap.Listings, listing)
	}
	recs := Rank(snap, DefaultParams(), RankInput{Profile: baseProfile(), K: 5})
	require.Len(t, recs, 5)
	for i := 1; i < len(recs); i++ {
		require.GreaterOrEqual(t, recs[i-1].Scores.FinalScore, recs[i].Scores.FinalScore)
	}
}

func TestRankDeterministicWithTies(t *testing.T) {
	snap := &Snapshot{
		Listings: []model.Listing{
			mkListing("c", "python", "8000", "2024-07-01"),
			mkListing("a", "python", "8000", "2024-07-01"),
			mkListing("b", "python", "8000", "2024-07-01"),
		},
	}
	in := RankInput{Profile: baseProfile()}
	p := DefaultParams()

	first := Rank(snap, p, in)
	second := Rank(snap, p, in)
	require.Equal(t, first, second, "identical inputs must produce identical output")

	require.Equal(t, "a", first[0].Listing.ID)
	require.Equal(t, "b", first[1].Listing.ID)
	require.Equal(t, "c", first[2].Listing.ID)
}

func TestRankScoreBounds(t *testing.T) {
	snap := &Snapshot{
		Listings: []model.Listing{
			mkListing("a", "Python, SQL", "8000", "2024-07-01"),
			mkListing("b", "python", "100", "2020-01-01"),
			mkListing("c", "sql", "", ""),
		},
		ListingVectors: map[string][]float32{"a": {0.5, 0.5}},
	}
	recs := Rank(snap, DefaultParams(), RankInput{Profile: baseProfile(), UserVector: []float32{1, 0}})
	require.NotEmpty(t, recs)
	for _, rec := range recs {
		s := rec.Scores
		require.GreaterOrEqual(t, s.SemanticScore, 0.0)
		require.LessOrEqual(t, s.SemanticScore, 1.0)
		require.GreaterOrEqual(t, s.SkillOverlapRatio, 0.0)
		require.LessOrEqual(t, s.SkillOverlapRatio, 1.0)
		require.GreaterOrEqual(t, s.LocationScore, 0.0)
		require.LessOrEqual(t, s.LocationScore, 1.0)
		require.GreaterOrEqual(t, s.StipendScore, 0.0)
		require.LessOrEqual(t, s.StipendScore, 100.0)
		require.GreaterOrEqual(t, s.DateScore, 0.0)
		require.LessOrEqual(t, s.DateScore, 100.0)
		require.GreaterOrEqual(t, s.FinalScore, 0.0)
		require.LessOrEqual(t, s.FinalScore, 1.0)
	}
}

func TestRankMissingVectorExcludedFromSemantic(t *testing.T) {
	withVec := mkListing("with", "python", "8000", "2024-07-01")
	withoutVec := mkListing("without", "python", "8000", "2024-07-01")

	snap := &Snapshot{
		Listings:       []model.Listing{withVec, withoutVec},
		ListingVectors: map[string][]float32{"with": {1, 0}},
	}
	recs := Rank(snap, DefaultParams(), RankInput{Profile: baseProfile(), UserVector: []float32{1, 0}})
	require.Len(t, recs, 2)

	byID := map[string]model.Recommendation{}
	for _, rec := range recs {
		byID[rec.Listing.ID] = rec
	}
	require.InDelta(t, 1.0, byID["with"].Scores.SemanticScore, 0.001)
	require.Equal(t, 0.0, byID["without"].Scores.SemanticScore, "no vector means the global minimum, not stale data")
	require.Equal(t, "with", recs[0].Listing.ID)
}
