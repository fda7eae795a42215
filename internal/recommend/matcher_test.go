package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dishahq/disha/internal/model"
)

func TestMatchSkillsExact(t *testing.T) {
	p := DefaultParams()
	matches := MatchSkills([]string{"python", "sql"}, []string{"python", "sql", "excel"}, nil, p)
	require.Len(t, matches, 2)
	for _, m := range matches {
		require.Equal(t, model.MatchExact, m.Kind)
		require.Equal(t, 1.0, m.Confidence)
	}
}

func TestMatchSkillsFuzzy(t *testing.T) {
	p := DefaultParams()
	matches := MatchSkills([]string{"javascript"}, []string{"javascrpt"}, nil, p)
	require.Len(t, matches, 1)
	require.Equal(t, model.MatchFuzzy, matches[0].Kind)
	require.Greater(t, matches[0].Confidence, 0.85)
	require.Less(t, matches[0].Confidence, 1.0)
}

func TestMatchSkillsFuzzyTokenOrder(t *testing.T) {
	p := DefaultParams()
	matches := MatchSkills([]string{"learning machine"}, []string{"machine learning"}, nil, p)
	require.Len(t, matches, 1)
	require.Equal(t, model.MatchFuzzy, matches[0].Kind)
	require.Equal(t, 1.0, matches[0].Confidence)
}

func TestMatchSkillsSemantic(t *testing.T) {
	p := DefaultParams()
	vecs := map[string][]float32{
		"golang": {1, 0, 0},
		"go":     {0.9, 0.1, 0},
		"french": {0, 0, 1},
	}
	matches := MatchSkills([]string{"golang"}, []string{"go", "french"}, vecs, p)
	require.Len(t, matches, 1)
	require.Equal(t, "go", matches[0].Skill)
	require.Equal(t, model.MatchSemantic, matches[0].Kind)
	require.GreaterOrEqual(t, matches[0].Confidence, p.SkillSemanticCutoff)
}

func TestMatchSkillsBelowCutoffs(t *testing.T) {
	p := DefaultParams()
	matches := MatchSkills([]string{"python"}, []string{"carpentry"}, nil, p)
	require.Empty(t, matches)
}

func TestMatchSkillsListingSkillMatchedOnce(t *testing.T) {
	p := DefaultParams()
	// Both user skills hit the same listing skill; it must be reported
	// once with the best confidence.
	matches := MatchSkills([]string{"python", "pythonn"}, []string{"python"}, nil, p)
	require.Len(t, matches, 1)
	require.Equal(t, model.MatchExact, matches[0].Kind)
	require.Equal(t, 1.0, matches[0].Confidence)
}

func TestPassesSkillFilter(t *testing.T) {
	p := DefaultParams()
	match := []model.SkillMatch{{Skill: "python", Kind: model.MatchExact, Confidence: 1}}

	require.True(t, PassesSkillFilter(0, nil, p), "no user skills passes everything")
	require.False(t, PassesSkillFilter(2, nil, p))
	require.True(t, PassesSkillFilter(2, match, p))

	p.MinSkillMatches = 2
	require.False(t, PassesSkillFilter(2, match, p))
}

func TestFuzzyRatioBounds(t *testing.T) {
	require.Equal(t, 100.0, fuzzyRatio("sql", "sql"))
	require.Equal(t, 0.0, fuzzyRatio("", "sql"))
	require.Less(t, fuzzyRatio("python", "haskell"), 50.0)
}
