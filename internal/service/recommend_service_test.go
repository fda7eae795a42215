package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dishahq/disha/internal/model"
	"github.com/dishahq/disha/internal/recommend"
)

// fakeEmbedder maps exact input text to a fixed vector; unknown text
// fails so tests can exercise the degraded path.
type fakeEmbedder struct {
	vectors map[string][]float32
	fail    bool
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	if f.fail {
		return nil, errors.New("embedder down")
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 1}, nil
}

func (f *fakeEmbedder) ModelName() string {
	return "fake-model"
}

func testSnapshot() *recommend.Snapshot {
	return &recommend.Snapshot{
		Listings: []model.Listing{
			{ID: "go-job", Title: "Go Intern", ParsedSkills: []string{"go", "sql"}},
			{ID: "py-job", Title: "Python Intern", ParsedSkills: []string{"python"}},
		},
		ListingVectors: map[string][]float32{
			"go-job": {1, 0, 0},
			"py-job": {0, 1, 0},
		},
		SkillVectors: map[string][]float32{},
		Pincodes:     map[string]model.Pincode{},
	}
}

func newTestRecommendService(embedder *fakeEmbedder, snap *recommend.Snapshot) *RecommendService {
	catalog := &CatalogService{}
	if snap != nil {
		catalog.snapshot.Store(snap)
	}
	params := recommend.Params{Weights: recommend.DefaultWeights()}
	params.ApplyDefaults()
	return NewRecommendService(catalog, embedder, params)
}

func TestRecommendRanksBySemanticAffinity(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		recommend.UserEmbedText(&model.UserProfile{Skills: []string{"go"}}): {1, 0, 0},
	}}
	s := newTestRecommendService(embedder, testSnapshot())

	recs := s.Recommend(context.Background(), &model.UserProfile{Skills: []string{"go"}}, 5, nil)
	require.Len(t, recs, 1)
	require.Equal(t, "go-job", recs[0].Listing.ID)
	require.Greater(t, recs[0].Scores.FinalScore, 0.0)
	require.NotEmpty(t, recs[0].Explanation)
}

func TestRecommendEmptySnapshotIsEmpty(t *testing.T) {
	s := newTestRecommendService(&fakeEmbedder{}, nil)
	recs := s.Recommend(context.Background(), &model.UserProfile{Skills: []string{"go"}}, 5, nil)
	require.NotNil(t, recs)
	require.Empty(t, recs)
}

func TestRecommendDegradesWhenEmbedderFails(t *testing.T) {
	s := newTestRecommendService(&fakeEmbedder{fail: true}, testSnapshot())

	recs := s.Recommend(context.Background(), &model.UserProfile{Skills: []string{"go"}}, 5, nil)
	require.Len(t, recs, 1)
	require.Equal(t, "go-job", recs[0].Listing.ID)
	require.Zero(t, recs[0].Scores.SemanticScore)
}

func TestWithUserSkillVectorsDoesNotMutateSnapshot(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"rust": {0.5, 0.5, 0},
	}}
	s := newTestRecommendService(embedder, testSnapshot())
	snap := s.catalog.Snapshot()

	overlay := s.withUserSkillVectors(context.Background(), snap, &model.UserProfile{Skills: []string{"rust"}})
	require.NotSame(t, snap, overlay)
	require.Contains(t, overlay.SkillVectors, "rust")
	require.NotContains(t, snap.SkillVectors, "rust")
}

func TestWithUserSkillVectorsNoMissingSkillsReturnsSameSnapshot(t *testing.T) {
	snap := testSnapshot()
	snap.SkillVectors["go"] = []float32{1, 0, 0}
	s := newTestRecommendService(&fakeEmbedder{}, snap)

	overlay := s.withUserSkillVectors(context.Background(), snap, &model.UserProfile{Skills: []string{"go"}})
	require.Same(t, snap, overlay)
}
