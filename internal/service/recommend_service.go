package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/dishahq/disha/internal/ai"
	"github.com/dishahq/disha/internal/model"
	"github.com/dishahq/disha/internal/recommend"
)

type RecommendService struct {
	catalog  *CatalogService
	embedder ai.IEmbedder
	params   recommend.Params
}

func NewRecommendService(catalog *CatalogService, embedder ai.IEmbedder, params recommend.Params) *RecommendService {
	return &RecommendService{catalog: catalog, embedder: embedder, params: params}
}

// Recommend ranks the current snapshot against the profile. The
// embedder failing is a degraded mode, not an error: the semantic
// contribution drops to zero and the remaining signals still rank.
func (s *RecommendService) Recommend(ctx context.Context, profile *model.UserProfile, k int, maxDistanceKm *float64) []model.Recommendation {
	snap := s.catalog.Snapshot()
	if snap == nil || len(snap.Listings) == 0 {
		return []model.Recommendation{}
	}
	logger := logutil.GetLogger(ctx)

	var userVec []float32
	if s.embedder != nil {
		vec, err := s.embedder.Embed(ctx, recommend.UserEmbedText(profile), "RETRIEVAL_QUERY")
		if err != nil {
			logger.Warn("profile embedding unavailable, ranking without semantic score", zap.Error(err))
		} else {
			userVec = vec
		}
	}

	return recommend.Rank(s.withUserSkillVectors(ctx, snap, profile), s.params, recommend.RankInput{
		Profile:       profile,
		UserVector:    userVec,
		K:             k,
		MaxDistanceKm: maxDistanceKm,
	})
}

func (s *RecommendService) Params() recommend.Params {
	return s.params
}

// withUserSkillVectors extends the snapshot's skill vector map with the
// request's user skills so the semantic tier of skill matching can
// compare both sides. The snapshot itself is never mutated; when an
// overlay is needed the map is copied first.
func (s *RecommendService) withUserSkillVectors(ctx context.Context, snap *recommend.Snapshot, profile *model.UserProfile) *recommend.Snapshot {
	if s.embedder == nil {
		return snap
	}
	missing := make([]string, 0)
	for _, skill := range recommend.NormalizeSkills(profile.Skills) {
		if _, ok := snap.SkillVectors[skill]; !ok {
			missing = append(missing, skill)
		}
	}
	if len(missing) == 0 {
		return snap
	}
	logger := logutil.GetLogger(ctx)
	merged := make(map[string][]float32, len(snap.SkillVectors)+len(missing))
	for k, v := range snap.SkillVectors {
		merged[k] = v
	}
	for _, skill := range missing {
		vec, err := s.embedder.Embed(ctx, skill, "SEMANTIC_SIMILARITY")
		if err != nil {
			logger.Debug("skip user skill vector", zap.String("skill", skill), zap.Error(err))
			continue
		}
		merged[skill] = vec
	}
	overlay := *snap
	overlay.SkillVectors = merged
	return &overlay
}
