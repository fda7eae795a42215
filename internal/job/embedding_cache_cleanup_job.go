package job

import (
	"context"

	"github.com/dishahq/disha/internal/service"
)

type EmbeddingCacheCleanupJob struct {
	embeddings *service.EmbeddingService
	keepDays   int
}

func NewEmbeddingCacheCleanupJob(embeddings *service.EmbeddingService, keepDays int) *EmbeddingCacheCleanupJob {
	return &EmbeddingCacheCleanupJob{embeddings: embeddings, keepDays: keepDays}
}

func (j *EmbeddingCacheCleanupJob) Name() string {
	return "embedding_cache_cleanup"
}

func (j *EmbeddingCacheCleanupJob) Run(ctx context.Context) error {
	if j.embeddings == nil {
		return nil
	}
	keepDays := j.keepDays
	if keepDays <= 0 {
		keepDays = 30
	}
	_, err := j.embeddings.CleanupCache(ctx, keepDays)
	return err
}
