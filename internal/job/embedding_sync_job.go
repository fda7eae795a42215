package job

import (
	"context"

	"github.com/dishahq/disha/internal/service"
)

// EmbeddingSyncJob embeds listings whose content changed since their
// last sync, a batch at a time.
type EmbeddingSyncJob struct {
	embeddings *service.EmbeddingService
	batchSize  int
}

func NewEmbeddingSyncJob(embeddings *service.EmbeddingService, batchSize int) *EmbeddingSyncJob {
	return &EmbeddingSyncJob{embeddings: embeddings, batchSize: batchSize}
}

func (j *EmbeddingSyncJob) Name() string {
	return "embedding_sync"
}

func (j *EmbeddingSyncJob) Run(ctx context.Context) error {
	if j.embeddings == nil {
		return nil
	}
	batchSize := j.batchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	_, err := j.embeddings.SyncStale(ctx, batchSize)
	return err
}
