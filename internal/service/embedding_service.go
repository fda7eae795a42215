package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/dishahq/disha/internal/ai"
	"github.com/dishahq/disha/internal/model"
	"github.com/dishahq/disha/internal/recommend"
	"github.com/dishahq/disha/internal/repo"
)

// EmbeddingService keeps the listing_embeddings table in step with the
// catalog. Descriptions are stripped of markdown before embedding so
// formatting churn does not invalidate the content hash.
type EmbeddingService struct {
	embedder   ai.IEmbedder
	embeddings *repo.EmbeddingRepo
	listings   *repo.ListingRepo
	cache      *repo.EmbeddingCacheRepo
}

func NewEmbeddingService(embedder ai.IEmbedder, embeddings *repo.EmbeddingRepo,
	listings *repo.ListingRepo, cache *repo.EmbeddingCacheRepo) *EmbeddingService {
	return &EmbeddingService{
		embedder:   embedder,
		embeddings: embeddings,
		listings:   listings,
		cache:      cache,
	}
}

// SyncListing embeds one listing if its content changed since the last
// sync. Returns true when a new vector was written.
func (s *EmbeddingService) SyncListing(ctx context.Context, listing *model.Listing) (bool, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("listing_id", listing.ID))

	text := listingEmbedText(listing)
	hash := sha256.Sum256([]byte(text))
	contentHash := hex.EncodeToString(hash[:])

	existing, err := s.embeddings.GetByListingID(ctx, listing.ID)
	if err != nil {
		return false, err
	}
	if existing != nil && existing.ContentHash == contentHash {
		return false, nil
	}

	emb, err := s.embedder.Embed(ctx, text, "RETRIEVAL_DOCUMENT")
	if err != nil {
		logger.Error("failed to embed listing", zap.Error(err))
		return false, err
	}
	if err := s.embeddings.Save(ctx, &model.ListingEmbedding{
		ListingID:   listing.ID,
		Embedding:   emb,
		ContentHash: contentHash,
		Mtime:       time.Now().Unix(),
	}); err != nil {
		logger.Error("failed to save listing embedding", zap.Error(err))
		return false, err
	}
	logger.Info("listing embedding synced")
	return true, nil
}

// SyncStale embeds up to batchSize listings whose vector is missing or
// older than the listing row. Per-listing failures are logged and
// skipped so one bad row cannot stall the batch.
func (s *EmbeddingService) SyncStale(ctx context.Context, batchSize int) (int, error) {
	logger := logutil.GetLogger(ctx)
	stale, err := s.listings.ListStale(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	synced := 0
	for i := range stale {
		ok, err := s.SyncListing(ctx, &stale[i])
		if err != nil {
			logger.Warn("skip listing in embedding sync",
				zap.String("listing_id", stale[i].ID), zap.Error(err))
			continue
		}
		if ok {
			synced++
		}
	}
	return synced, nil
}

// CleanupCache drops embedding cache rows older than keepDays.
func (s *EmbeddingService) CleanupCache(ctx context.Context, keepDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -keepDays).Unix()
	return s.cache.DeleteBefore(ctx, cutoff)
}

func listingEmbedText(listing *model.Listing) string {
	plain := *listing
	plain.Description = ai.PlainText(listing.Description)
	return recommend.ListingEmbedText(&plain)
}
