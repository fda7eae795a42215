package repo

import (
	"context"
	"database/sql"

	"github.com/pgvector/pgvector-go"

	"github.com/dishahq/disha/internal/model"
)

type EmbeddingRepo struct {
	db *sql.DB
}

func NewEmbeddingRepo(db *sql.DB) *EmbeddingRepo {
	return &EmbeddingRepo{db: db}
}

func (r *EmbeddingRepo) Save(ctx context.Context, item *model.ListingEmbedding) error {
	const query = `
		INSERT INTO listing_embeddings (listing_id, embedding, content_hash, mtime)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (listing_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			content_hash = EXCLUDED.content_hash,
			mtime = EXCLUDED.mtime
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ListingID,
		pgvector.NewVector(item.Embedding),
		item.ContentHash,
		item.Mtime,
	)
	return err
}

func (r *EmbeddingRepo) GetByListingID(ctx context.Context, listingID string) (*model.ListingEmbedding, error) {
	const query = `
		SELECT listing_id, embedding, content_hash, mtime
		FROM listing_embeddings
		WHERE listing_id = $1
	`
	row := r.db.QueryRowContext(ctx, query, listingID)
	var item model.ListingEmbedding
	var embedding pgvector.Vector
	if err := row.Scan(&item.ListingID, &embedding, &item.ContentHash, &item.Mtime); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	item.Embedding = embedding.Slice()
	return &item, nil
}

// ListAll loads every listing vector keyed by listing id for snapshot builds.
func (r *EmbeddingRepo) ListAll(ctx context.Context) (map[string][]float32, error) {
	const query = `SELECT listing_id, embedding FROM listing_embeddings`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	vectors := make(map[string][]float32)
	for rows.Next() {
		var listingID string
		var embedding pgvector.Vector
		if err := rows.Scan(&listingID, &embedding); err != nil {
			return nil, err
		}
		vectors[listingID] = embedding.Slice()
	}
	return vectors, rows.Err()
}

func (r *EmbeddingRepo) DeleteByListingID(ctx context.Context, listingID string) error {
	const query = `DELETE FROM listing_embeddings WHERE listing_id = $1`
	_, err := r.db.ExecContext(ctx, query, listingID)
	return err
}
