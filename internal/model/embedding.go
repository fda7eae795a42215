package model

// ListingEmbedding is the persisted vector for one listing, keyed by
// listing ID. ContentHash is the sha256 of the embedded text so stale
// rows can be detected without re-embedding.
type ListingEmbedding struct {
	ListingID   string    `json:"listing_id"`
	Embedding   []float32 `json:"embedding"`
	ContentHash string    `json:"content_hash"`
	Mtime       int64     `json:"mtime"`
}

type EmbeddingCache struct {
	ModelName   string    `json:"model_name"`
	TaskType    string    `json:"task_type"`
	ContentHash string    `json:"content_hash"`
	Embedding   []float32 `json:"embedding"`
	Ctime       int64     `json:"ctime"`
}
