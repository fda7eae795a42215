package service

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/dishahq/disha/internal/model"
	appErr "github.com/dishahq/disha/internal/pkg/errors"
	"github.com/dishahq/disha/internal/recommend"
	"github.com/dishahq/disha/internal/repo"
)

// CatalogService owns the in-memory catalog snapshot. The snapshot is
// rebuilt as a whole on Refresh and swapped atomically, so request
// handlers always see a consistent catalog and never block a rebuild.
type CatalogService struct {
	listings   *repo.ListingRepo
	pincodes   *repo.PincodeRepo
	embeddings *repo.EmbeddingRepo
	embedder   func(ctx context.Context, text, taskType string) ([]float32, error)

	snapshot atomic.Pointer[recommend.Snapshot]
}

func NewCatalogService(listings *repo.ListingRepo, pincodes *repo.PincodeRepo, embeddings *repo.EmbeddingRepo,
	embed func(ctx context.Context, text, taskType string) ([]float32, error)) *CatalogService {
	return &CatalogService{
		listings:   listings,
		pincodes:   pincodes,
		embeddings: embeddings,
		embedder:   embed,
	}
}

// Snapshot returns the current catalog view, or nil before the first
// successful Refresh.
func (s *CatalogService) Snapshot() *recommend.Snapshot {
	return s.snapshot.Load()
}

// Refresh rebuilds the snapshot from the database: normalizes every
// listing exactly once, loads the keyed listing vectors and the pincode
// table, and embeds the distinct listing skills for the semantic tier
// of skill matching. A failed rebuild leaves the previous snapshot in
// place.
func (s *CatalogService) Refresh(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	start := time.Now()

	rows, err := s.listings.ListAll(ctx)
	if err != nil {
		return err
	}
	pincodeRows, err := s.pincodes.ListAll(ctx)
	if err != nil {
		return err
	}
	pincodeMap := make(map[string]model.Pincode, len(pincodeRows))
	for _, p := range pincodeRows {
		pincodeMap[p.Pincode] = p
	}

	listings := make([]model.Listing, 0, len(rows))
	for _, listing := range rows {
		normalizeListing(&listing, pincodeMap)
		listings = append(listings, listing)
	}

	vectors, err := s.embeddings.ListAll(ctx)
	if err != nil {
		return err
	}

	skillVecs := s.embedSkills(ctx, listings)

	s.snapshot.Store(&recommend.Snapshot{
		Listings:       listings,
		ListingVectors: vectors,
		SkillVectors:   skillVecs,
		Pincodes:       pincodeMap,
		BuiltAt:        time.Now().Unix(),
	})
	logger.Info("catalog snapshot rebuilt",
		zap.Int("listings", len(listings)),
		zap.Int("listing_vectors", len(vectors)),
		zap.Int("skill_vectors", len(skillVecs)),
		zap.Int("pincodes", len(pincodeMap)),
		zap.Duration("cost", time.Since(start)))
	return nil
}

// GetListing serves the detail endpoint from the snapshot so reads stay
// consistent with what ranking sees.
func (s *CatalogService) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, appErr.ErrNotFound
	}
	for i := range snap.Listings {
		if snap.Listings[i].ID == id {
			return &snap.Listings[i], nil
		}
	}
	return nil, appErr.ErrNotFound
}

// ListListings returns a page of the catalog, optionally filtered by a
// case-insensitive substring over title, company and city.
func (s *CatalogService) ListListings(ctx context.Context, query string, offset, limit int) ([]model.Listing, int) {
	snap := s.snapshot.Load()
	if snap == nil {
		return []model.Listing{}, 0
	}
	query = strings.ToLower(strings.TrimSpace(query))
	matched := make([]model.Listing, 0, len(snap.Listings))
	for _, listing := range snap.Listings {
		if query != "" && !matchesQuery(&listing, query) {
			continue
		}
		matched = append(matched, listing)
	}
	total := len(matched)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total
}

func (s *CatalogService) embedSkills(ctx context.Context, listings []model.Listing) map[string][]float32 {
	if s.embedder == nil {
		return map[string][]float32{}
	}
	logger := logutil.GetLogger(ctx)
	vecs := make(map[string][]float32)
	for _, listing := range listings {
		for _, skill := range listing.ParsedSkills {
			if _, ok := vecs[skill]; ok {
				continue
			}
			vec, err := s.embedder(ctx, skill, "SEMANTIC_SIMILARITY")
			if err != nil {
				// A missing skill vector only disables the semantic
				// tier for that skill; exact and fuzzy still apply.
				logger.Warn("failed to embed skill", zap.String("skill", skill), zap.Error(err))
				continue
			}
			vecs[skill] = vec
		}
	}
	return vecs
}

func matchesQuery(listing *model.Listing, query string) bool {
	return strings.Contains(strings.ToLower(listing.Title), query) ||
		strings.Contains(strings.ToLower(listing.Company), query) ||
		strings.Contains(strings.ToLower(listing.City), query)
}

// normalizeListing fills the derived columns from the raw ones. It runs
// once per listing per snapshot build; the ranking path never parses.
func normalizeListing(listing *model.Listing, pincodes map[string]model.Pincode) {
	listing.ParsedSkills = recommend.ParseSkills(listing.SkillsText)
	listing.StipendNumeric = recommend.ParseStipend(listing.StipendText)
	if t := recommend.ParseDate(listing.DeadlineText); t != nil {
		unix := t.Unix()
		listing.DeadlineUnix = &unix
	}
	city, pincode := parseLocationField(listing.LocationText)
	listing.City = city
	listing.Pincode = pincode
	if listing.Lat == nil || listing.Lon == nil {
		if entry, ok := pincodes[pincode]; ok {
			lat, lon := entry.Lat, entry.Lon
			listing.Lat = &lat
			listing.Lon = &lon
		}
	}
}

// parseLocationField handles the catalog's stringified-list location
// column, e.g. ['Mumbai', '400001']. Anything that does not look like a
// list is kept whole as the city with no pincode.
func parseLocationField(raw string) (city, pincode string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return raw, ""
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	parts := strings.Split(inner, ",")
	clean := func(s string) string {
		return strings.Trim(strings.TrimSpace(s), `'"`)
	}
	if len(parts) == 0 {
		return "", ""
	}
	city = clean(parts[0])
	if len(parts) > 1 {
		pincode = clean(parts[1])
	}
	return city, pincode
}
