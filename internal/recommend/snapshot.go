package recommend

import (
	"github.com/dishahq/disha/internal/model"
)

// Snapshot is the immutable, process-wide view of the catalog a ranking
// request runs against. It is built once (and on explicit refresh) and
// swapped atomically by the catalog service; the ranking path only ever
// reads it. Listing vectors are keyed by listing ID, so a listing added
// after the last embedding sync simply has no entry and is excluded
// from semantic scoring instead of being scored against a stale row.
type Snapshot struct {
	Listings       []model.Listing
	ListingVectors map[string][]float32
	SkillVectors   map[string][]float32
	Pincodes       map[string]model.Pincode
	BuiltAt        int64
}

func (s *Snapshot) ListingVector(id string) ([]float32, bool) {
	vec, ok := s.ListingVectors[id]
	return vec, ok
}

func (s *Snapshot) PincodeCoord(pincode string) (lat, lon float64, ok bool) {
	entry, ok := s.Pincodes[pincode]
	if !ok {
		return 0, 0, false
	}
	return entry.Lat, entry.Lon, true
}
