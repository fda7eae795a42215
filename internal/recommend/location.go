package recommend

import (
	"github.com/umahmood/haversine"

	"github.com/dishahq/disha/internal/model"
)

// NeutralLocationScore is applied when either side's coordinates are
// unknown. Missing location data must not zero a listing out, and must
// not rank it as if it were next door either.
const NeutralLocationScore = 0.5

// ScoreLocation resolves both coordinates and returns a linear-decay
// suitability score plus the great-circle distance. The distance is nil
// whenever either side is unresolved; callers treat nil as passing any
// distance cutoff, because a listing is never excluded on missing data.
func ScoreLocation(listing *model.Listing, profile *model.UserProfile, snap *Snapshot, radiusKm float64) (float64, *float64) {
	listingLat, listingLon, listingOK := resolveListingCoord(listing, snap)
	userLat, userLon, userOK := resolveUserCoord(profile, snap)
	if !listingOK || !userOK {
		return NeutralLocationScore, nil
	}
	_, km := haversine.Distance(
		haversine.Coord{Lat: userLat, Lon: userLon},
		haversine.Coord{Lat: listingLat, Lon: listingLon},
	)
	score := 1.0 - km/radiusKm
	if score < 0 {
		score = 0
	}
	return score, &km
}

func resolveListingCoord(listing *model.Listing, snap *Snapshot) (float64, float64, bool) {
	if listing.Lat != nil && listing.Lon != nil {
		return *listing.Lat, *listing.Lon, true
	}
	if listing.Pincode != "" {
		if lat, lon, ok := snap.PincodeCoord(listing.Pincode); ok {
			return lat, lon, true
		}
	}
	return 0, 0, false
}

// resolveUserCoord prefers an explicit override, then falls back to the
// profile's pincode; anything else is an unknown location.
func resolveUserCoord(profile *model.UserProfile, snap *Snapshot) (float64, float64, bool) {
	if profile.Lat != nil && profile.Lon != nil {
		return *profile.Lat, *profile.Lon, true
	}
	if profile.Pincode != "" {
		if lat, lon, ok := snap.PincodeCoord(profile.Pincode); ok {
			return lat, lon, true
		}
	}
	return 0, 0, false
}
