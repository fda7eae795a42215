package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dishahq/disha/internal/model"
)

func delhiSnapshot() *Snapshot {
	return &Snapshot{
		Pincodes: map[string]model.Pincode{
			"110001": {Pincode: "110001", City: "New Delhi", Lat: 28.6139, Lon: 77.2090},
			"122001": {Pincode: "122001", City: "Gurgaon", Lat: 28.4595, Lon: 77.0266},
			"400001": {Pincode: "400001", City: "Mumbai", Lat: 18.9388, Lon: 72.8354},
		},
	}
}

func TestScoreLocationSamePlace(t *testing.T) {
	snap := delhiSnapshot()
	listing := &model.Listing{Pincode: "110001"}
	profile := &model.UserProfile{Pincode: "110001"}

	score, dist := ScoreLocation(listing, profile, snap, 50)
	require.NotNil(t, dist)
	require.InDelta(t, 0, *dist, 0.01)
	require.InDelta(t, 1.0, score, 0.001)
}

func TestScoreLocationLinearDecay(t *testing.T) {
	snap := delhiSnapshot()
	listing := &model.Listing{Pincode: "122001"}
	profile := &model.UserProfile{Pincode: "110001"}

	score, dist := ScoreLocation(listing, profile, snap, 50)
	require.NotNil(t, dist)
	// Delhi to Gurgaon is roughly 25km, so the score sits strictly
	// between the endpoints of the decay.
	require.Greater(t, *dist, 10.0)
	require.Less(t, *dist, 50.0)
	require.InDelta(t, 1.0-*dist/50, score, 0.001)
}

func TestScoreLocationBeyondRadius(t *testing.T) {
	snap := delhiSnapshot()
	listing := &model.Listing{Pincode: "400001"}
	profile := &model.UserProfile{Pincode: "110001"}

	score, dist := ScoreLocation(listing, profile, snap, 50)
	require.NotNil(t, dist)
	require.Greater(t, *dist, 50.0)
	require.Equal(t, 0.0, score)
}

func TestScoreLocationUnknownIsNeutral(t *testing.T) {
	snap := delhiSnapshot()

	score, dist := ScoreLocation(&model.Listing{}, &model.UserProfile{Pincode: "110001"}, snap, 50)
	require.Nil(t, dist)
	require.Equal(t, NeutralLocationScore, score)

	score, dist = ScoreLocation(&model.Listing{Pincode: "110001"}, &model.UserProfile{}, snap, 50)
	require.Nil(t, dist)
	require.Equal(t, NeutralLocationScore, score)

	// Pincode with no table entry is a valid unknown, not an error.
	score, dist = ScoreLocation(&model.Listing{Pincode: "999999"}, &model.UserProfile{Pincode: "110001"}, snap, 50)
	require.Nil(t, dist)
	require.Equal(t, NeutralLocationScore, score)
}

func TestScoreLocationUserOverrideWins(t *testing.T) {
	snap := delhiSnapshot()
	lat, lon := 28.6139, 77.2090
	profile := &model.UserProfile{Pincode: "400001", Lat: &lat, Lon: &lon}
	listing := &model.Listing{Pincode: "110001"}

	score, dist := ScoreLocation(listing, profile, snap, 50)
	require.NotNil(t, dist)
	require.InDelta(t, 0, *dist, 0.01)
	require.InDelta(t, 1.0, score, 0.001)
}
