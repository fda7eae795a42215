package model

// UserProfile is the request-scoped candidate profile. AvailableFrom is
// the raw date string from the request; parsing happens in the scoring
// layer so a malformed value degrades to the neutral policy instead of
// rejecting the request.
type UserProfile struct {
	Skills            []string `json:"skills"`
	Qualification     string   `json:"qualification"`
	PreferredLocation string   `json:"preferred_location"`
	Pincode           string   `json:"pincode"`
	MinStipend        int64    `json:"min_stipend"`
	AvailableFrom     string   `json:"available_from"`
	RemoteOK          bool     `json:"remote_ok"`
	Lat               *float64 `json:"lat"`
	Lon               *float64 `json:"lon"`
}
