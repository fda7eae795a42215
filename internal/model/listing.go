package model

// Listing is a single internship row after the one-time normalization
// pass. Raw columns keep whatever the catalog source supplied; derived
// fields are filled exactly once at snapshot build and are nil/empty
// when the raw value could not be parsed.
type Listing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`

	SkillsText   string `json:"skills"`
	StipendText  string `json:"stipend"`
	DeadlineText string `json:"deadline"`
	LocationText string `json:"location"`

	ParsedSkills    []string `json:"parsed_skills"`
	StipendNumeric  *int64   `json:"stipend_numeric"`
	DeadlineUnix    *int64   `json:"deadline_unix"`
	City            string   `json:"city"`
	Pincode         string   `json:"pincode"`
	Lat             *float64 `json:"lat"`
	Lon             *float64 `json:"lon"`

	Ctime int64 `json:"ctime"`
	Mtime int64 `json:"mtime"`
}
