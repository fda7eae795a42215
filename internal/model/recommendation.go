package model

type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchFuzzy    MatchKind = "fuzzy"
	MatchSemantic MatchKind = "semantic"
)

// SkillMatch records that one listing skill was matched by some user
// skill. Confidence is in [0,1]; each listing skill appears at most
// once with its best-confidence match.
type SkillMatch struct {
	Skill      string    `json:"skill"`
	Kind       MatchKind `json:"kind"`
	Confidence float64   `json:"confidence"`
}

type ScoreBreakdown struct {
	SemanticScore     float64 `json:"semantic_score"`
	SkillOverlapRatio float64 `json:"skill_overlap_ratio"`
	LocationScore     float64 `json:"location_score"`
	StipendScore      float64 `json:"stipend_score"`
	DateScore         float64 `json:"date_score"`
	FinalScore        float64 `json:"final_score"`
}

type Recommendation struct {
	Listing     Listing        `json:"listing"`
	Scores      ScoreBreakdown `json:"scores"`
	SkillMatches []SkillMatch  `json:"skill_matches"`
	DistanceKm  *float64       `json:"distance_km"`
	WhyTags     []string       `json:"why_tags"`
	Explanation string         `json:"explanation"`
}
