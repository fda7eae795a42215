package recommend

import (
	"fmt"
	"math"
)

// Weights are the fixed composite-score weights. They are hand-tuned
// constants, not trained; a set that does not sum to 1.0 is a
// configuration error and must be rejected before any ranking runs.
type Weights struct {
	SemanticScore     float64 `json:"semantic_score"`
	SkillOverlapRatio float64 `json:"skill_overlap_ratio"`
	LocationScore     float64 `json:"location_score"`
	StipendScore      float64 `json:"stipend_score"`
	DateScore         float64 `json:"date_score"`
}

func DefaultWeights() Weights {
	return Weights{
		SemanticScore:     0.50,
		SkillOverlapRatio: 0.20,
		LocationScore:     0.15,
		StipendScore:      0.08,
		DateScore:         0.07,
	}
}

func (w Weights) Sum() float64 {
	return w.SemanticScore + w.SkillOverlapRatio + w.LocationScore + w.StipendScore + w.DateScore
}

func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 1e-6 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", w.Sum())
	}
	for name, v := range map[string]float64{
		"semantic_score":      w.SemanticScore,
		"skill_overlap_ratio": w.SkillOverlapRatio,
		"location_score":      w.LocationScore,
		"stipend_score":       w.StipendScore,
		"date_score":          w.DateScore,
	} {
		if v < 0 {
			return fmt.Errorf("scoring weight %s must not be negative, got %v", name, v)
		}
	}
	return nil
}

type Params struct {
	Weights Weights `json:"weights"`

	TopK            int `json:"top_k"`
	MinSkillMatches int `json:"min_skill_matches"`

	// FuzzyCutoff is on a 0-100 percentage scale, SkillSemanticCutoff
	// on cosine [0,1].
	FuzzyCutoff         float64 `json:"fuzzy_cutoff"`
	SkillSemanticCutoff float64 `json:"skill_semantic_cutoff"`

	SemanticHighThreshold float64 `json:"semantic_high_threshold"`
	SemanticGoodThreshold float64 `json:"semantic_good_threshold"`

	LocationRadiusKm float64 `json:"location_radius_km"`

	// NeutralFieldScore (0-100) is applied when a listing's stipend or
	// deadline cannot be parsed: unknown is not disqualifying.
	NeutralFieldScore float64 `json:"neutral_field_score"`
}

func DefaultParams() Params {
	return Params{
		Weights:               DefaultWeights(),
		TopK:                  5,
		MinSkillMatches:       1,
		FuzzyCutoff:           85,
		SkillSemanticCutoff:   0.75,
		SemanticHighThreshold: 0.7,
		SemanticGoodThreshold: 0.5,
		LocationRadiusKm:      50,
		NeutralFieldScore:     50,
	}
}

// ApplyDefaults fills unset fields so a partial config block only needs
// to name what it overrides. The weights block is all-or-nothing: a
// zero-valued set falls back to the defaults, anything else must
// validate as supplied.
func (p *Params) ApplyDefaults() {
	def := DefaultParams()
	if p.Weights == (Weights{}) {
		p.Weights = def.Weights
	}
	if p.TopK <= 0 {
		p.TopK = def.TopK
	}
	if p.MinSkillMatches <= 0 {
		p.MinSkillMatches = def.MinSkillMatches
	}
	if p.FuzzyCutoff <= 0 {
		p.FuzzyCutoff = def.FuzzyCutoff
	}
	if p.SkillSemanticCutoff <= 0 {
		p.SkillSemanticCutoff = def.SkillSemanticCutoff
	}
	if p.SemanticHighThreshold <= 0 {
		p.SemanticHighThreshold = def.SemanticHighThreshold
	}
	if p.SemanticGoodThreshold <= 0 {
		p.SemanticGoodThreshold = def.SemanticGoodThreshold
	}
	if p.LocationRadiusKm <= 0 {
		p.LocationRadiusKm = def.LocationRadiusKm
	}
	if p.NeutralFieldScore <= 0 {
		p.NeutralFieldScore = def.NeutralFieldScore
	}
}

func (p Params) Validate() error {
	if err := p.Weights.Validate(); err != nil {
		return err
	}
	if p.FuzzyCutoff > 100 {
		return fmt.Errorf("fuzzy_cutoff must be within (0,100], got %v", p.FuzzyCutoff)
	}
	if p.SkillSemanticCutoff > 1 {
		return fmt.Errorf("skill_semantic_cutoff must be within (0,1], got %v", p.SkillSemanticCutoff)
	}
	if p.SemanticGoodThreshold > p.SemanticHighThreshold {
		return fmt.Errorf("semantic_good_threshold %v must not exceed semantic_high_threshold %v",
			p.SemanticGoodThreshold, p.SemanticHighThreshold)
	}
	if p.NeutralFieldScore > 100 {
		return fmt.Errorf("neutral_field_score must be within (0,100], got %v", p.NeutralFieldScore)
	}
	return nil
}
