package recommend

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/dishahq/disha/internal/model"
)

// MatchSkills compares every user skill against every listing skill
// through a three-stage cascade: case-insensitive exact match, then
// token-sorted levenshtein ratio against the fuzzy cutoff, then cosine
// similarity of skill-phrase vectors against the semantic cutoff. Each
// listing skill is reported at most once, keeping its best-confidence
// match so overlapping user skills cannot double-count it.
func MatchSkills(userSkills, listingSkills []string, skillVecs map[string][]float32, p Params) []model.SkillMatch {
	if len(userSkills) == 0 || len(listingSkills) == 0 {
		return nil
	}
	var matches []model.SkillMatch
	for _, listingSkill := range listingSkills {
		best, ok := bestMatch(listingSkill, userSkills, skillVecs, p)
		if ok {
			matches = append(matches, best)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Skill < matches[j].Skill
	})
	return matches
}

func bestMatch(listingSkill string, userSkills []string, skillVecs map[string][]float32, p Params) (model.SkillMatch, bool) {
	var best model.SkillMatch
	found := false
	for _, userSkill := range userSkills {
		if userSkill == listingSkill {
			return model.SkillMatch{Skill: listingSkill, Kind: model.MatchExact, Confidence: 1.0}, true
		}
		if ratio := fuzzyRatio(userSkill, listingSkill); ratio >= p.FuzzyCutoff {
			if conf := ratio / 100; !found || conf > best.Confidence {
				best = model.SkillMatch{Skill: listingSkill, Kind: model.MatchFuzzy, Confidence: conf}
				found = true
			}
			continue
		}
		userVec, listingVec := skillVecs[userSkill], skillVecs[listingSkill]
		if len(userVec) == 0 || len(listingVec) == 0 {
			continue
		}
		if sim := CosineSimilarity(userVec, listingVec); sim >= p.SkillSemanticCutoff {
			if !found || sim > best.Confidence {
				best = model.SkillMatch{Skill: listingSkill, Kind: model.MatchSemantic, Confidence: sim}
				found = true
			}
		}
	}
	return best, found
}

// fuzzyRatio is a token-sorted normalized edit-distance similarity on a
// 0-100 scale, tolerant of word order ("ml engineer" vs "engineer ml")
// and minor spelling differences.
func fuzzyRatio(a, b string) float64 {
	a, b = tokenSort(a), tokenSort(b)
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}

func tokenSort(s string) string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// PassesSkillFilter is the hard gate in front of scoring. A profile
// with no stated skills passes every listing: the absence of skills is
// not a constraint, and over-filtering such profiles would return
// nothing. Otherwise a listing needs at least MinSkillMatches distinct
// matched skills to survive.
func PassesSkillFilter(userSkillCount int, matches []model.SkillMatch, p Params) bool {
	if userSkillCount == 0 {
		return true
	}
	return len(matches) >= p.MinSkillMatches
}
