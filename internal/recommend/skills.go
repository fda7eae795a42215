package recommend

import (
	"encoding/json"
	"strings"
)

// ParseSkills turns the free-form skills column into a deduplicated set
// of lowercase tokens. The column shows up in the wild as a JSON array,
// a Python-style bracketed list, or plain delimited text; anything that
// resists parsing degrades to a single token. It never fails: bad data
// must lower a listing's score, not abort the request.
func ParseSkills(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	if items, ok := parseJSONList(raw); ok {
		return dedupeTokens(items)
	}
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
		return dedupeTokens(splitDelimited(inner))
	}
	return dedupeTokens(splitDelimited(raw))
}

// NormalizeSkills applies the same canonicalization to an
// already-tokenized list, e.g. the skills array from a user profile.
func NormalizeSkills(skills []string) []string {
	return dedupeTokens(skills)
}

func parseJSONList(raw string) ([]string, bool) {
	if !strings.HasPrefix(raw, "[") {
		return nil, false
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	return items, true
}

func splitDelimited(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ',', ';', '|', '/':
			return true
		}
		return false
	})
}

func dedupeTokens(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		token := NormalizeToken(item)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

func NormalizeToken(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), `'"`))
}
