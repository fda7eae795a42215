package recommend

import (
	"math"
	"strings"

	"github.com/dishahq/disha/internal/model"
)

// UserEmbedText synthesizes the text embedded for a candidate profile.
// The template is a free choice but must be deterministic: identical
// profiles embed identical text, which keeps the cache layer effective
// and ranking output reproducible.
func UserEmbedText(profile *model.UserProfile) string {
	skills := NormalizeSkills(profile.Skills)
	var b strings.Builder
	b.WriteString("Skills: ")
	if len(skills) > 0 {
		b.WriteString(strings.Join(skills, ", "))
	} else {
		b.WriteString("none")
	}
	b.WriteString(". Qualification: ")
	if q := strings.TrimSpace(profile.Qualification); q != "" {
		b.WriteString(q)
	} else {
		b.WriteString("unspecified")
	}
	b.WriteString(".")
	return b.String()
}

// ListingEmbedText is the listing-side counterpart, combining the
// fields that carry meaning for profile matching.
func ListingEmbedText(listing *model.Listing) string {
	parts := make([]string, 0, 4)
	if listing.Title != "" {
		parts = append(parts, listing.Title)
	}
	if listing.Company != "" {
		parts = append(parts, listing.Company)
	}
	if len(listing.ParsedSkills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(listing.ParsedSkills, ", "))
	}
	if listing.Description != "" {
		parts = append(parts, listing.Description)
	}
	return strings.Join(parts, "\n")
}

func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
