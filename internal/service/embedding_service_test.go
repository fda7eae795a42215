package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dishahq/disha/internal/model"
)

func TestListingEmbedTextStripsMarkdown(t *testing.T) {
	listing := &model.Listing{
		Title:        "Go Intern",
		Company:      "Acme",
		ParsedSkills: []string{"go"},
		Description:  "# About\n\nWork on **production** services.",
	}
	text := listingEmbedText(listing)
	require.Contains(t, text, "Go Intern")
	require.Contains(t, text, "production")
	require.NotContains(t, text, "**")
	require.NotContains(t, text, "#")
}

func TestListingEmbedTextDeterministic(t *testing.T) {
	listing := &model.Listing{Title: "Intern", Description: "plain text"}
	require.Equal(t, listingEmbedText(listing), listingEmbedText(listing))
}
