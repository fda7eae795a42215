package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	md := "# Data Intern\n\nWork with **pandas** and `sql`.\n\n- remote friendly\n- flexible hours"
	got := PlainText(md)
	require.Contains(t, got, "Data Intern")
	require.Contains(t, got, "Work with pandas and sql.")
	require.Contains(t, got, "remote friendly")
	require.NotContains(t, got, "#")
	require.NotContains(t, got, "**")
}

func TestPlainTextPlainInputUnchanged(t *testing.T) {
	require.Equal(t, "just a sentence", PlainText("just a sentence"))
	require.Equal(t, "", PlainText(""))
}
