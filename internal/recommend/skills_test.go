package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "whitespace only", raw: "   ", want: []string{}},
		{name: "comma separated", raw: "Python, SQL, Excel", want: []string{"python", "sql", "excel"}},
		{name: "json array", raw: `["Python", "SQL"]`, want: []string{"python", "sql"}},
		{name: "python style list", raw: `['Python', 'SQL']`, want: []string{"python", "sql"}},
		{name: "mixed delimiters", raw: "Python; SQL | Excel / Tableau", want: []string{"python", "sql", "excel", "tableau"}},
		{name: "duplicates collapse", raw: "Python, python, PYTHON", want: []string{"python"}},
		{name: "single token fallback", raw: "Machine Learning", want: []string{"machine learning"}},
		{name: "broken brackets degrade", raw: "[Python, SQL", want: []string{"[python", "sql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseSkills(tt.raw))
		})
	}
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{"  Python ", "SQL", "sql", ""})
	require.Equal(t, []string{"python", "sql"}, got)
}
