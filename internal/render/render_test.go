package render

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/commitlog/internal/conventional"
)

// fixtureChangeset aggregates a small, representative commit history.
func fixtureChangeset(t *testing.T) *conventional.Changeset {
	t.Helper()

	when := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	commits := []conventional.RawCommit{
		{
			Hash:    "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			Author:  "Alice",
			Email:   "alice@example.com",
			When:    when,
			Message: "feat(parser)!: add footer support",
		},
		{
			Hash:    "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			Author:  "Bob",
			Email:   "bob@example.com",
			When:    when.Add(time.Minute),
			Message: "fix: correct off-by-one in scope trimming",
		},
		{
			Hash:    "cccccccccccccccccccccccccccccccccccccccc",
			Author:  "Carol",
			Email:   "carol@example.com",
			When:    when.Add(2 * time.Minute),
			Message: "chore(deps): bump go-git",
		},
		{
			Hash:    "dddddddddddddddddddddddddddddddddddddddd",
			Author:  "Dave",
			Email:   "dave@example.com",
			When:    when.Add(3 * time.Minute),
			Message: "update README",
		},
	}

	return conventional.NewAggregator().Aggregate(commits)
}

func defaultOptions() Options {
	return Options{
		Labels:        map[string]string{"feat": "Features", "fix": "Bug Fixes"},
		BreakingLabel: "Breaking Changes",
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected Format
		wantErr  bool
	}{
		"markdown":      {input: "markdown", expected: FormatMarkdown},
		"json":          {input: "json", expected: FormatJSON},
		"yaml":          {input: "yaml", expected: FormatYAML},
		"csv":           {input: "csv", expected: FormatCSV},
		"raw":           {input: "raw", expected: FormatRaw},
		"mixed case":    {input: "Markdown", expected: FormatMarkdown},
		"padded":        {input: " json ", expected: FormatJSON},
		"unknown":       {input: "xml", wantErr: true},
		"empty":         {input: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := ParseFormat(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestNew_CoversEveryFormat(t *testing.T) {
	for _, f := range Formats() {
		r, err := New(f, Options{})
		require.NoError(t, err, string(f))
		assert.NotNil(t, r)
	}

	_, err := New(Format("xml"), Options{})
	assert.Error(t, err)
}

func TestMarkdownRenderer(t *testing.T) {
	r, err := New(FormatMarkdown, defaultOptions())
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, r.Render(fixtureChangeset(t), &b))
	out := b.String()

	assert.Contains(t, out, "## Changelog")
	assert.Contains(t, out, "### Features")
	assert.Contains(t, out, "### Breaking Changes")
	assert.Contains(t, out, "### Bug Fixes")
	assert.Contains(t, out, "### Chores")
	assert.Contains(t, out, "### Other Changes")
	assert.Contains(t, out, "- **parser**: add footer support by Alice (aaaaaaa)")
	assert.Contains(t, out, "- correct off-by-one in scope trimming by Bob (bbbbbbb)")
	assert.Contains(t, out, "- update README by Dave (ddddddd)")

	// Section order follows the standard category order.
	assert.Less(t, strings.Index(out, "### Features"), strings.Index(out, "### Bug Fixes"))
	assert.Less(t, strings.Index(out, "### Bug Fixes"), strings.Index(out, "### Breaking Changes"))
	assert.Less(t, strings.Index(out, "### Breaking Changes"), strings.Index(out, "### Other Changes"))
}

func TestMarkdownRenderer_IgnoreTypes(t *testing.T) {
	opts := defaultOptions()
	opts.IgnoreTypes = []string{"chore"}

	r, err := New(FormatMarkdown, opts)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, r.Render(fixtureChangeset(t), &b))

	assert.NotContains(t, b.String(), "### Chores")
	assert.NotContains(t, b.String(), "bump go-git")
}

func TestMarkdownRenderer_CustomBreakingLabel(t *testing.T) {
	opts := defaultOptions()
	opts.BreakingLabel = "Incompatible Changes"

	r, err := New(FormatMarkdown, opts)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, r.Render(fixtureChangeset(t), &b))

	assert.Contains(t, b.String(), "### Incompatible Changes")
}

func TestJSONRenderer(t *testing.T) {
	r, err := New(FormatJSON, defaultOptions())
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, r.Render(fixtureChangeset(t), &b))

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(b.String()), &records))
	require.Len(t, records, 4)

	first := records[0]
	assert.Equal(t, "Features", first["type"]) // label mapping applied
	assert.Equal(t, "parser", first["scope"])
	assert.Equal(t, "add footer support", first["description"])
	assert.Equal(t, true, first["breaking"])
	assert.Equal(t, "alice@example.com", first["committer"])
	assert.Equal(t, "2024-06-01T12:00:00Z", first["commit_time"])
	assert.ElementsMatch(t, []any{"feature", "breaking-change"}, first["categories"])

	last := records[3]
	assert.Equal(t, true, last["malformed"])
	assert.Equal(t, "update README", last["description"])
}

func TestYAMLRenderer(t *testing.T) {
	r, err := New(FormatYAML, defaultOptions())
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, r.Render(fixtureChangeset(t), &b))

	var records []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(b.String()), &records))
	require.Len(t, records, 4)
	assert.Equal(t, "Bug Fixes", records[1]["type"])
	assert.Equal(t, "correct off-by-one in scope trimming", records[1]["description"])
}

func TestCSVRenderer(t *testing.T) {
	opts := defaultOptions()
	opts.IgnoreTypes = []string{"chore"}

	r, err := New(FormatCSV, opts)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, r.Render(fixtureChangeset(t), &b))

	rows, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 rows (chore ignored)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "Features", rows[1][0])
	assert.Equal(t, "true", rows[1][4])
	assert.Equal(t, "feature;breaking-change", rows[1][9])
}

func TestRawRenderer(t *testing.T) {
	r, err := New(FormatRaw, defaultOptions())
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, r.Render(fixtureChangeset(t), &b))

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "add footer support")
}

func TestRender_EmptyChangeset(t *testing.T) {
	empty := conventional.NewAggregator().Aggregate(nil)

	for _, f := range Formats() {
		r, err := New(f, defaultOptions())
		require.NoError(t, err)

		var b strings.Builder
		assert.NoError(t, r.Render(empty, &b), string(f))
	}
}
