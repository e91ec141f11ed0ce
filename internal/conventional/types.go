// Package conventional implements parsing and classification of commit
// messages following the Conventional Commits convention. It turns the raw
// commit history produced by the repository reader into an ordered,
// category-grouped changeset that the output renderers consume.
package conventional

import "time"

// RawCommit is one commit as produced by the repository reader.
// It is input-only and never mutated by this package.
type RawCommit struct {
	Hash    string
	Author  string
	Email   string
	When    time.Time
	Message string
}

// Footer is a single trailing token/value line from a commit message,
// e.g. "Reviewed-by: Alice" or "Refs #42".
type Footer struct {
	Token string
	Value string
}

// ParsedCommit is the structured form of one commit message.
//
// When Malformed is true the header did not match the grammar; only
// Description (the trimmed first line of the message) is populated and
// every other field holds its zero value.
type ParsedCommit struct {
	// Type is the commit type token, normalized to lower-case.
	Type string
	// Scope is the optional scope, preserved verbatim. Empty when absent.
	Scope string
	// Breaking is true when the header carried a "!" marker or a
	// BREAKING CHANGE / BREAKING-CHANGE footer is present.
	Breaking bool
	// Description is the header description, or the raw trimmed first
	// line for malformed commits.
	Description string
	// Body is the free-form text between the header and the footers.
	Body string
	// Footers holds the trailing token/value lines in message order.
	Footers []Footer
	// Malformed marks messages whose header did not match the grammar.
	Malformed bool
}

// Header reconstructs the canonical header line for a well-formed commit.
// Parsing the reconstructed header yields the same structured fields,
// except that footer-derived breaking flags become a "!" marker.
// For malformed commits it returns the raw description unchanged.
func (pc ParsedCommit) Header() string {
	if pc.Malformed {
		return pc.Description
	}
	h := pc.Type
	if pc.Scope != "" {
		h += "(" + pc.Scope + ")"
	}
	if pc.Breaking {
		h += "!"
	}
	return h + ": " + pc.Description
}

// Category is the semantic bucket a parsed commit is grouped under for
// changelog presentation.
type Category int

const (
	Feature Category = iota
	Fix
	BreakingChange
	Documentation
	Style
	Refactor
	Performance
	Test
	Build
	CI
	Chore
	Other
)

// categoryNames maps categories to their canonical identifiers, used in
// structured output and configuration. Display labels are a renderer
// concern and live outside this package.
var categoryNames = map[Category]string{
	Feature:        "feature",
	Fix:            "fix",
	BreakingChange: "breaking-change",
	Documentation:  "documentation",
	Style:          "style",
	Refactor:       "refactor",
	Performance:    "performance",
	Test:           "test",
	Build:          "build",
	CI:             "ci",
	Chore:          "chore",
	Other:          "other",
}

// String returns the canonical identifier for the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "other"
}

// ParseCategory resolves a canonical category identifier back to its
// Category value. Returns false for unknown identifiers.
func ParseCategory(name string) (Category, bool) {
	for cat, n := range categoryNames {
		if n == name {
			return cat, true
		}
	}
	return Other, false
}

// Categories returns all categories in their standard presentation order.
func Categories() []Category {
	return []Category{
		Feature, Fix, BreakingChange, Documentation, Style, Refactor,
		Performance, Test, Build, CI, Chore, Other,
	}
}

// Entry pairs one parsed commit with the metadata of the raw commit it
// came from, so renderers can show hash, author and date alongside the
// parsed fields.
type Entry struct {
	Commit     RawCommit
	Parsed     ParsedCommit
	Categories []Category
}

// Changeset is the grouped result for one invocation's ref range.
// Groups preserve the relative order in which commits arrived from the
// repository reader. A Changeset is immutable once built; callers must
// not modify the returned slices.
type Changeset struct {
	groups  map[Category][]Entry
	entries []Entry
}

// Entries returns every entry in arrival order, one per input commit.
func (cs *Changeset) Entries() []Entry {
	return cs.entries
}

// Group returns the entries classified under the given category, in
// arrival order. Returns nil when the group is empty.
func (cs *Changeset) Group(c Category) []Entry {
	return cs.groups[c]
}

// Len returns the number of input commits represented in the changeset.
func (cs *Changeset) Len() int {
	return len(cs.entries)
}

// IsEmpty reports whether the changeset holds no commits at all.
// An empty ref range yields an empty, valid changeset.
func (cs *Changeset) IsEmpty() bool {
	return len(cs.entries) == 0
}
