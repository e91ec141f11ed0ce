package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/commitlog/internal/conventional"
)

// markdownRenderer writes a human-readable changelog grouped by
// category, one section per non-empty group in standard category order.
type markdownRenderer struct {
	opts Options
}

// categoryHeadings holds the section headings for the markdown output.
// The breaking-changes heading comes from Options instead so projects
// can rename it without touching the rest.
var categoryHeadings = map[conventional.Category]string{
	conventional.Feature:       "Features",
	conventional.Fix:           "Bug Fixes",
	conventional.Documentation: "Documentation",
	conventional.Style:         "Styles",
	conventional.Refactor:      "Refactors",
	conventional.Performance:   "Performance Improvements",
	conventional.Test:          "Tests",
	conventional.Build:         "Build",
	conventional.CI:            "CI",
	conventional.Chore:         "Chores",
	conventional.Other:         "Other Changes",
}

func (r *markdownRenderer) Render(cs *conventional.Changeset, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "## Changelog"); err != nil {
		return err
	}

	for _, cat := range conventional.Categories() {
		if err := r.renderGroup(cat, cs.Group(cat), w); err != nil {
			return fmt.Errorf("rendering %s section: %w", cat, err)
		}
	}

	return nil
}

// renderGroup writes one category section, skipping it entirely when no
// entries survive the ignore list.
func (r *markdownRenderer) renderGroup(cat conventional.Category, entries []conventional.Entry, w io.Writer) error {
	var kept []conventional.Entry
	for _, entry := range entries {
		if !r.opts.Ignored(entry.Parsed.Type) {
			kept = append(kept, entry)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\n### %s\n\n", r.heading(cat)); err != nil {
		return err
	}

	for _, entry := range kept {
		if _, err := fmt.Fprintln(w, r.bullet(entry)); err != nil {
			return err
		}
	}

	return nil
}

// heading returns the section heading for a category.
func (r *markdownRenderer) heading(cat conventional.Category) string {
	if cat == conventional.BreakingChange && r.opts.BreakingLabel != "" {
		return r.opts.BreakingLabel
	}
	return categoryHeadings[cat]
}

// bullet formats one changelog line:
// "- scope: description by author (shorthash)".
func (r *markdownRenderer) bullet(entry conventional.Entry) string {
	var b strings.Builder
	b.WriteString("- ")
	if entry.Parsed.Scope != "" {
		b.WriteString("**" + entry.Parsed.Scope + "**: ")
	}
	b.WriteString(entry.Parsed.Description)
	if entry.Commit.Author != "" {
		b.WriteString(" by " + entry.Commit.Author)
	}
	if hash := shortHash(entry.Commit.Hash); hash != "" {
		b.WriteString(" (" + hash + ")")
	}
	return b.String()
}

// shortHash abbreviates a full commit hash to seven characters.
func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
