package render

import (
	"time"

	"github.com/ariel-frischer/commitlog/internal/conventional"
)

// record is the flattened per-commit row shared by the structured
// formats (json, yaml, csv). One record per input commit, in arrival
// order; category membership is carried as a list instead of duplicating
// rows.
type record struct {
	Type        string   `json:"type" yaml:"type"`
	Scope       string   `json:"scope,omitempty" yaml:"scope,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Body        string   `json:"body,omitempty" yaml:"body,omitempty"`
	Breaking    bool     `json:"breaking" yaml:"breaking"`
	Malformed   bool     `json:"malformed,omitempty" yaml:"malformed,omitempty"`
	Hash        string   `json:"hash" yaml:"hash"`
	Author      string   `json:"author" yaml:"author"`
	Committer   string   `json:"committer" yaml:"committer"`
	CommitTime  string   `json:"commit_time" yaml:"commit_time"`
	Categories  []string `json:"categories" yaml:"categories"`
}

// records flattens a changeset into rows, applying the ignore list and
// the type label mapping.
func (o Options) records(cs *conventional.Changeset) []record {
	records := make([]record, 0, cs.Len())
	for _, entry := range cs.Entries() {
		if o.Ignored(entry.Parsed.Type) {
			continue
		}

		categories := make([]string, 0, len(entry.Categories))
		for _, cat := range entry.Categories {
			categories = append(categories, cat.String())
		}

		records = append(records, record{
			Type:        o.Label(entry.Parsed.Type),
			Scope:       entry.Parsed.Scope,
			Description: entry.Parsed.Description,
			Body:        entry.Parsed.Body,
			Breaking:    entry.Parsed.Breaking,
			Malformed:   entry.Parsed.Malformed,
			Hash:        entry.Commit.Hash,
			Author:      entry.Commit.Author,
			Committer:   entry.Commit.Email,
			CommitTime:  entry.Commit.When.Format(time.RFC3339),
			Categories:  categories,
		})
	}
	return records
}
