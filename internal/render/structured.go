package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/commitlog/internal/conventional"
)

// jsonRenderer writes one indented JSON array with a record per commit.
type jsonRenderer struct {
	opts Options
}

func (r *jsonRenderer) Render(cs *conventional.Changeset, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.opts.records(cs)); err != nil {
		return fmt.Errorf("encoding JSON changelog: %w", err)
	}
	return nil
}

// yamlRenderer writes a YAML sequence with a record per commit.
type yamlRenderer struct {
	opts Options
}

func (r *yamlRenderer) Render(cs *conventional.Changeset, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(r.opts.records(cs)); err != nil {
		return fmt.Errorf("encoding YAML changelog: %w", err)
	}
	return nil
}

// csvRenderer writes a header row plus one row per commit. Category
// membership is joined with ";" to keep one row per commit.
type csvRenderer struct {
	opts Options
}

// csvHeader is the fixed column order of the CSV output.
var csvHeader = []string{
	"type", "scope", "description", "body", "breaking",
	"hash", "author", "committer", "commit_time", "categories",
}

func (r *csvRenderer) Render(cs *conventional.Changeset, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range r.opts.records(cs) {
		row := []string{
			rec.Type,
			rec.Scope,
			rec.Description,
			rec.Body,
			strconv.FormatBool(rec.Breaking),
			rec.Hash,
			rec.Author,
			rec.Committer,
			rec.CommitTime,
			joinCategories(rec.Categories),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", rec.Hash, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// joinCategories flattens the category list into one CSV cell.
func joinCategories(categories []string) string {
	out := ""
	for i, cat := range categories {
		if i > 0 {
			out += ";"
		}
		out += cat
	}
	return out
}

// rawRenderer dumps records as Go literals, a debugging aid.
type rawRenderer struct {
	opts Options
}

func (r *rawRenderer) Render(cs *conventional.Changeset, w io.Writer) error {
	for _, rec := range r.opts.records(cs) {
		if _, err := fmt.Fprintf(w, "%+v\n", rec); err != nil {
			return err
		}
	}
	return nil
}
