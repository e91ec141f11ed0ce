// Package render turns a conventional.Changeset into one of the
// supported output encodings. Each format has one Renderer
// implementation behind a shared interface; the core pipeline never
// branches on format. Display labels, ignored types and the
// breaking-changes heading are presentation concerns owned here, driven
// by Options.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/commitlog/internal/conventional"
)

// Format identifies an output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatRaw      Format = "raw"
)

// Formats returns every supported format identifier.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatJSON, FormatYAML, FormatCSV, FormatRaw}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (supported: markdown, json, yaml, csv, raw)", name)
}

// Options carries the presentation configuration shared by all renderers.
type Options struct {
	// Labels maps commit types to display labels (feat -> Features).
	// Types without an entry are shown verbatim.
	Labels map[string]string
	// IgnoreTypes lists commit types omitted from the output.
	IgnoreTypes []string
	// BreakingLabel is the heading for the breaking-changes group.
	BreakingLabel string
}

// Label returns the display label for a commit type.
func (o Options) Label(typ string) string {
	if label, ok := o.Labels[typ]; ok {
		return label
	}
	return typ
}

// Ignored reports whether entries of the given type are omitted.
func (o Options) Ignored(typ string) bool {
	for _, t := range o.IgnoreTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// Renderer writes one encoding of a changeset.
type Renderer interface {
	Render(cs *conventional.Changeset, w io.Writer) error
}

// New returns the Renderer for the given format.
func New(format Format, opts Options) (Renderer, error) {
	switch format {
	case FormatMarkdown:
		return &markdownRenderer{opts: opts}, nil
	case FormatJSON:
		return &jsonRenderer{opts: opts}, nil
	case FormatYAML:
		return &yamlRenderer{opts: opts}, nil
	case FormatCSV:
		return &csvRenderer{opts: opts}, nil
	case FormatRaw:
		return &rawRenderer{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
