package conventional

// Table maps commit type tokens (lower-case) to categories. It is the
// vocabulary a Classifier operates on; any type missing from the table
// classifies as Other.
type Table map[string]Category

// DefaultTable returns the standard Conventional Commits vocabulary.
func DefaultTable() Table {
	return Table{
		"feat":     Feature,
		"fix":      Fix,
		"docs":     Documentation,
		"style":    Style,
		"refactor": Refactor,
		"perf":     Performance,
		"test":     Test,
		"build":    Build,
		"ci":       CI,
		"chore":    Chore,
	}
}

// Classifier maps parsed commits to categories using an immutable
// type-to-category table. Projects with a custom type vocabulary inject
// their own table; parsing is unaffected.
type Classifier struct {
	table Table
}

// NewClassifier creates a Classifier over a copy of the given table.
// A nil table selects DefaultTable.
func NewClassifier(table Table) *Classifier {
	if table == nil {
		table = DefaultTable()
	}
	copied := make(Table, len(table))
	for typ, cat := range table {
		copied[typ] = cat
	}
	return &Classifier{table: copied}
}

// Classify maps a type token to its category. It is total and
// deterministic: every input yields exactly one category, and unknown
// types always map to Other.
func (c *Classifier) Classify(typ string) Category {
	if cat, ok := c.table[typ]; ok {
		return cat
	}
	return Other
}

// CategoriesFor returns every category the commit surfaces under.
// Malformed commits go to Other. Breaking commits additionally appear
// under BreakingChange regardless of their type-derived category, so a
// commit can belong to two groups. The result never contains duplicates.
func (c *Classifier) CategoriesFor(pc ParsedCommit) []Category {
	if pc.Malformed {
		return []Category{Other}
	}

	cats := []Category{c.Classify(pc.Type)}
	if pc.Breaking && cats[0] != BreakingChange {
		cats = append(cats, BreakingChange)
	}
	return cats
}
