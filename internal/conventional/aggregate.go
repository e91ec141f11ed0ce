package conventional

import "golang.org/x/sync/errgroup"

// Aggregator turns an ordered sequence of raw commits into a Changeset.
// Parsing and classification are independent per commit, so the
// aggregator can parse concurrently; results are rejoined in input order
// before grouping, so the observable behavior never depends on the
// parallelism setting.
type Aggregator struct {
	classifier  *Classifier
	parallelism int
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithClassifier sets the classifier used for category assignment.
func WithClassifier(c *Classifier) AggregatorOption {
	return func(a *Aggregator) {
		if c != nil {
			a.classifier = c
		}
	}
}

// WithParallelism sets the number of commits parsed concurrently.
// Values below 2 select the sequential path.
func WithParallelism(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n >= 1 {
			a.parallelism = n
		}
	}
}

// NewAggregator creates an Aggregator with the default classifier and
// sequential parsing.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		classifier:  NewClassifier(nil),
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate parses and classifies every commit in order and groups the
// results by category. Every input commit yields exactly one entry,
// malformed or not; nothing is dropped. Within each group the relative
// commit order matches the input order. An empty input yields an empty,
// valid Changeset.
func (a *Aggregator) Aggregate(commits []RawCommit) *Changeset {
	parsed := a.parseAll(commits)

	cs := &Changeset{
		groups:  make(map[Category][]Entry),
		entries: make([]Entry, 0, len(commits)),
	}

	for i, commit := range commits {
		entry := Entry{
			Commit:     commit,
			Parsed:     parsed[i],
			Categories: a.classifier.CategoriesFor(parsed[i]),
		}
		cs.entries = append(cs.entries, entry)

		seen := make(map[Category]bool, len(entry.Categories))
		for _, cat := range entry.Categories {
			if seen[cat] {
				continue
			}
			seen[cat] = true
			cs.groups[cat] = append(cs.groups[cat], entry)
		}
	}

	return cs
}

// parseAll parses every message, sequentially or with a bounded worker
// group. Results land at the index of their source commit, preserving
// input order regardless of completion order.
func (a *Aggregator) parseAll(commits []RawCommit) []ParsedCommit {
	parsed := make([]ParsedCommit, len(commits))

	if a.parallelism < 2 || len(commits) < 2 {
		for i, commit := range commits {
			parsed[i] = Parse(commit.Message)
		}
		return parsed
	}

	var g errgroup.Group
	g.SetLimit(a.parallelism)
	for i, commit := range commits {
		// Copy loop variables: the go directive predates Go 1.22 per-iteration
		// loop variable semantics, so each goroutine needs its own copy.
		i, commit := i, commit
		g.Go(func() error {
			parsed[i] = Parse(commit.Message)
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()

	return parsed
}
