package conventional

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawCommit(hash, message string) RawCommit {
	return RawCommit{
		Hash:    hash,
		Author:  "Alice",
		Email:   "alice@example.com",
		When:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Message: message,
	}
}

func TestAggregate_GroupsByCategory(t *testing.T) {
	commits := []RawCommit{
		rawCommit("a1", "feat(parser): add footer support\n\nBREAKING CHANGE: footer token is now case-sensitive"),
		rawCommit("b2", "fix: correct off-by-one in scope trimming"),
		rawCommit("c3", "update README"),
		rawCommit("d4", "feat: add csv output"),
	}

	cs := NewAggregator().Aggregate(commits)

	require.Equal(t, 4, cs.Len())

	features := cs.Group(Feature)
	require.Len(t, features, 2)
	assert.Equal(t, "a1", features[0].Commit.Hash)
	assert.Equal(t, "d4", features[1].Commit.Hash)

	breaking := cs.Group(BreakingChange)
	require.Len(t, breaking, 1)
	assert.Equal(t, "a1", breaking[0].Commit.Hash)
	assert.True(t, breaking[0].Parsed.Breaking)

	fixes := cs.Group(Fix)
	require.Len(t, fixes, 1)
	assert.Equal(t, "b2", fixes[0].Commit.Hash)

	other := cs.Group(Other)
	require.Len(t, other, 1)
	assert.Equal(t, "c3", other[0].Commit.Hash)
	assert.True(t, other[0].Parsed.Malformed)
	assert.Equal(t, "update README", other[0].Parsed.Description)
}

func TestAggregate_NeverDropsACommit(t *testing.T) {
	var commits []RawCommit
	for i := 0; i < 20; i++ {
		var msg string
		switch i % 4 {
		case 0:
			msg = fmt.Sprintf("feat: change %d", i)
		case 1:
			msg = fmt.Sprintf("fix!: change %d", i)
		case 2:
			msg = fmt.Sprintf("nonsense %d", i)
		case 3:
			msg = fmt.Sprintf("chore(deps): change %d", i)
		}
		commits = append(commits, rawCommit(fmt.Sprintf("h%d", i), msg))
	}

	cs := NewAggregator().Aggregate(commits)

	require.Equal(t, len(commits), cs.Len())

	// Every input hash appears in at least one group, and group sizes sum
	// to at least the input count (breaking commits appear twice).
	grouped := make(map[string]bool)
	total := 0
	for _, cat := range Categories() {
		for _, entry := range cs.Group(cat) {
			grouped[entry.Commit.Hash] = true
			total++
		}
	}
	assert.Len(t, grouped, len(commits))
	assert.GreaterOrEqual(t, total, len(commits))
}

func TestAggregate_PreservesOrderWithinGroups(t *testing.T) {
	var commits []RawCommit
	for i := 0; i < 10; i++ {
		commits = append(commits, rawCommit(fmt.Sprintf("h%d", i), fmt.Sprintf("fix: change %d", i)))
	}

	cs := NewAggregator().Aggregate(commits)

	fixes := cs.Group(Fix)
	require.Len(t, fixes, 10)
	for i, entry := range fixes {
		assert.Equal(t, fmt.Sprintf("h%d", i), entry.Commit.Hash)
	}
}

func TestAggregate_EmptyRange(t *testing.T) {
	cs := NewAggregator().Aggregate(nil)

	assert.True(t, cs.IsEmpty())
	assert.Equal(t, 0, cs.Len())
	for _, cat := range Categories() {
		assert.Empty(t, cs.Group(cat))
	}
}

func TestAggregate_CustomClassifier(t *testing.T) {
	commits := []RawCommit{
		rawCommit("a1", "added: keyboard shortcuts"),
		rawCommit("b2", "feat: not in the vocabulary"),
	}

	classifier := NewClassifier(Table{"added": Feature})
	cs := NewAggregator(WithClassifier(classifier)).Aggregate(commits)

	require.Len(t, cs.Group(Feature), 1)
	assert.Equal(t, "a1", cs.Group(Feature)[0].Commit.Hash)
	require.Len(t, cs.Group(Other), 1)
	assert.Equal(t, "b2", cs.Group(Other)[0].Commit.Hash)
}

func TestAggregate_ParallelMatchesSequential(t *testing.T) {
	var commits []RawCommit
	for i := 0; i < 100; i++ {
		msg := fmt.Sprintf("feat(mod%d): change %d", i%7, i)
		if i%9 == 0 {
			msg = fmt.Sprintf("not conventional %d", i)
		}
		commits = append(commits, rawCommit(fmt.Sprintf("h%d", i), msg))
	}

	sequential := NewAggregator().Aggregate(commits)
	parallel := NewAggregator(WithParallelism(8)).Aggregate(commits)

	assert.Equal(t, sequential.Entries(), parallel.Entries())
	for _, cat := range Categories() {
		assert.Equal(t, sequential.Group(cat), parallel.Group(cat), cat.String())
	}
}
