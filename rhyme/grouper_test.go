package rhyme

import (
	"reflect"
	"testing"

	"github.com/loonix/cadence/lexicon"
)

func testGrouper(t *testing.T) *Grouper {
	t.Helper()

	lexicons, err := lexicon.NewServiceFromDocuments(lexicon.ServiceOptions{},
		&lexicon.Document{
			Language: "en",
			Pronunciations: map[string]string{
				"cat":   "K AE1 T",
				"hat":   "HH AE1 T",
				"rat":   "R AE1 T",
				"time":  "T AY1 M",
				"rhyme": "R AY1 M",
				"go":    "G OW1",
				"at":    "AE1 T",
			},
		},
	)
	if err != nil {
		t.Fatalf("building lexicons: %v", err)
	}

	return NewGrouper(GrouperOptions{Lexicons: lexicons})
}

func TestDetect_SingleGroup(t *testing.T) {
	g := testGrouper(t)

	assignments, err := g.Detect([]string{"cat", "hat", "rat"}, lexicon.English)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	want := map[int]int{0: 1, 1: 1, 2: 1}
	if !reflect.DeepEqual(assignments, want) {
		t.Errorf("assignments = %v, want %v", assignments, want)
	}

	groups := g.Groups()
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].ID != 1 {
		t.Errorf("group id = %d, want 1", groups[0].ID)
	}
	if !reflect.DeepEqual(groups[0].Members, []string{"cat", "hat", "rat"}) {
		t.Errorf("members = %v, want [cat hat rat]", groups[0].Members)
	}
}

func TestDetect_MultipleGroupsSequentialIDs(t *testing.T) {
	g := testGrouper(t)

	assignments, err := g.Detect([]string{"cat", "time", "hat", "rhyme"}, lexicon.English)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	want := map[int]int{0: 1, 1: 2, 2: 1, 3: 2}
	if !reflect.DeepEqual(assignments, want) {
		t.Errorf("assignments = %v, want %v", assignments, want)
	}
}

func TestDetect_PrunesSoloGroups(t *testing.T) {
	g := testGrouper(t)

	// "go" starts a group no one joins; it must be pruned along with
	// its index entry.
	assignments, err := g.Detect([]string{"go", "cat", "hat"}, lexicon.English)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	if _, ok := assignments[0]; ok {
		t.Error("solo word kept its assignment after pruning")
	}
	for _, group := range g.Groups() {
		if len(group.Members) < 2 {
			t.Errorf("surviving group %d has %d members", group.ID, len(group.Members))
		}
	}
	if g.IsRhyming("go") {
		t.Error("pruned word still reported as rhyming")
	}
}

func TestDetect_SkipsShortWords(t *testing.T) {
	g := testGrouper(t)

	// One-character words are skipped; two characters is enough to
	// participate.
	assignments, err := g.Detect([]string{"a", "cat", "hat", "at"}, lexicon.English)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	if _, ok := assignments[0]; ok {
		t.Error("one-character word got an assignment")
	}
	if assignments[3] != 1 {
		t.Errorf("two-character word assignment = %d, want 1", assignments[3])
	}
}

func TestDetect_RepeatedWordGetsNoFreshIndexEntry(t *testing.T) {
	g := testGrouper(t)

	assignments, err := g.Detect([]string{"cat", "hat", "cat"}, lexicon.English)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	if _, ok := assignments[2]; ok {
		t.Error("repeated word received its own index entry")
	}
	// The recurrence resolves by word form instead.
	if g.ByWord("cat") != 1 {
		t.Errorf("ByWord(cat) = %d, want 1", g.ByWord("cat"))
	}

	groups := g.Groups()
	if len(groups) != 1 || len(groups[0].Members) != 2 {
		t.Fatalf("expected one group of 2, got %v", groups)
	}
}

func TestDetect_CaseInsensitiveDedup(t *testing.T) {
	g := testGrouper(t)

	assignments, err := g.Detect([]string{"Cat", "hat", "CAT"}, lexicon.English)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	if assignments[0] != 1 {
		t.Errorf("assignment for 'Cat' = %d, want 1", assignments[0])
	}
	if _, ok := assignments[2]; ok {
		t.Error("case variant treated as a new word")
	}
}

func TestDetect_UnknownWordsStartNoGroup(t *testing.T) {
	g := testGrouper(t)

	assignments, err := g.Detect([]string{"xyzzy", "qwerty"}, lexicon.English)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(assignments) != 0 {
		t.Errorf("assignments = %v, want none", assignments)
	}
	if len(g.Groups()) != 0 {
		t.Errorf("groups = %v, want none", g.Groups())
	}
}

func TestDetect_ResetsBetweenRuns(t *testing.T) {
	g := testGrouper(t)

	if _, err := g.Detect([]string{"cat", "hat"}, lexicon.English); err != nil {
		t.Fatalf("first detect: %v", err)
	}
	assignments, err := g.Detect([]string{"time", "rhyme"}, lexicon.English)
	if err != nil {
		t.Fatalf("second detect: %v", err)
	}

	// Ids restart at 1 and state from the first run is gone.
	if assignments[0] != 1 {
		t.Errorf("assignment = %d, want 1 after reset", assignments[0])
	}
	if g.IsRhyming("cat") {
		t.Error("state from previous run leaked")
	}
}

func TestDetect_UnloadedLanguage(t *testing.T) {
	g := testGrouper(t)

	if _, err := g.Detect([]string{"cat", "hat"}, lexicon.Language("fr")); err == nil {
		t.Fatal("expected error for unloaded language")
	}
}

func TestRhymingWords(t *testing.T) {
	g := testGrouper(t)

	if _, err := g.Detect([]string{"cat", "hat", "rat"}, lexicon.English); err != nil {
		t.Fatalf("detect: %v", err)
	}

	others := g.RhymingWords("hat")
	if !reflect.DeepEqual(others, []string{"cat", "rat"}) {
		t.Errorf("RhymingWords(hat) = %v, want [cat rat]", others)
	}
	if got := g.RhymingWords("xyzzy"); got != nil {
		t.Errorf("RhymingWords(xyzzy) = %v, want nil", got)
	}
}
