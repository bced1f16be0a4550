// Package rhyme groups the words of a transcript into rhyme groups
// using the phonetic lexicon's last-syllable comparison.
package rhyme

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/loonix/cadence/lexicon"
	"go.uber.org/zap"
)

// Group is a set of two or more words sharing a last syllable. The
// first member is the group's representative: every later candidate is
// tested against it alone, so membership is not transitive across the
// whole group. That matches the grouping behavior callers see and is
// kept on purpose.
type Group struct {
	ID      int
	Members []string
}

// Grouper assigns rhyme groups over one word list at a time. State is
// reset on every Detect call; it is not safe for concurrent use.
type Grouper struct {
	log      *zap.Logger
	lexicons *lexicon.Service

	groups []*Group
	byWord map[string]int
}

type GrouperOptions struct {
	ParentLogger *zap.Logger
	Lexicons     *lexicon.Service
}

func NewGrouper(options GrouperOptions) *Grouper {
	g := &Grouper{
		log:      zap.NewNop(),
		lexicons: options.Lexicons,
		byWord:   map[string]int{},
	}
	if options.ParentLogger != nil {
		g.log = options.ParentLogger.Named("rhyme")
	}
	return g
}

// Detect runs a single grouping pass over words and returns a mapping
// from word index to rhyme group id.
//
// Each new word is compared against the representative (first member)
// of every existing group in creation order; the first match wins. A
// word form that was already assigned earlier in the pass is skipped
// entirely, so a repeated word gets no fresh index entry — callers
// resolve recurring words through ByWord. Groups left with a single
// member at the end are pruned along with their index entries.
func (g *Grouper) Detect(words []string, language lexicon.Language) (map[int]int, error) {
	g.groups = nil
	g.byWord = map[string]int{}

	assignments := map[int]int{}

	for i, word := range words {
		if utf8.RuneCountInString(word) < 2 {
			continue
		}

		form := strings.ToLower(word)
		if _, seen := g.byWord[form]; seen {
			continue
		}

		matched := false
		for _, group := range g.groups {
			rhymes, err := g.lexicons.Rhymes(form, group.Members[0], language)
			if err != nil {
				return nil, fmt.Errorf("testing rhyme: %w", err)
			}
			if rhymes {
				group.Members = append(group.Members, form)
				g.byWord[form] = group.ID
				assignments[i] = group.ID
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		pronunciation, err := g.lexicons.Pronunciation(form, language)
		if err != nil {
			return nil, fmt.Errorf("looking up pronunciation: %w", err)
		}
		if pronunciation == "" {
			continue
		}

		group := &Group{
			ID:      len(g.groups) + 1,
			Members: []string{form},
		}
		g.groups = append(g.groups, group)
		g.byWord[form] = group.ID
		assignments[i] = group.ID
	}

	// Prune solo groups and their assignments.
	surviving := g.groups[:0]
	pruned := map[int]struct{}{}
	for _, group := range g.groups {
		if len(group.Members) < 2 {
			pruned[group.ID] = struct{}{}
			delete(g.byWord, group.Members[0])
			continue
		}
		surviving = append(surviving, group)
	}
	g.groups = surviving

	for i, id := range assignments {
		if _, ok := pruned[id]; ok {
			delete(assignments, i)
		}
	}

	g.log.With(
		zap.Int("words", len(words)),
		zap.Int("groups", len(g.groups)),
	).Debug("rhyme detection done")

	return assignments, nil
}

// Groups returns the surviving groups from the most recent Detect run,
// in creation order.
func (g *Grouper) Groups() []Group {
	groups := make([]Group, 0, len(g.groups))
	for _, group := range g.groups {
		groups = append(groups, Group{
			ID:      group.ID,
			Members: append([]string(nil), group.Members...),
		})
	}
	return groups
}

// ByWord returns the group id assigned to a word form in the most
// recent run, or 0 if the word ended up in no group.
func (g *Grouper) ByWord(word string) int {
	return g.byWord[strings.ToLower(word)]
}

// IsRhyming reports whether the word belongs to a surviving group from
// the most recent run.
func (g *Grouper) IsRhyming(word string) bool {
	return g.ByWord(word) != 0
}

// RhymingWords returns the other members of the word's group from the
// most recent run.
func (g *Grouper) RhymingWords(word string) []string {
	id := g.ByWord(word)
	if id == 0 {
		return nil
	}

	form := strings.ToLower(word)
	for _, group := range g.groups {
		if group.ID != id {
			continue
		}
		others := make([]string, 0, len(group.Members)-1)
		for _, member := range group.Members {
			if member != form {
				others = append(others, member)
			}
		}
		return others
	}
	return nil
}
