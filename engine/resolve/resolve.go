// Package resolve maps free-text player queries to world entities.
//
// Collections are scanned in the order given; the first collection that
// yields any match settles the result, so callers encode gameplay priority
// (e.g. inventory before room contents) purely through argument order.
package resolve

import (
	"sort"
	"strings"

	"github.com/mkarlsen/fablecore/types"
)

// Kind discriminates the resolution result.
type Kind int

const (
	// NotFound means no candidate in any collection matched.
	NotFound Kind = iota
	// Found means exactly one candidate matched in the first collection
	// that produced any match.
	Found
	// Ambiguous means more than one candidate matched within that
	// collection.
	Ambiguous
)

// Result is the tagged outcome of a resolution. Entity is set only for
// Found; Matches only for Ambiguous.
type Result struct {
	Kind    Kind
	Entity  types.Referent
	Matches []types.Referent
}

// Collection is an ordered list of resolution candidates.
type Collection []types.Referent

// FromMap converts an id-keyed entity map into a Collection with a stable
// (id-sorted) order, so ambiguity listings are deterministic.
func FromMap[E types.Referent](m map[string]E) Collection {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	coll := make(Collection, 0, len(m))
	for _, id := range ids {
		coll = append(coll, m[id])
	}
	return coll
}

// Resolve finds the entity a query refers to. The query is split on
// whitespace; an entity matches if any query word is a case-insensitive
// substring of its name or of any of its tags. Matching is intentionally
// permissive so "sword" finds "Rusty Sword" and "crystal" finds anything
// tagged crystal.
func Resolve(query string, collections ...Collection) Result {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return Result{Kind: NotFound}
	}

	for _, coll := range collections {
		var matches []types.Referent
		for _, cand := range coll {
			if matchesWords(cand.Ref(), words) {
				matches = append(matches, cand)
			}
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return Result{Kind: Found, Entity: matches[0]}
		default:
			return Result{Kind: Ambiguous, Matches: matches}
		}
	}

	return Result{Kind: NotFound}
}

// Narrow re-filters ambiguous matches to those whose name or tags contain
// the literal (whole) query, for use in clarifying feedback. The per-word
// scan can pick up entities unrelated to what the player typed; echoing
// those back would only confuse. Falls back to the full list when nothing
// survives the stricter filter.
func Narrow(matches []types.Referent, query string) []types.Referent {
	literal := strings.ToLower(strings.TrimSpace(query))
	if literal == "" {
		return matches
	}
	var narrowed []types.Referent
	for _, m := range matches {
		if containsLiteral(m.Ref(), literal) {
			narrowed = append(narrowed, m)
		}
	}
	if len(narrowed) == 0 {
		return matches
	}
	return narrowed
}

func matchesWords(e *types.Entity, words []string) bool {
	name := strings.ToLower(e.Name)
	for _, w := range words {
		if strings.Contains(name, w) {
			return true
		}
		for _, tag := range e.Tags {
			if strings.Contains(strings.ToLower(tag), w) {
				return true
			}
		}
	}
	return false
}

func containsLiteral(e *types.Entity, literal string) bool {
	if strings.Contains(strings.ToLower(e.Name), literal) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), literal) {
			return true
		}
	}
	return false
}
