// Package parser converts free-text command lines into structured engine
// actions for the human-facing drivers. Intentionally dumb: no NLP, just
// aliases and pattern matching.
package parser

import (
	"strings"

	"github.com/mkarlsen/fablecore/types"
)

var directionAliases = map[string]string{
	"n":     "north",
	"s":     "south",
	"e":     "east",
	"w":     "west",
	"north": "north",
	"south": "south",
	"east":  "east",
	"west":  "west",
}

var verbAliases = map[string]string{
	// Look / Examine
	"l":       types.ActionLook,
	"x":       types.ActionLook,
	"examine": types.ActionLook,
	"inspect": types.ActionLook,
	"check":   types.ActionLook,
	"study":   types.ActionLook,
	"observe": types.ActionLook,
	"read":    types.ActionLook,

	// Movement
	"go":      types.ActionMove,
	"walk":    types.ActionMove,
	"run":     types.ActionMove,
	"head":    types.ActionMove,
	"proceed": types.ActionMove,
	"travel":  types.ActionMove,

	// Take
	"get":   types.ActionTake,
	"grab":  types.ActionTake,
	"hold":  types.ActionTake,
	"carry": types.ActionTake,

	// Use
	"apply":   types.ActionUse,
	"combine": types.ActionUse,
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true,
	"with": true, "in": true, "from": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command line into an Action. Unknown verbs pass
// through unchanged; the engine answers those with its not-recognized
// response rather than the parser guessing.
func Parse(input string) types.Action {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return types.Action{Name: "", Params: map[string]string{}}
	}

	// Bare direction: "n", "south" → move.
	if len(words) == 1 {
		if dir, ok := directionAliases[words[0]]; ok {
			return action(types.ActionMove, types.ParamDirection, dir)
		}
	}

	words = expandMultiWordVerbs(words)

	verb := words[0]
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	rest := stripArticles(words[1:])

	switch verb {
	case types.ActionLook:
		target := strings.Join(stripLeadingPreposition(rest), " ")
		if target == "" {
			target = "room"
		}
		return action(types.ActionLook, types.ParamTarget, target)

	case types.ActionMove:
		dir := strings.Join(rest, " ")
		if alias, ok := directionAliases[dir]; ok {
			dir = alias
		}
		return action(types.ActionMove, types.ParamDirection, dir)

	case types.ActionTake:
		return action(types.ActionTake, types.ParamItem, strings.Join(rest, " "))

	case types.ActionUse:
		item, target := splitOnPreposition(rest)
		return types.Action{Name: types.ActionUse, Params: map[string]string{
			types.ParamItem:   item,
			types.ParamTarget: target,
		}}

	default:
		return types.Action{Name: verb, Params: map[string]string{}}
	}
}

func action(name, param, value string) types.Action {
	return types.Action{Name: name, Params: map[string]string{param: value}}
}

// expandMultiWordVerbs handles "look at", "pick up", etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	switch words[0] {
	case "look":
		if words[1] == "at" || words[1] == "in" || words[1] == "under" {
			return append([]string{"look"}, words[2:]...)
		}
	case "pick":
		if words[1] == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	}
	return words
}

func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// stripLeadingPreposition drops a single leading preposition ("look at X"
// after multi-word expansion leaves none, but "look towards X" style input
// still parses).
func stripLeadingPreposition(words []string) []string {
	if len(words) > 1 && prepositions[words[0]] {
		return words[1:]
	}
	return words
}

// splitOnPreposition splits words on the first preposition: "key on door"
// → ("key", "door"). Without a preposition everything is the item.
func splitOnPreposition(words []string) (item, target string) {
	for i, w := range words {
		if prepositions[w] {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
		}
	}
	return strings.Join(words, " "), ""
}
