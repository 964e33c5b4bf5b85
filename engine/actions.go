package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mkarlsen/fablecore/engine/resolve"
	"github.com/mkarlsen/fablecore/engine/rules"
	"github.com/mkarlsen/fablecore/types"
)

// actionLook renders the room, the exits, or a single resolved entity.
// Look never mutates state: issuing it twice yields identical feedback.
func (g *Game) actionLook(room *types.Room, target string) *types.StepResult {
	query := strings.TrimSpace(target)
	lower := strings.ToLower(query)

	switch lower {
	case "", "room", "around", "surroundings", strings.ToLower(room.Name):
		return g.state(g.renderRoom(room))
	case "exits":
		return g.state(renderExits(room))
	}

	// Priority: features, then room items, then inventory, then characters.
	res := resolve.Resolve(query,
		resolve.FromMap(room.Features),
		resolve.FromMap(room.Items),
		resolve.FromMap(g.sess.Inventory),
		resolve.FromMap(room.Characters),
	)

	switch res.Kind {
	case resolve.Found:
		e := res.Entity.Ref()
		where := "in this room"
		if g.sess.HasItem(e.ID) {
			where = "in your inventory"
		}
		return g.state(fmt.Sprintf("%s (%s): %s", e.Name, where, e.Description))
	case resolve.Ambiguous:
		return g.state(clarify(query, res.Matches))
	default:
		return g.state(fmt.Sprintf("You don't see any %q here.", query))
	}
}

// actionMove attempts to leave the room through one of the four exits,
// after checking the trap table bound to (room, direction).
func (g *Game) actionMove(room *types.Room, direction string) *types.StepResult {
	dirStr := strings.ToLower(strings.TrimSpace(direction))
	if dirStr == "" {
		return g.state("Move where?")
	}

	dir, ok := types.ParseDirection(dirStr)
	if ok {
		if _, exists := room.Exits[dir]; !exists {
			ok = false
		}
	}
	if !ok {
		return g.state(fmt.Sprintf("You cannot move %s.", dirStr))
	}

	// Fatal preconditions end the game without moving; score is frozen.
	if trap := rules.Trap(g.world, g.sess, room.ID, dir); trap != nil {
		return g.terminal(false, trap.DeathText)
	}

	exit := room.Exits[dir]
	g.sess.MoveTo(exit.TargetRoomID)
	next := g.world.Rooms[exit.TargetRoomID]
	return g.state(fmt.Sprintf("You move %s.\n\n%s", dir, g.renderRoom(next)))
}

// actionTake transfers an item from the room to the inventory, subject to
// the take-precondition table. Held items take resolution priority so the
// player gets "already have it" rather than a room miss.
func (g *Game) actionTake(room *types.Room, item string) *types.StepResult {
	query := strings.TrimSpace(item)
	if query == "" {
		return g.state("Take what?")
	}

	held := resolve.Resolve(query, resolve.FromMap(g.sess.Inventory))
	switch held.Kind {
	case resolve.Found:
		return g.state(fmt.Sprintf("You already have the %s.", held.Entity.Ref().Name))
	case resolve.Ambiguous:
		return g.state(clarify(query, held.Matches))
	}

	res := resolve.Resolve(query, resolve.FromMap(room.Items))
	switch res.Kind {
	case resolve.NotFound:
		return g.state(fmt.Sprintf("You don't see any %q here.", query))
	case resolve.Ambiguous:
		return g.state(clarify(query, res.Matches))
	}

	target := res.Entity.(*types.Item)
	if !target.Takeable {
		return g.state(fmt.Sprintf("You can't take the %s.", target.Name))
	}

	outcome := rules.EvaluateTake(g.world, g.sess, target)
	if outcome.Fatal {
		return g.terminal(false, outcome.DeathText)
	}

	if outcome.Win {
		g.sess.AddScore(outcome.Points)
		return g.terminal(true, outcome.WinText)
	}

	// Atomic transfer: the item leaves the room and enters the inventory in
	// the same step, never existing in both or neither.
	delete(room.Items, target.ID)
	g.sess.Inventory[target.ID] = target
	g.sess.AddScore(outcome.Points)

	feedback := fmt.Sprintf("You take the %s.", target.Name)
	if outcome.Points > 0 {
		feedback += fmt.Sprintf(" (+%d points: %s)", outcome.Points, outcome.Reason)
	}
	return g.state(feedback)
}

// actionUse applies an (item, target) effect from the use table. The item
// must be held; the target search is layered: exact name match against room
// items, features, then characters, falling back to fuzzy resolution across
// inventory and all room contents.
func (g *Game) actionUse(room *types.Room, item, target string) *types.StepResult {
	itemQuery := strings.TrimSpace(item)
	targetQuery := strings.TrimSpace(target)
	if itemQuery == "" || targetQuery == "" {
		return g.state("Use what on what?")
	}

	held := resolve.Resolve(itemQuery, resolve.FromMap(g.sess.Inventory))
	switch held.Kind {
	case resolve.NotFound:
		return g.state(fmt.Sprintf("You don't have any %q.", itemQuery))
	case resolve.Ambiguous:
		return g.state(clarify(itemQuery, held.Matches))
	}
	used := held.Entity.Ref()

	subject := findUseTarget(g, room, targetQuery)
	switch subject.Kind {
	case resolve.NotFound:
		return g.state(fmt.Sprintf("You don't see any %q here.", targetQuery))
	case resolve.Ambiguous:
		return g.state(clarify(targetQuery, subject.Matches))
	}
	tgt := subject.Entity.Ref()

	rule, ok := rules.FindUse(g.world, used.ID, tgt.ID)
	if !ok {
		return g.state(fmt.Sprintf("You can't figure out how to use the %s on the %s.", used.Name, tgt.Name))
	}
	return g.state(rules.ApplyUse(g.world, g.sess, rule))
}

// findUseTarget implements the layered use-target search.
func findUseTarget(g *Game, room *types.Room, query string) resolve.Result {
	lower := strings.ToLower(query)
	for _, it := range room.Items {
		if strings.ToLower(it.Name) == lower {
			return resolve.Result{Kind: resolve.Found, Entity: it}
		}
	}
	for _, f := range room.Features {
		if strings.ToLower(f.Name) == lower {
			return resolve.Result{Kind: resolve.Found, Entity: f}
		}
	}
	for _, ch := range room.Characters {
		if strings.ToLower(ch.Name) == lower {
			return resolve.Result{Kind: resolve.Found, Entity: ch}
		}
	}
	return resolve.Resolve(query,
		resolve.FromMap(g.sess.Inventory),
		resolve.FromMap(room.Items),
		resolve.FromMap(room.Features),
		resolve.FromMap(room.Characters),
	)
}

// clarify builds the ambiguity question, narrowing the candidate list to
// entities that contain the literal query.
func clarify(query string, matches []types.Referent) string {
	narrowed := resolve.Narrow(matches, query)
	names := make([]string, 0, len(narrowed))
	for _, m := range narrowed {
		names = append(names, m.Ref().Name)
	}
	return fmt.Sprintf("Which %s do you mean: %s?", query, strings.Join(names, ", "))
}

// renderRoom produces the standard room text: description, visible items,
// features, characters, and exit directions, in deterministic order.
func (g *Game) renderRoom(room *types.Room) string {
	var b strings.Builder
	b.WriteString(room.Name)
	b.WriteString("\n")
	b.WriteString(room.Description)

	if line := nameList("You see", itemNames(room.Items)); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if line := nameList("Nearby", featureNames(room.Features)); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if line := nameList("Here with you", characterNames(room.Characters)); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	dirs := exitDirections(room)
	if len(dirs) > 0 {
		b.WriteString("\nExits: ")
		b.WriteString(strings.Join(dirs, ", "))
		b.WriteString(".")
	}
	return b.String()
}

// renderExits lists exit descriptions, or reports that none are visible.
func renderExits(room *types.Room) string {
	if len(room.Exits) == 0 {
		return "There are no visible exits."
	}
	var lines []string
	for _, dir := range types.Directions {
		exit, ok := room.Exits[dir]
		if !ok {
			continue
		}
		desc := exit.Description
		if desc == "" {
			desc = exit.Name
		}
		lines = append(lines, fmt.Sprintf("%s: %s", dir, desc))
	}
	return strings.Join(lines, "\n")
}

func itemNames(items map[string]*types.Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func featureNames(features map[string]*types.Feature) []string {
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.Name)
	}
	return names
}

func characterNames(characters map[string]*types.Character) []string {
	names := make([]string, 0, len(characters))
	for _, ch := range characters {
		names = append(names, ch.Name)
	}
	return names
}

func exitDirections(room *types.Room) []string {
	var dirs []string
	for _, dir := range types.Directions {
		if _, ok := room.Exits[dir]; ok {
			dirs = append(dirs, string(dir))
		}
	}
	return dirs
}

// nameList builds "Label: a, b, c." in sorted order, or "" when empty.
func nameList(label string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return label + ": " + strings.Join(names, ", ") + "."
}
