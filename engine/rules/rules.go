// Package rules interprets the declarative trap, take, and use tables that a
// world ships with. The action handlers stay free of game-content knowledge;
// everything special-cased lives in map data and is dispatched here.
package rules

import (
	"github.com/mkarlsen/fablecore/engine/session"
	"github.com/mkarlsen/fablecore/types"
)

// Trap returns the trap rule bound to (roomID, dir) whose required item the
// player is missing, or nil when the move is safe. A trap with an empty
// RequiredItemID is unconditional.
func Trap(world *types.GameMap, sess *session.Session, roomID string, dir types.Direction) *types.TrapRule {
	for i := range world.Traps {
		rule := &world.Traps[i]
		if rule.RoomID != roomID || rule.Direction != dir {
			continue
		}
		if rule.RequiredItemID != "" && sess.HasItem(rule.RequiredItemID) {
			continue
		}
		return rule
	}
	return nil
}

// TakeOutcome is the verdict of the take-precondition table for one item.
type TakeOutcome struct {
	Fatal     bool
	DeathText string
	Win       bool
	WinText   string
	Points    int
	Reason    string
}

// EvaluateTake checks the take table for the item. When no rule is bound,
// the outcome is the default transfer with the item's own point value.
func EvaluateTake(world *types.GameMap, sess *session.Session, item *types.Item) TakeOutcome {
	out := TakeOutcome{Points: item.Points, Reason: "picked up " + item.Name}

	rule, ok := world.Takes[item.ID]
	if !ok {
		return out
	}

	for _, required := range rule.RequiredItemIDs {
		if !sess.HasItem(required) {
			return TakeOutcome{Fatal: true, DeathText: rule.DeathText}
		}
	}

	if rule.Points > 0 {
		out.Points = rule.Points
	}
	if rule.Reason != "" {
		out.Reason = rule.Reason
	}
	if rule.Win {
		out.Win = true
		out.WinText = rule.WinText
	}
	return out
}

// FindUse looks up the use-effect bound to an (item, target) pair.
func FindUse(world *types.GameMap, itemID, targetID string) (types.UseRule, bool) {
	for _, rule := range world.Uses {
		if rule.ItemID == itemID && rule.TargetID == targetID {
			return rule, true
		}
	}
	return types.UseRule{}, false
}

// ApplyUse applies one use-effect: optional permanent description mutation,
// optional destruction of the acting item and/or an item target. Returns the
// narrative text. Use effects never end the game.
func ApplyUse(world *types.GameMap, sess *session.Session, rule types.UseRule) string {
	if rule.DescribeID != "" && rule.NewDescription != "" {
		if e := findEntity(world, rule.DescribeID); e != nil {
			e.Description = rule.NewDescription
		}
	}

	if rule.ConsumeItem {
		destroyItem(world, sess, rule.ItemID)
	}
	if rule.ConsumeTarget {
		destroyItem(world, sess, rule.TargetID)
	}

	return rule.Text
}

// destroyItem removes an item from wherever it currently lives (inventory or
// a room) and records it as destroyed. Features and characters cannot be
// destroyed; unknown ids are ignored.
func destroyItem(world *types.GameMap, sess *session.Session, itemID string) {
	if _, ok := world.Catalog[itemID]; !ok {
		return
	}
	delete(sess.Inventory, itemID)
	for _, room := range world.Rooms {
		delete(room.Items, itemID)
	}
	sess.Destroyed[itemID] = true
}

// findEntity locates a mutable entity by id: catalog items first (covers
// inventory and placed items, which share the catalog object), then room
// features and characters.
func findEntity(world *types.GameMap, id string) *types.Entity {
	if item, ok := world.Catalog[id]; ok {
		return &item.Entity
	}
	for _, room := range world.Rooms {
		if f, ok := room.Features[id]; ok {
			return &f.Entity
		}
		if ch, ok := room.Characters[id]; ok {
			return &ch.Entity
		}
	}
	return nil
}
