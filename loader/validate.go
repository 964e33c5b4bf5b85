package loader

import (
	"fmt"
	"strings"

	"github.com/mkarlsen/fablecore/types"
)

// ValidationError collects all referential problems found in a compiled
// world so authors fix everything in one pass.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("world validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks a built world for referential integrity: the start room
// exists, every exit target exists, and every rule references defined
// content.
func validate(world *types.GameMap) error {
	ve := &ValidationError{}

	if world.Title == "" {
		ve.Errors = append(ve.Errors, "game title is required")
	}
	if world.StartRoomID == "" {
		ve.Errors = append(ve.Errors, "game start room is required")
	} else if _, ok := world.Rooms[world.StartRoomID]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %q not found in defined rooms", world.StartRoomID))
	}
	if len(world.Rooms) == 0 {
		ve.Errors = append(ve.Errors, "at least one room is required")
	}

	for _, roomID := range sortedRoomIDs(world) {
		room := world.Rooms[roomID]
		for dir, exit := range room.Exits {
			if _, ok := world.Rooms[exit.TargetRoomID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q exit %q points to undefined room %q", roomID, dir, exit.TargetRoomID))
			}
		}
	}

	for _, item := range world.Catalog {
		if item.Points < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"item %q has negative point value", item.ID))
		}
		for _, other := range item.UsableWith {
			if !entityDefined(world, other) {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q usable_with references undefined entity %q", item.ID, other))
			}
		}
	}

	for i, trap := range world.Traps {
		if _, ok := world.Rooms[trap.RoomID]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"trap %d references undefined room %q", i, trap.RoomID))
		}
		if _, ok := types.ParseDirection(string(trap.Direction)); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"trap %d has invalid direction %q", i, trap.Direction))
		}
		if trap.RequiredItemID != "" {
			if _, ok := world.Catalog[trap.RequiredItemID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"trap %d requires undefined item %q", i, trap.RequiredItemID))
			}
		}
		if trap.DeathText == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("trap %d is missing death_text", i))
		}
	}

	for itemID, rule := range world.Takes {
		if _, ok := world.Catalog[itemID]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"take rule references undefined item %q", itemID))
		}
		for _, required := range rule.RequiredItemIDs {
			if _, ok := world.Catalog[required]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"take rule for %q requires undefined item %q", itemID, required))
			}
		}
		if len(rule.RequiredItemIDs) > 0 && rule.DeathText == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"take rule for %q has prerequisites but no death_text", itemID))
		}
		if rule.Win && rule.WinText == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"take rule for %q wins the game but has no win_text", itemID))
		}
		if rule.Points < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"take rule for %q has negative point value", itemID))
		}
	}

	for i, rule := range world.Uses {
		if _, ok := world.Catalog[rule.ItemID]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"use rule %d references undefined item %q", i, rule.ItemID))
		}
		if !entityDefined(world, rule.TargetID) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"use rule %d references undefined target %q", i, rule.TargetID))
		}
		if rule.DescribeID != "" && !entityDefined(world, rule.DescribeID) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"use rule %d describes undefined entity %q", i, rule.DescribeID))
		}
		if rule.DescribeID != "" && rule.NewDescription == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"use rule %d sets describe without new_description", i))
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// entityDefined reports whether id names an item, feature, or character
// anywhere in the world.
func entityDefined(world *types.GameMap, id string) bool {
	if _, ok := world.Catalog[id]; ok {
		return true
	}
	for _, room := range world.Rooms {
		if _, ok := room.Features[id]; ok {
			return true
		}
		if _, ok := room.Characters[id]; ok {
			return true
		}
	}
	return false
}
