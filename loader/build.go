package loader

import (
	"fmt"

	"github.com/mkarlsen/fablecore/types"
)

// build turns the intermediate document into a GameMap template. Placement
// errors (unknown locations, duplicate ids) are reported here; referential
// checks on the finished map live in validate.
func build(doc *document) (*types.GameMap, error) {
	world := &types.GameMap{
		Title:       doc.Game.Title,
		Description: doc.Game.Description,
		StartRoomID: doc.Game.Start,
		Rooms:       map[string]*types.Room{},
		Catalog:     map[string]*types.Item{},
		Traps:       doc.Traps,
		Takes:       map[string]types.TakeRule{},
		Uses:        doc.Uses,
	}

	for _, rd := range doc.Rooms {
		if _, exists := world.Rooms[rd.ID]; exists {
			return nil, fmt.Errorf("room %q defined twice", rd.ID)
		}
		room := &types.Room{
			ID:          rd.ID,
			Name:        rd.Name,
			Description: rd.Description,
			Items:       map[string]*types.Item{},
			Features:    map[string]*types.Feature{},
			Characters:  map[string]*types.Character{},
		}
		if len(rd.Exits) > 0 {
			room.Exits = map[types.Direction]*types.Exit{}
			for dirStr, ed := range rd.Exits {
				dir, ok := types.ParseDirection(dirStr)
				if !ok {
					return nil, fmt.Errorf("room %q: invalid exit direction %q", rd.ID, dirStr)
				}
				name := ed.Name
				if name == "" {
					name = dirStr
				}
				room.Exits[dir] = &types.Exit{
					Entity: types.Entity{
						ID:          rd.ID + ":" + dirStr,
						Name:        name,
						Description: ed.Description,
						Tags:        ed.Tags,
					},
					TargetRoomID: ed.Target,
				}
			}
		}
		world.Rooms[rd.ID] = room
	}

	seen := map[string]string{}
	for _, id := range sortedRoomIDs(world) {
		seen[id] = "room"
	}

	for _, it := range doc.Items {
		if kind, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("item %q: id already used by a %s", it.ID, kind)
		}
		seen[it.ID] = "item"
		item := &types.Item{
			Entity: types.Entity{
				ID:          it.ID,
				Name:        it.Name,
				Description: it.Description,
				Tags:        it.Tags,
			},
			Takeable:   it.Takeable,
			UsableWith: it.UsableWith,
			Points:     it.Points,
		}
		world.Catalog[it.ID] = item
		if it.Location != "" {
			room, ok := world.Rooms[it.Location]
			if !ok {
				return nil, fmt.Errorf("item %q placed in undefined room %q", it.ID, it.Location)
			}
			room.Items[it.ID] = item
		}
	}

	for _, fd := range doc.Features {
		if kind, dup := seen[fd.ID]; dup {
			return nil, fmt.Errorf("feature %q: id already used by a %s", fd.ID, kind)
		}
		seen[fd.ID] = "feature"
		room, ok := world.Rooms[fd.Location]
		if !ok {
			return nil, fmt.Errorf("feature %q placed in undefined room %q", fd.ID, fd.Location)
		}
		room.Features[fd.ID] = &types.Feature{Entity: types.Entity{
			ID:          fd.ID,
			Name:        fd.Name,
			Description: fd.Description,
			Tags:        fd.Tags,
		}}
	}

	for _, cd := range doc.Characters {
		if kind, dup := seen[cd.ID]; dup {
			return nil, fmt.Errorf("character %q: id already used by a %s", cd.ID, kind)
		}
		seen[cd.ID] = "character"
		room, ok := world.Rooms[cd.Location]
		if !ok {
			return nil, fmt.Errorf("character %q placed in undefined room %q", cd.ID, cd.Location)
		}
		room.Characters[cd.ID] = &types.Character{Entity: types.Entity{
			ID:          cd.ID,
			Name:        cd.Name,
			Description: cd.Description,
			Tags:        cd.Tags,
		}}
	}

	for _, rule := range doc.Takes {
		if _, dup := world.Takes[rule.ItemID]; dup {
			return nil, fmt.Errorf("take rule for item %q defined twice", rule.ItemID)
		}
		world.Takes[rule.ItemID] = rule
	}

	return world, nil
}

func sortedRoomIDs(world *types.GameMap) []string {
	return sortedKeys(world.Rooms)
}
