package types

// Clone returns a deep copy of the map for exclusive use by one playthrough.
// Items are copied once through the catalog and room collections are rebound
// to the copies, so an item mutated during play stays a single object whether
// it sits in a room, the inventory, or only the catalog.
func (m *GameMap) Clone() *GameMap {
	c := &GameMap{
		Title:       m.Title,
		Description: m.Description,
		StartRoomID: m.StartRoomID,
		Rooms:       make(map[string]*Room, len(m.Rooms)),
		Catalog:     make(map[string]*Item, len(m.Catalog)),
		Traps:       append([]TrapRule(nil), m.Traps...),
		Uses:        append([]UseRule(nil), m.Uses...),
	}

	if m.Takes != nil {
		c.Takes = make(map[string]TakeRule, len(m.Takes))
		for id, rule := range m.Takes {
			rule.RequiredItemIDs = append([]string(nil), rule.RequiredItemIDs...)
			c.Takes[id] = rule
		}
	}

	for id, item := range m.Catalog {
		c.Catalog[id] = cloneItem(item)
	}

	for id, room := range m.Rooms {
		c.Rooms[id] = cloneRoom(room, c.Catalog)
	}

	return c
}

func cloneItem(item *Item) *Item {
	cp := *item
	cp.Tags = append([]string(nil), item.Tags...)
	cp.UsableWith = append([]string(nil), item.UsableWith...)
	return &cp
}

func cloneRoom(room *Room, catalog map[string]*Item) *Room {
	cp := &Room{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
	}

	if room.Exits != nil {
		cp.Exits = make(map[Direction]*Exit, len(room.Exits))
		for dir, exit := range room.Exits {
			e := *exit
			e.Tags = append([]string(nil), exit.Tags...)
			cp.Exits[dir] = &e
		}
	}

	if room.Items != nil {
		cp.Items = make(map[string]*Item, len(room.Items))
		for id := range room.Items {
			if cat, ok := catalog[id]; ok {
				cp.Items[id] = cat
			} else {
				cp.Items[id] = cloneItem(room.Items[id])
			}
		}
	}

	if room.Features != nil {
		cp.Features = make(map[string]*Feature, len(room.Features))
		for id, f := range room.Features {
			fc := *f
			fc.Tags = append([]string(nil), f.Tags...)
			cp.Features[id] = &fc
		}
	}

	if room.Characters != nil {
		cp.Characters = make(map[string]*Character, len(room.Characters))
		for id, ch := range room.Characters {
			cc := *ch
			cc.Tags = append([]string(nil), ch.Tags...)
			cp.Characters[id] = &cc
		}
	}

	return cp
}
