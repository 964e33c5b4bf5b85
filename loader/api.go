package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/mkarlsen/fablecore/types"
)

// registerAPI registers the Lua world-authoring constructors as globals.
// Room/Item/Feature/Character are curried: `Room "id" { ... }`.
func registerAPI(L *lua.LState, doc *document) {
	// Game { title = "...", description = "...", start = "..." }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		doc.Game = gameDoc{
			Title:       tableString(tbl, "title"),
			Description: tableString(tbl, "description"),
			Start:       tableString(tbl, "start"),
		}
		return 0
	}))

	L.SetGlobal("Room", curried(L, func(id string, tbl *lua.LTable) {
		doc.Rooms = append(doc.Rooms, roomDoc{
			ID:          id,
			Name:        tableString(tbl, "name"),
			Description: tableString(tbl, "description"),
			Exits:       tableExits(tbl),
		})
	}))

	L.SetGlobal("Item", curried(L, func(id string, tbl *lua.LTable) {
		doc.Items = append(doc.Items, itemDoc{
			ID:          id,
			Name:        tableString(tbl, "name"),
			Description: tableString(tbl, "description"),
			Tags:        tableStrings(tbl, "tags"),
			Location:    tableString(tbl, "location"),
			Takeable:    tableBool(tbl, "takeable"),
			Points:      tableInt(tbl, "points"),
			UsableWith:  tableStrings(tbl, "usable_with"),
		})
	}))

	L.SetGlobal("Feature", curried(L, func(id string, tbl *lua.LTable) {
		doc.Features = append(doc.Features, placedEntity(id, tbl))
	}))

	L.SetGlobal("Character", curried(L, func(id string, tbl *lua.LTable) {
		doc.Characters = append(doc.Characters, placedEntity(id, tbl))
	}))

	// Trap { room = ..., direction = ..., requires = ..., death_text = ... }
	L.SetGlobal("Trap", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		doc.Traps = append(doc.Traps, types.TrapRule{
			RoomID:         tableString(tbl, "room"),
			Direction:      types.Direction(tableString(tbl, "direction")),
			RequiredItemID: tableString(tbl, "requires"),
			DeathText:      tableString(tbl, "death_text"),
		})
		return 0
	}))

	// Take { item = ..., requires = {...}, death_text = ..., win = true, ... }
	L.SetGlobal("Take", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		doc.Takes = append(doc.Takes, types.TakeRule{
			ItemID:          tableString(tbl, "item"),
			RequiredItemIDs: tableStrings(tbl, "requires"),
			DeathText:       tableString(tbl, "death_text"),
			Win:             tableBool(tbl, "win"),
			WinText:         tableString(tbl, "win_text"),
			Points:          tableInt(tbl, "points"),
			Reason:          tableString(tbl, "reason"),
		})
		return 0
	}))

	// Use { item = ..., target = ..., text = ..., describe = ..., ... }
	L.SetGlobal("Use", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		doc.Uses = append(doc.Uses, types.UseRule{
			ItemID:         tableString(tbl, "item"),
			TargetID:       tableString(tbl, "target"),
			Text:           tableString(tbl, "text"),
			DescribeID:     tableString(tbl, "describe"),
			NewDescription: tableString(tbl, "new_description"),
			ConsumeItem:    tableBool(tbl, "consume_item"),
			ConsumeTarget:  tableBool(tbl, "consume_target"),
		})
		return 0
	}))
}

// curried wraps a two-step constructor: Ctor("id") returns a function that
// takes the definition table.
func curried(L *lua.LState, fn func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			fn(id, L.CheckTable(1))
			return 0
		}))
		return 1
	})
}

func placedEntity(id string, tbl *lua.LTable) placedDoc {
	return placedDoc{
		ID:          id,
		Name:        tableString(tbl, "name"),
		Description: tableString(tbl, "description"),
		Tags:        tableStrings(tbl, "tags"),
		Location:    tableString(tbl, "location"),
	}
}

func tableString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func tableBool(tbl *lua.LTable, key string) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return false
}

func tableInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// tableStrings reads an array-style subtable of strings.
func tableStrings(tbl *lua.LTable, key string) []string {
	sub, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	sub.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}

// tableExits reads the exits subtable: direction → exit definition table.
func tableExits(tbl *lua.LTable) map[string]exitDoc {
	sub, ok := tbl.RawGetString("exits").(*lua.LTable)
	if !ok {
		return nil
	}
	exits := map[string]exitDoc{}
	sub.ForEach(func(k, v lua.LValue) {
		dir, ok := k.(lua.LString)
		if !ok {
			return
		}
		switch def := v.(type) {
		case lua.LString:
			// Shorthand: north = "target_room".
			exits[string(dir)] = exitDoc{Target: string(def)}
		case *lua.LTable:
			exits[string(dir)] = exitDoc{
				Target:      tableString(def, "target"),
				Name:        tableString(def, "name"),
				Description: tableString(def, "description"),
				Tags:        tableStrings(def, "tags"),
			}
		}
	})
	return exits
}
