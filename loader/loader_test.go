package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkarlsen/fablecore/types"
)

func checkCaveWorld(t *testing.T, world *types.GameMap) {
	t.Helper()

	if world.Title != "Echo Cave" {
		t.Errorf("expected Echo Cave, got %q", world.Title)
	}
	if world.StartRoomID != "mouth" {
		t.Errorf("expected start mouth, got %q", world.StartRoomID)
	}
	if len(world.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(world.Rooms))
	}

	mouth := world.Rooms["mouth"]
	exit, ok := mouth.Exits[types.North]
	if !ok {
		t.Fatalf("mouth has no north exit")
	}
	if exit.TargetRoomID != "gallery" {
		t.Errorf("north exit targets %q", exit.TargetRoomID)
	}
	if exit.Name != "low passage" {
		t.Errorf("exit name %q", exit.Name)
	}

	// Shorthand exits get the direction as their name.
	back, ok := world.Rooms["gallery"].Exits[types.South]
	if !ok {
		t.Fatalf("gallery has no south exit")
	}
	if back.TargetRoomID != "mouth" || back.Name != "south" {
		t.Errorf("shorthand exit built wrong: %+v", back)
	}

	if len(world.Catalog) != 2 {
		t.Errorf("expected 2 catalog items, got %d", len(world.Catalog))
	}
	torch, ok := mouth.Items["torch"]
	if !ok {
		t.Fatalf("torch not placed in mouth")
	}
	if !torch.Takeable || torch.Points != 5 {
		t.Errorf("torch fields wrong: %+v", torch)
	}
	if len(torch.Tags) != 2 || torch.Tags[0] != "light" {
		t.Errorf("torch tags wrong: %v", torch.Tags)
	}
	if len(torch.UsableWith) != 1 || torch.UsableWith[0] != "paintings" {
		t.Errorf("torch usable_with wrong: %v", torch.UsableWith)
	}

	if _, ok := world.Rooms["gallery"].Features["paintings"]; !ok {
		t.Errorf("paintings not placed in gallery")
	}
	if _, ok := mouth.Characters["hermit"]; !ok {
		t.Errorf("hermit not placed in mouth")
	}

	if len(world.Traps) != 1 || world.Traps[0].RequiredItemID != "torch" {
		t.Errorf("traps wrong: %+v", world.Traps)
	}
	rule, ok := world.Takes["geode"]
	if !ok {
		t.Fatalf("take rule for geode missing")
	}
	if !rule.Win || rule.Points != 20 {
		t.Errorf("geode take rule wrong: %+v", rule)
	}
	if len(world.Uses) != 1 || world.Uses[0].DescribeID != "paintings" {
		t.Errorf("uses wrong: %+v", world.Uses)
	}
}

func TestLoad_LuaDirectory(t *testing.T) {
	world, err := Load(filepath.Join("testdata", "cave"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	checkCaveWorld(t, world)
}

func TestLoad_YAMLFile(t *testing.T) {
	world, err := Load(filepath.Join("testdata", "cave.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	checkCaveWorld(t, world)
}

func TestLoad_BothFrontEndsAgree(t *testing.T) {
	fromLua, err := Load(filepath.Join("testdata", "cave"))
	if err != nil {
		t.Fatalf("lua load failed: %v", err)
	}
	fromYAML, err := Load(filepath.Join("testdata", "cave.yaml"))
	if err != nil {
		t.Fatalf("yaml load failed: %v", err)
	}

	if len(fromLua.Rooms) != len(fromYAML.Rooms) || len(fromLua.Catalog) != len(fromYAML.Catalog) {
		t.Errorf("front ends produced different shapes: lua %d/%d rooms/items, yaml %d/%d",
			len(fromLua.Rooms), len(fromLua.Catalog), len(fromYAML.Rooms), len(fromYAML.Catalog))
	}
}

func TestLoad_MissingPath(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "nope")); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestLoad_EmptyDirectory(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected error for directory without world files")
	}
}

func writeWorld(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoad_SandboxBlocksHostAccess(t *testing.T) {
	path := writeWorld(t, "game.lua", `
Game { title = "Escape Attempt", start = "cell" }
Room "cell" { name = "Cell", description = "Bare walls." }
if os ~= nil then error("os library reachable") end
if io ~= nil then error("io library reachable") end
if loadfile ~= nil then error("loadfile reachable") end
`)
	if _, err := Load(filepath.Dir(path)); err != nil {
		t.Fatalf("sandboxed world failed to load: %v", err)
	}
}

func TestLoad_LuaErrorReported(t *testing.T) {
	path := writeWorld(t, "game.lua", `this is not lua`)
	if _, err := Load(filepath.Dir(path)); err == nil {
		t.Fatalf("expected lua syntax error")
	}
}

func TestSortedLuaFiles_GameFirst(t *testing.T) {
	files := sortedLuaFiles([]string{"rooms.lua", "items.lua", "game.lua"})
	if files[0] != "game.lua" {
		t.Errorf("game.lua must load first, got %v", files)
	}
	if files[1] != "items.lua" || files[2] != "rooms.lua" {
		t.Errorf("remaining files not alphabetical: %v", files)
	}
}

func TestBuild_DuplicateRoom(t *testing.T) {
	doc := &document{
		Game: gameDoc{Title: "T", Start: "a"},
		Rooms: []roomDoc{
			{ID: "a", Name: "A"},
			{ID: "a", Name: "A again"},
		},
	}
	if _, err := build(doc); err == nil {
		t.Fatalf("expected duplicate room error")
	}
}

func TestBuild_DuplicateIDAcrossKinds(t *testing.T) {
	doc := &document{
		Game:  gameDoc{Title: "T", Start: "a"},
		Rooms: []roomDoc{{ID: "a", Name: "A"}},
		Items: []itemDoc{{ID: "a", Name: "A item", Location: "a"}},
	}
	if _, err := build(doc); err == nil {
		t.Fatalf("expected cross-kind duplicate id error")
	}
}

func TestBuild_UnknownLocation(t *testing.T) {
	doc := &document{
		Game:  gameDoc{Title: "T", Start: "a"},
		Rooms: []roomDoc{{ID: "a", Name: "A"}},
		Items: []itemDoc{{ID: "gem", Name: "Gem", Location: "nowhere"}},
	}
	if _, err := build(doc); err == nil {
		t.Fatalf("expected unknown location error")
	}
}

func TestBuild_InvalidExitDirection(t *testing.T) {
	doc := &document{
		Game: gameDoc{Title: "T", Start: "a"},
		Rooms: []roomDoc{
			{ID: "a", Name: "A", Exits: map[string]exitDoc{"up": {Target: "a"}}},
		},
	}
	if _, err := build(doc); err == nil {
		t.Fatalf("expected invalid direction error")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	path := writeWorld(t, "world.yaml", `
title: Broken
start: missing
rooms:
  hall:
    name: Hall
    description: A hall.
    exits:
      north:
        target: nowhere
traps:
  - room: hall
    direction: sideways
    requires: ghost
uses:
  - item: ghost
    target: phantom
    text: Nothing.
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	for _, want := range []string{
		`start room "missing"`,
		`points to undefined room "nowhere"`,
		`invalid direction "sideways"`,
		`requires undefined item "ghost"`,
		"missing death_text",
		`references undefined item "ghost"`,
		`references undefined target "phantom"`,
	} {
		found := false
		for _, e := range ve.Errors {
			if strings.Contains(e, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing expected problem %q in %v", want, ve.Errors)
		}
	}
}

func TestValidate_TakeRuleConstraints(t *testing.T) {
	path := writeWorld(t, "world.yaml", `
title: Broken Takes
start: hall
rooms:
  hall:
    name: Hall
    description: A hall.
items:
  gem:
    name: Gem
    description: Shiny.
    location: hall
    takeable: true
takes:
  - item: gem
    requires: [gem]
    win: true
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	msg := err.Error()
	if !strings.Contains(msg, "prerequisites but no death_text") {
		t.Errorf("missing death_text problem: %v", msg)
	}
	if !strings.Contains(msg, "wins the game but has no win_text") {
		t.Errorf("missing win_text problem: %v", msg)
	}
}
