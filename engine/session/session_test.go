package session

import (
	"testing"

	"github.com/mkarlsen/fablecore/types"
)

func testWorld() *types.GameMap {
	return &types.GameMap{
		Title:       "Test",
		StartRoomID: "hall",
		Rooms: map[string]*types.Room{
			"hall":    {ID: "hall", Name: "Hall"},
			"library": {ID: "library", Name: "Library"},
		},
	}
}

func TestNew_StartsAtStartRoom(t *testing.T) {
	s := New(testWorld())
	if s.CurrentRoomID != "hall" {
		t.Errorf("expected hall, got %q", s.CurrentRoomID)
	}
	if !s.Visited["hall"] {
		t.Errorf("start room should be marked visited")
	}
	if s.ID == "" {
		t.Errorf("session id must not be empty")
	}
	if s.Score != 0 || s.Terminal || s.Won {
		t.Errorf("fresh session must have zero score and no terminal flags")
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New(testWorld())
	b := New(testWorld())
	if a.ID == b.ID {
		t.Errorf("two sessions got the same id %q", a.ID)
	}
}

func TestRoom_MissingRoomIsError(t *testing.T) {
	s := New(testWorld())
	s.CurrentRoomID = "void"
	if _, err := s.Room(testWorld()); err == nil {
		t.Fatalf("expected error for missing room")
	}
}

func TestAddScore_Monotonic(t *testing.T) {
	s := New(testWorld())
	s.AddScore(10)
	s.AddScore(-5)
	s.AddScore(0)
	s.AddScore(3)
	if s.Score != 13 {
		t.Errorf("expected 13, got %d", s.Score)
	}
}

func TestMoveTo_RecordsVisit(t *testing.T) {
	s := New(testWorld())
	s.MoveTo("library")
	if s.CurrentRoomID != "library" {
		t.Errorf("expected library, got %q", s.CurrentRoomID)
	}
	if !s.Visited["library"] {
		t.Errorf("moved-to room should be marked visited")
	}
}

func TestInventoryIDs_Sorted(t *testing.T) {
	s := New(testWorld())
	s.Inventory["zephyr"] = &types.Item{Entity: types.Entity{ID: "zephyr"}}
	s.Inventory["anchor"] = &types.Item{Entity: types.Entity{ID: "anchor"}}
	ids := s.InventoryIDs()
	if len(ids) != 2 || ids[0] != "anchor" || ids[1] != "zephyr" {
		t.Errorf("expected sorted ids, got %v", ids)
	}
}

func TestRestore_RebuildsSets(t *testing.T) {
	inv := map[string]*types.Item{
		"lamp": {Entity: types.Entity{ID: "lamp"}},
	}
	s := Restore("abc", "library", inv, []string{"hall", "library"}, []string{"flask"}, 25)

	if s.ID != "abc" || s.CurrentRoomID != "library" || s.Score != 25 {
		t.Errorf("restored scalars wrong: %+v", s)
	}
	if !s.HasItem("lamp") {
		t.Errorf("restored inventory missing lamp")
	}
	if !s.Visited["hall"] || !s.Visited["library"] {
		t.Errorf("restored visited set wrong: %v", s.Visited)
	}
	if !s.Destroyed["flask"] {
		t.Errorf("restored destroyed set wrong: %v", s.Destroyed)
	}
}

func TestRestore_NilInventory(t *testing.T) {
	s := Restore("abc", "hall", nil, nil, nil, 0)
	if s.Inventory == nil {
		t.Fatalf("inventory map must be allocated")
	}
	s.Inventory["x"] = &types.Item{Entity: types.Entity{ID: "x"}}
	if !s.HasItem("x") {
		t.Errorf("inventory not usable after nil restore")
	}
}
