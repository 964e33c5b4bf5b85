// Package save implements serialization of a playthrough to a flat,
// self-contained JSON record and validated restoration back into a session.
//
// The record stores the inventory, visited rooms, and destroyed items as
// ordered id lists; entity bodies are carried once, in the embedded map.
// The embedded map is the session's live world, so description mutations and
// emptied rooms survive a round trip.
package save

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkarlsen/fablecore/engine/session"
	"github.com/mkarlsen/fablecore/types"
)

// FormatVersion identifies the record layout.
const FormatVersion = "1"

// Record is the JSON-serializable save format.
type Record struct {
	Version       string         `json:"version"`
	SessionID     string         `json:"session_id"`
	CurrentRoomID string         `json:"current_room"`
	Inventory     []string       `json:"inventory"`
	VisitedRooms  []string       `json:"visited_rooms"`
	Destroyed     []string       `json:"destroyed"`
	Score         int            `json:"score"`
	Map           *types.GameMap `json:"map"`
}

// ValidationError collects every problem found in a record. A record that
// fails validation must never produce a partially restored session.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid save record (%d problem(s)):\n  %s",
		len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// Serialize captures the session and its world into JSON bytes.
func Serialize(sess *session.Session, world *types.GameMap) ([]byte, error) {
	rec := Record{
		Version:       FormatVersion,
		SessionID:     sess.ID,
		CurrentRoomID: sess.CurrentRoomID,
		Inventory:     sess.InventoryIDs(),
		VisitedRooms:  sess.VisitedIDs(),
		Destroyed:     sess.DestroyedIDs(),
		Score:         sess.Score,
		Map:           world,
	}
	return json.MarshalIndent(rec, "", "  ")
}

// Decode parses and validates JSON bytes into a Record.
func Decode(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing save record: %w", err)
	}
	if err := Validate(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Validate checks the record's schema and referential integrity: required
// fields present, rooms nonempty, the current room defined, and every saved
// id resolvable against the embedded map.
func Validate(rec *Record) error {
	ve := &ValidationError{}

	if rec.Version == "" {
		ve.Problems = append(ve.Problems, "version is required")
	} else if rec.Version != FormatVersion {
		ve.Problems = append(ve.Problems, fmt.Sprintf("unsupported version %q", rec.Version))
	}
	if rec.CurrentRoomID == "" {
		ve.Problems = append(ve.Problems, "current_room is required")
	}
	if rec.Map == nil {
		ve.Problems = append(ve.Problems, "map is required")
		return ve
	}
	if len(rec.Map.Rooms) == 0 {
		ve.Problems = append(ve.Problems, "map.rooms must not be empty")
	}

	if rec.CurrentRoomID != "" {
		if _, ok := rec.Map.Rooms[rec.CurrentRoomID]; !ok {
			ve.Problems = append(ve.Problems, fmt.Sprintf(
				"current_room %q not present in map.rooms", rec.CurrentRoomID))
		}
	}
	for _, roomID := range rec.VisitedRooms {
		if _, ok := rec.Map.Rooms[roomID]; !ok {
			ve.Problems = append(ve.Problems, fmt.Sprintf(
				"visited room %q not present in map.rooms", roomID))
		}
	}
	for _, itemID := range rec.Inventory {
		if _, ok := rec.Map.Catalog[itemID]; !ok {
			ve.Problems = append(ve.Problems, fmt.Sprintf(
				"inventory item %q not present in map catalog", itemID))
		}
	}
	for _, itemID := range rec.Destroyed {
		if _, ok := rec.Map.Catalog[itemID]; !ok {
			ve.Problems = append(ve.Problems, fmt.Sprintf(
				"destroyed item %q not present in map catalog", itemID))
		}
	}
	if rec.Score < 0 {
		ve.Problems = append(ve.Problems, "score must not be negative")
	}

	if len(ve.Problems) > 0 {
		return ve
	}
	return nil
}

// Restore reconstructs the session and its exclusive world from a validated
// record. Inventory bodies are looked up in the map's item catalog; room
// item collections are rebound to catalog objects so a restored world keeps
// the single-object-per-item property that Clone establishes.
func Restore(rec *Record) (*session.Session, *types.GameMap, error) {
	if err := Validate(rec); err != nil {
		return nil, nil, err
	}

	world := rec.Map
	for _, room := range world.Rooms {
		for id := range room.Items {
			if cat, ok := world.Catalog[id]; ok {
				room.Items[id] = cat
			}
		}
	}

	inventory := make(map[string]*types.Item, len(rec.Inventory))
	for _, id := range rec.Inventory {
		inventory[id] = world.Catalog[id]
		// An inventory item must not also sit in a room.
		for _, room := range world.Rooms {
			delete(room.Items, id)
		}
	}

	sess := session.Restore(rec.SessionID, rec.CurrentRoomID, inventory,
		rec.VisitedRooms, rec.Destroyed, rec.Score)
	return sess, world, nil
}
