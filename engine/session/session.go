// Package session manages the mutable per-playthrough state. A Session is
// exclusively owned by one engine instance and always paired with that
// instance's private world clone.
package session

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mkarlsen/fablecore/types"
)

// Session is all mutable state of one playthrough. Score only increases;
// every inventory key is absent from every room's item collection.
type Session struct {
	ID            string
	CurrentRoomID string
	Inventory     map[string]*types.Item
	Visited       map[string]bool
	Destroyed     map[string]bool
	Score         int
	Terminal      bool
	Won           bool
}

// New creates a fresh session positioned at the world's start room, with the
// start room already marked visited.
func New(world *types.GameMap) *Session {
	return &Session{
		ID:            uuid.NewString(),
		CurrentRoomID: world.StartRoomID,
		Inventory:     map[string]*types.Item{},
		Visited:       map[string]bool{world.StartRoomID: true},
		Destroyed:     map[string]bool{},
	}
}

// Restore builds a session from previously validated save fields. It is the
// only way to construct a session with non-initial state; callers must have
// checked every id against the restored world first.
func Restore(id, currentRoomID string, inventory map[string]*types.Item, visited, destroyed []string, score int) *Session {
	s := &Session{
		ID:            id,
		CurrentRoomID: currentRoomID,
		Inventory:     inventory,
		Visited:       map[string]bool{},
		Destroyed:     map[string]bool{},
		Score:         score,
	}
	if s.Inventory == nil {
		s.Inventory = map[string]*types.Item{}
	}
	for _, roomID := range visited {
		s.Visited[roomID] = true
	}
	for _, itemID := range destroyed {
		s.Destroyed[itemID] = true
	}
	return s
}

// Room returns the session's current room from the given world.
// A missing room is an invariant violation: the world graph is broken.
func (s *Session) Room(world *types.GameMap) (*types.Room, error) {
	room, ok := world.Rooms[s.CurrentRoomID]
	if !ok {
		return nil, fmt.Errorf("current room %q not present in world map", s.CurrentRoomID)
	}
	return room, nil
}

// HasItem reports whether the player holds the item.
func (s *Session) HasItem(itemID string) bool {
	_, ok := s.Inventory[itemID]
	return ok
}

// AddScore increases the score. Negative deltas are ignored; the score is
// monotonic by contract.
func (s *Session) AddScore(points int) {
	if points > 0 {
		s.Score += points
	}
}

// MoveTo commits a room transition and records the visit.
func (s *Session) MoveTo(roomID string) {
	s.CurrentRoomID = roomID
	s.Visited[roomID] = true
}

// InventoryIDs returns the held item ids in sorted order.
func (s *Session) InventoryIDs() []string {
	ids := make([]string, 0, len(s.Inventory))
	for id := range s.Inventory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// VisitedIDs returns the visited room ids in sorted order.
func (s *Session) VisitedIDs() []string {
	ids := make([]string, 0, len(s.Visited))
	for id := range s.Visited {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DestroyedIDs returns the ids of items destroyed by use, in sorted order.
func (s *Session) DestroyedIDs() []string {
	ids := make([]string, 0, len(s.Destroyed))
	for id := range s.Destroyed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
