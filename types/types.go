// Package types defines the shared data structures for the Fablecore engine:
// the entity model, the world map, rule records, and the action protocol.
// Logic lives in the engine packages; this package carries only data and
// the deep-copy constructor for GameMap.
package types

// Direction is one of the four cardinal exit directions.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions lists all valid directions in a stable order.
var Directions = []Direction{North, South, East, West}

// ParseDirection normalizes a direction string. Returns false if the string
// is not one of the four cardinal directions.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case North, South, East, West:
		return Direction(s), true
	}
	return "", false
}

// Entity is the base data unit shared by items, features, characters, and
// exits. Name and Tags are the only fields the resolver consults.
type Entity struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Ref returns the embedded Entity. It exists so that every entity variant
// satisfies Referent through embedding.
func (e *Entity) Ref() *Entity { return e }

// Referent is anything the resolver can match against a player query.
type Referent interface {
	Ref() *Entity
}

// Item is a takeable (or fixed) object. A placed item lives in exactly one
// of a room's item collection or the inventory at any time.
type Item struct {
	Entity     `yaml:",inline"`
	Takeable   bool     `json:"takeable" yaml:"takeable"`
	UsableWith []string `json:"usable_with,omitempty" yaml:"usable_with,omitempty"`
	Points     int      `json:"points" yaml:"points"`
}

// Feature is static scenery: examinable, targetable by use, never moves.
type Feature struct {
	Entity `yaml:",inline"`
}

// Character is an entity variant for people and creatures. Like features,
// characters never move and are never takeable.
type Character struct {
	Entity `yaml:",inline"`
}

// Exit connects a room to a target room in one direction.
type Exit struct {
	Entity       `yaml:",inline"`
	TargetRoomID string `json:"target" yaml:"target"`
}

// Room is one node of the world graph.
type Room struct {
	ID          string                 `json:"id" yaml:"id"`
	Name        string                 `json:"name" yaml:"name"`
	Description string                 `json:"description" yaml:"description"`
	Exits       map[Direction]*Exit    `json:"exits,omitempty" yaml:"exits,omitempty"`
	Items       map[string]*Item       `json:"items,omitempty" yaml:"items,omitempty"`
	Features    map[string]*Feature    `json:"features,omitempty" yaml:"features,omitempty"`
	Characters  map[string]*Character  `json:"characters,omitempty" yaml:"characters,omitempty"`
}

// TrapRule is a fatal precondition bound to a (room, direction) pair:
// moving that way without the required item ends the game.
type TrapRule struct {
	RoomID         string    `json:"room" yaml:"room"`
	Direction      Direction `json:"direction" yaml:"direction"`
	RequiredItemID string    `json:"requires" yaml:"requires"`
	DeathText      string    `json:"death_text" yaml:"death_text"`
}

// TakeRule is a per-item precondition evaluated when the player takes the
// item. Missing prerequisites are fatal; Win items end the game in victory
// instead of entering the inventory.
type TakeRule struct {
	ItemID          string   `json:"item" yaml:"item"`
	RequiredItemIDs []string `json:"requires,omitempty" yaml:"requires,omitempty"`
	DeathText       string   `json:"death_text,omitempty" yaml:"death_text,omitempty"`
	Win             bool     `json:"win,omitempty" yaml:"win,omitempty"`
	WinText         string   `json:"win_text,omitempty" yaml:"win_text,omitempty"`
	Points          int      `json:"points,omitempty" yaml:"points,omitempty"`
	Reason          string   `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// UseRule describes the effect of using one item on one target. Effects may
// mutate a description, destroy the participants, or be pure flavor text.
// Use effects never end the game.
type UseRule struct {
	ItemID         string `json:"item" yaml:"item"`
	TargetID       string `json:"target" yaml:"target"`
	Text           string `json:"text" yaml:"text"`
	DescribeID     string `json:"describe,omitempty" yaml:"describe,omitempty"`
	NewDescription string `json:"new_description,omitempty" yaml:"new_description,omitempty"`
	ConsumeItem    bool   `json:"consume_item,omitempty" yaml:"consume_item,omitempty"`
	ConsumeTarget  bool   `json:"consume_target,omitempty" yaml:"consume_target,omitempty"`
}

// GameMap is the immutable template describing one adventure. The engine
// never plays on a template directly; it clones it per playthrough.
//
// Catalog holds every item defined anywhere in the map, keyed by id. Rooms
// reference the same underlying definitions at compile time; after cloning,
// the session's catalog stays complete even when items leave their rooms,
// which is what save restoration looks ids up against.
type GameMap struct {
	Title       string              `json:"title" yaml:"title"`
	Description string              `json:"description" yaml:"description"`
	StartRoomID string              `json:"start" yaml:"start"`
	Rooms       map[string]*Room    `json:"rooms" yaml:"rooms"`
	Catalog     map[string]*Item    `json:"catalog" yaml:"catalog"`
	Traps       []TrapRule          `json:"traps,omitempty" yaml:"traps,omitempty"`
	Takes       map[string]TakeRule `json:"takes,omitempty" yaml:"takes,omitempty"`
	Uses        []UseRule           `json:"uses,omitempty" yaml:"uses,omitempty"`
}
