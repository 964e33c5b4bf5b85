package loader

import "github.com/mkarlsen/fablecore/types"

// document is the shared intermediate representation both front ends (Lua
// and YAML) produce. Definition order is preserved for stable error
// reporting; build turns a document into a types.GameMap.
type document struct {
	Game       gameDoc
	Rooms      []roomDoc
	Items      []itemDoc
	Features   []placedDoc
	Characters []placedDoc
	Traps      []types.TrapRule
	Takes      []types.TakeRule
	Uses       []types.UseRule
}

type gameDoc struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Start       string `yaml:"start"`
}

type roomDoc struct {
	ID          string             `yaml:"-"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Exits       map[string]exitDoc `yaml:"exits"`
}

type exitDoc struct {
	Target      string   `yaml:"target"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

type itemDoc struct {
	ID          string   `yaml:"-"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Location    string   `yaml:"location"`
	Takeable    bool     `yaml:"takeable"`
	Points      int      `yaml:"points"`
	UsableWith  []string `yaml:"usable_with"`
}

// placedDoc covers features and characters: a located entity.
type placedDoc struct {
	ID          string   `yaml:"-"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Location    string   `yaml:"location"`
}
