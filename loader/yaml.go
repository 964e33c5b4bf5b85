package loader

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mkarlsen/fablecore/types"
)

// yamlWorld is the on-disk shape of a world.yaml file. It mirrors the Lua
// vocabulary with id-keyed maps instead of curried constructors.
type yamlWorld struct {
	Title       string               `yaml:"title"`
	Description string               `yaml:"description"`
	Start       string               `yaml:"start"`
	Rooms       map[string]roomDoc   `yaml:"rooms"`
	Items       map[string]itemDoc   `yaml:"items"`
	Features    map[string]placedDoc `yaml:"features"`
	Characters  map[string]placedDoc `yaml:"characters"`
	Traps       []types.TrapRule     `yaml:"traps"`
	Takes       []types.TakeRule     `yaml:"takes"`
	Uses        []types.UseRule      `yaml:"uses"`
}

func loadYAMLFile(path string) (*types.GameMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var yw yamlWorld
	if err := yaml.Unmarshal(data, &yw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	world, err := build(yw.document())
	if err != nil {
		return nil, fmt.Errorf("compiling world data: %w", err)
	}
	if err := validate(world); err != nil {
		return nil, err
	}
	return world, nil
}

// document converts the yaml shape into the shared intermediate form, in
// id-sorted order so errors are reported deterministically.
func (yw *yamlWorld) document() *document {
	doc := &document{
		Game:  gameDoc{Title: yw.Title, Description: yw.Description, Start: yw.Start},
		Traps: yw.Traps,
		Takes: yw.Takes,
		Uses:  yw.Uses,
	}
	for _, id := range sortedKeys(yw.Rooms) {
		r := yw.Rooms[id]
		r.ID = id
		doc.Rooms = append(doc.Rooms, r)
	}
	for _, id := range sortedKeys(yw.Items) {
		it := yw.Items[id]
		it.ID = id
		doc.Items = append(doc.Items, it)
	}
	for _, id := range sortedKeys(yw.Features) {
		f := yw.Features[id]
		f.ID = id
		doc.Features = append(doc.Features, f)
	}
	for _, id := range sortedKeys(yw.Characters) {
		ch := yw.Characters[id]
		ch.ID = id
		doc.Characters = append(doc.Characters, ch)
	}
	return doc
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
