// Package loader compiles world definitions into a types.GameMap. Worlds
// are authored either as Lua files (scriptable, constructor API) or as a
// single world.yaml (static data). Both front ends produce the same
// intermediate document, which is built and validated identically.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/mkarlsen/fablecore/types"
)

// Load reads a world from path. A directory containing .lua files loads
// through the Lua front end; a directory containing world.yaml (or a direct
// path to a .yaml/.yml file) loads through the YAML front end.
func Load(path string) (*types.GameMap, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading world path %s: %w", path, err)
	}

	if !info.IsDir() {
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			return loadYAMLFile(path)
		}
		return nil, fmt.Errorf("world path %s is not a directory or yaml file", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", path, err)
	}

	var luaFiles []string
	var yamlFile string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(e.Name(), ".lua"):
			luaFiles = append(luaFiles, e.Name())
		case e.Name() == "world.yaml" || e.Name() == "world.yml":
			yamlFile = e.Name()
		}
	}

	switch {
	case len(luaFiles) > 0:
		return loadLua(path, luaFiles)
	case yamlFile != "":
		return loadYAMLFile(filepath.Join(path, yamlFile))
	default:
		return nil, fmt.Errorf("no .lua files or world.yaml found in %s", path)
	}
}

func loadLua(dir string, files []string) (*types.GameMap, error) {
	files = sortedLuaFiles(files)

	// Sandboxed VM: safe libs only, discarded after loading.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	doc := &document{}
	registerAPI(L, doc)

	for _, f := range files {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	world, err := build(doc)
	if err != nil {
		return nil, fmt.Errorf("compiling world data: %w", err)
	}
	if err := validate(world); err != nil {
		return nil, err
	}
	return world, nil
}

// sortedLuaFiles puts game.lua first, the rest alphabetical, so the world
// header is defined before any content that references it.
func sortedLuaFiles(files []string) []string {
	sort.Strings(files)
	for i, f := range files {
		if f == "game.lua" && i != 0 {
			copy(files[1:i+1], files[:i])
			files[0] = "game.lua"
			break
		}
	}
	return files
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that could touch the host or break determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
