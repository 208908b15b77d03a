package loader

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/achievecore/engine/state"
)

// collector accumulates content definitions while files execute.
type collector struct {
	game         *lua.LTable
	cards        []rawDef
	scenarios    []rawDef
	oaths        []rawDef
	achievements []rawAchievement

	// YAML documents, in file order. Compiled after the Lua content.
	docs []yamlDoc
}

// Load reads every .lua and .yaml/.yml file in dir, compiles them into
// content definitions, validates references, and returns the immutable
// Defs. Lua files run first (game.lua, then alphabetical), then YAML files
// alphabetically. The Lua VM is discarded after loading.
func Load(dir string) (*state.Defs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles, yamlFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch name := e.Name(); {
		case strings.HasSuffix(name, ".lua"):
			luaFiles = append(luaFiles, name)
		case isYAML(name):
			yamlFiles = append(yamlFiles, name)
		}
	}
	if len(luaFiles) == 0 && len(yamlFiles) == 0 {
		return nil, fmt.Errorf("no .lua or .yaml files found in %s", dir)
	}
	sort.Strings(yamlFiles)

	coll := &collector{}

	if len(luaFiles) > 0 {
		if err := runLua(dir, sortedLuaFiles(luaFiles), coll); err != nil {
			return nil, err
		}
	}

	for _, f := range yamlFiles {
		doc, err := readYAML(filepath.Join(dir, f))
		if err != nil {
			return nil, err
		}
		coll.docs = append(coll.docs, doc)
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	ve := validate(defs)
	for _, w := range ve.Warnings {
		log.Printf("loader: warning: %s", w)
	}
	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return defs, nil
}

// runLua executes the Lua files in a sandboxed VM.
func runLua(dir string, files []string, coll *collector) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return fmt.Errorf("executing %s: %w", f, err)
		}
	}
	return nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach the filesystem or break determinism.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
	}
}

// sortedLuaFiles returns game.lua first and the rest alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}

// isYAML reports whether name has a YAML extension.
func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
