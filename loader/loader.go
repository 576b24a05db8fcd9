package loader

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/pupplay/types"
)

//go:embed content/*.lua
var embedded embed.FS

// collector accumulates Lua definitions during file execution.
type collector struct {
	game          *lua.LTable
	species       []rawNamed
	personalities []rawNamed
	supplies      []rawNamed
	offers        []rawNamed
	chapters      []rawChapter
	events        []rawNamed
	neighbors     []rawNamed
	interactions  []string
}

// Default loads the content pack compiled into the binary.
func Default() (*types.Content, error) {
	return LoadFS(embedded, "content")
}

// Load reads all .lua files from dir on disk.
func Load(dir string) (*types.Content, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads all .lua files from dir in fsys, compiles them into content
// definitions and validates them. The Lua VM is discarded after loading.
func LoadFS(fsys fs.FS, dir string) (*types.Content, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		src, err := fs.ReadFile(fsys, path.Join(dir, f))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		fn, err := L.Load(bytes.NewReader(src), f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	content, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	if err := validate(content); err != nil {
		return nil, err
	}

	return content, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content is static; scripts get no randomness.
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("random", lua.LNil)
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}
