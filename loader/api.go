package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Species "Dog" { base_price = 100, traits = {...}, breeds = {...} }
	L.SetGlobal("Species", named(L, func(r rawNamed) { coll.species = append(coll.species, r) }))

	// Personality "friendly" { happiness = 10 }
	L.SetGlobal("Personality", named(L, func(r rawNamed) { coll.personalities = append(coll.personalities, r) }))

	// Supply "Premium Pet Food" { price = 20, effect = "hunger", value = 40 }
	L.SetGlobal("Supply", named(L, func(r rawNamed) { coll.supplies = append(coll.supplies, r) }))

	// Offer "discount" { description = "...", discount = 0.2 }
	L.SetGlobal("Offer", named(L, func(r rawNamed) { coll.offers = append(coll.offers, r) }))

	// StoryEvent "title" { description = "...", choices = {...} }
	L.SetGlobal("StoryEvent", named(L, func(r rawNamed) { coll.events = append(coll.events, r) }))

	// Neighbor "Sarah" { task = "...", reward = 50, difficulty = 1 }
	L.SetGlobal("Neighbor", named(L, func(r rawNamed) { coll.neighbors = append(coll.neighbors, r) }))

	// Chapter(1) { title = "...", quests = { Quest "id" {...}, ... } }
	L.SetGlobal("Chapter", L.NewFunction(func(L *lua.LState) int {
		number := L.CheckInt(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.chapters = append(coll.chapters, rawChapter{number: number, table: tbl})
			return 0
		}))
		return 1
	}))

	// Quest "id" { ... } returns its table tagged with the id, for use inside
	// a chapter's quests list.
	L.SetGlobal("Quest", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString("__quest_id", lua.LString(id))
			L.Push(tbl)
			return 1
		}))
		return 1
	}))

	// Interactions { "%s wags tail happily!", ... }
	L.SetGlobal("Interactions", L.NewFunction(func(L *lua.LState) int {
		coll.interactions = append(coll.interactions, stringList(L.CheckTable(1))...)
		return 0
	}))
}

// named builds a curried constructor: Name("id") returns a function that
// takes the definition table.
func named(L *lua.LState, add func(rawNamed)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(rawNamed{name: name, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	})
}
