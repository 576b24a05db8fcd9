// Package loader loads Lua content into Go structs at startup.
// The Lua VM is discarded after loading, so no Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/pupplay/types"
)

// rawNamed holds a named definition table before compilation.
type rawNamed struct {
	name  string
	table *lua.LTable
}

// rawChapter holds a chapter table before compilation.
type rawChapter struct {
	number int
	table  *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList converts the array part of a Lua table to strings, skipping
// non-string values.
func stringList(tbl *lua.LTable) []string {
	out := []string{}
	if tbl == nil {
		return out
	}
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// tableList returns the table elements of an array.
func tableList(tbl *lua.LTable) []*lua.LTable {
	var out []*lua.LTable
	if tbl == nil {
		return out
	}
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, t)
		}
	}
	return out
}

// compile converts all collected Lua data into Content.
func compile(coll *collector) (*types.Content, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	c := &types.Content{
		Game: types.GameDef{
			Title:   getString(coll.game, "title"),
			Version: getString(coll.game, "version"),
			Intro:   getString(coll.game, "intro"),
		},
		Interactions: coll.interactions,
	}

	for _, raw := range coll.species {
		c.Species = append(c.Species, types.SpeciesDef{
			Name:      raw.name,
			BasePrice: getInt(raw.table, "base_price"),
			Traits:    stringList(getTable(raw.table, "traits")),
			Breeds:    stringList(getTable(raw.table, "breeds")),
		})
	}

	for _, raw := range coll.personalities {
		c.Personalities = append(c.Personalities, types.PersonalityDef{
			Name:      raw.name,
			Happiness: getNumber(raw.table, "happiness"),
			Energy:    getNumber(raw.table, "energy"),
			Hunger:    getNumber(raw.table, "hunger"),
		})
	}

	for _, raw := range coll.supplies {
		c.Supplies = append(c.Supplies, types.SupplyDef{
			Name:        raw.name,
			Price:       getInt(raw.table, "price"),
			Effect:      getString(raw.table, "effect"),
			Value:       getNumber(raw.table, "value"),
			Description: getString(raw.table, "description"),
		})
	}

	for _, raw := range coll.offers {
		c.Offers = append(c.Offers, types.SpecialOffer{
			Type:        raw.name,
			Description: getString(raw.table, "description"),
			Discount:    getNumber(raw.table, "discount"),
			Bonus:       getString(raw.table, "bonus"),
			Effect:      getString(raw.table, "effect"),
		})
	}

	for _, raw := range coll.chapters {
		ch, err := compileChapter(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling chapter %d: %w", raw.number, err)
		}
		c.Chapters = append(c.Chapters, ch)
	}
	sort.SliceStable(c.Chapters, func(i, j int) bool {
		return c.Chapters[i].Number < c.Chapters[j].Number
	})

	for _, raw := range coll.events {
		ev := types.StoryEventDef{
			Title:       raw.name,
			Description: getString(raw.table, "description"),
		}
		for _, ct := range tableList(getTable(raw.table, "choices")) {
			ev.Choices = append(ev.Choices, types.ChoiceDef{
				Text:    getString(ct, "text"),
				Outcome: getString(ct, "outcome"),
				Reward:  getString(ct, "reward"),
			})
		}
		c.Events = append(c.Events, ev)
	}

	for _, raw := range coll.neighbors {
		c.Neighbors = append(c.Neighbors, types.NeighborTask{
			Neighbor:   raw.name,
			Task:       getString(raw.table, "task"),
			Reward:     getInt(raw.table, "reward"),
			Difficulty: getInt(raw.table, "difficulty"),
		})
	}

	return c, nil
}

func compileChapter(raw rawChapter) (types.ChapterDef, error) {
	tbl := raw.table
	ch := types.ChapterDef{
		Number:      raw.number,
		Title:       getString(tbl, "title"),
		Description: getString(tbl, "description"),
		Unlocks:     stringList(getTable(tbl, "unlocks")),
	}
	for i, qt := range tableList(getTable(tbl, "quests")) {
		id := getString(qt, "__quest_id")
		if id == "" {
			id = getString(qt, "id")
		}
		if id == "" {
			return ch, fmt.Errorf("quest %d has no id", i+1)
		}
		q := types.QuestDef{
			ID:          id,
			Title:       getString(qt, "title"),
			Description: getString(qt, "description"),
			Requires:    compileRequirements(getTable(qt, "requires")),
		}
		if rt := getTable(qt, "reward"); rt != nil {
			q.Reward = types.Reward{
				Money:      getInt(rt, "money"),
				Experience: getInt(rt, "experience"),
			}
		}
		ch.Quests = append(ch.Quests, q)
	}
	return ch, nil
}

// compileRequirements converts a { kind = N } table into requirements
// sorted by kind.
func compileRequirements(tbl *lua.LTable) []types.Requirement {
	var reqs []types.Requirement
	if tbl == nil {
		return reqs
	}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		r := types.Requirement{Kind: string(ks)}
		if n, ok := v.(lua.LNumber); ok {
			r.Value = int(n)
		} else {
			r.Raw = v.String()
		}
		reqs = append(reqs, r)
	})
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Kind < reqs[j].Kind })
	return reqs
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
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
