package loader

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a fresh collector.
func newTestVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func compileString(t *testing.T, src string) *collector {
	t.Helper()
	L, coll := newTestVM()
	defer L.Close()
	if err := L.DoString(src); err != nil {
		t.Fatal(err)
	}
	return coll
}

func TestCompile_NoGame(t *testing.T) {
	if _, err := compile(&collector{}); err == nil {
		t.Fatal("expected error without Game{}")
	}
}

func TestCompile_Game(t *testing.T) {
	coll := compileString(t, `Game { title = "Pets", version = "2.0", intro = "Hello!" }`)
	c, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	if c.Game.Title != "Pets" || c.Game.Version != "2.0" || c.Game.Intro != "Hello!" {
		t.Errorf("Game = %+v", c.Game)
	}
}

func TestCompile_SpeciesKeepsOrder(t *testing.T) {
	coll := compileString(t, `
		Game { title = "T" }
		Species "Rabbit" { base_price = 70, traits = { "gentle" }, breeds = { "Angora", 7, "Lionhead" } }
		Species "Ant" { base_price = 1 }
	`)
	c, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Species) != 2 || c.Species[0].Name != "Rabbit" || c.Species[1].Name != "Ant" {
		t.Fatalf("Species = %+v", c.Species)
	}
	r := c.Species[0]
	if r.BasePrice != 70 || len(r.Traits) != 1 {
		t.Errorf("Rabbit = %+v", r)
	}
	// Non-string breed entries are skipped.
	if len(r.Breeds) != 2 || r.Breeds[1] != "Lionhead" {
		t.Errorf("Breeds = %v", r.Breeds)
	}
	if c.Species[1].Breeds == nil || c.Species[1].Traits == nil {
		t.Error("missing lists should compile to empty slices")
	}
}

func TestCompile_PersonalitySupplyOffer(t *testing.T) {
	coll := compileString(t, `
		Game { title = "T" }
		Personality "calm" { happiness = 5, energy = -10 }
		Personality "independent" { hunger = -10 }
		Supply "Kit" { price = 25, effect = "cleanliness", value = 50, description = "Groom." }
		Offer "discount" { description = "Sale", discount = 0.25 }
		Offer "bundle" { bonus = "starter_pack" }
	`)
	c, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	if p := c.Personalities[0]; p.Name != "calm" || p.Happiness != 5 || p.Energy != -10 || p.Hunger != 0 {
		t.Errorf("calm = %+v", p)
	}
	if p := c.Personalities[1]; p.Hunger != -10 {
		t.Errorf("independent = %+v", p)
	}
	if s := c.Supplies[0]; s.Name != "Kit" || s.Price != 25 || s.Effect != "cleanliness" || s.Value != 50 || s.Description != "Groom." {
		t.Errorf("supply = %+v", s)
	}
	if o := c.Offers[0]; o.Type != "discount" || o.Discount != 0.25 {
		t.Errorf("offer = %+v", o)
	}
	if o := c.Offers[1]; o.Bonus != "starter_pack" {
		t.Errorf("offer = %+v", o)
	}
}

func TestCompile_ChapterAndQuests(t *testing.T) {
	coll := compileString(t, `
		Game { title = "T" }
		Chapter(1) {
			title = "Start",
			description = "Begin.",
			unlocks = { "a", "b" },
			quests = {
				Quest "first" {
					title = "First",
					description = "Do it.",
					requires = { rare_pets = 2, pets = 1 },
					reward = { money = 10, experience = 20 },
				},
				{ id = "plain", requires = { house_level = 2 } },
			},
		}
	`)
	c, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	ch := c.Chapters[0]
	if ch.Number != 1 || ch.Title != "Start" || ch.Description != "Begin." || len(ch.Unlocks) != 2 {
		t.Errorf("chapter = %+v", ch)
	}
	if len(ch.Quests) != 2 {
		t.Fatalf("expected 2 quests, got %d", len(ch.Quests))
	}
	q := ch.Quests[0]
	if q.ID != "first" || q.Title != "First" || q.Reward.Money != 10 || q.Reward.Experience != 20 {
		t.Errorf("quest = %+v", q)
	}
	// Requirements are sorted by kind.
	if len(q.Requires) != 2 || q.Requires[0].Kind != "pets" || q.Requires[1].Kind != "rare_pets" || q.Requires[1].Value != 2 {
		t.Errorf("requires = %+v", q.Requires)
	}
	if ch.Quests[1].ID != "plain" {
		t.Errorf("plain id = %q", ch.Quests[1].ID)
	}
}

func TestCompile_EventsNeighborsInteractions(t *testing.T) {
	coll := compileString(t, `
		Game { title = "T" }
		StoryEvent "Show" {
			description = "A show.",
			choices = {
				{ text = "Enter", outcome = "competition", reward = "Fun!" },
				{ text = "Watch", outcome = "observer" },
			},
		}
		Neighbor "Sarah" { task = "Walk her dog", reward = 50, difficulty = 1 }
		Interactions { "%s wags." }
		Interactions { "%s naps." }
	`)
	c, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	ev := c.Events[0]
	if ev.Title != "Show" || len(ev.Choices) != 2 || ev.Choices[0].Reward != "Fun!" || ev.Choices[1].Outcome != "observer" {
		t.Errorf("event = %+v", ev)
	}
	if n := c.Neighbors[0]; n.Neighbor != "Sarah" || n.Task != "Walk her dog" || n.Reward != 50 || n.Difficulty != 1 {
		t.Errorf("neighbor = %+v", n)
	}
	if len(c.Interactions) != 2 || c.Interactions[1] != "%s naps." {
		t.Errorf("interactions = %v", c.Interactions)
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"story.lua", "pets.lua", "game.lua", "a.lua"})
	want := []string{"game.lua", "a.lua", "pets.lua", "story.lua"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedLuaFiles = %v, want %v", got, want)
		}
	}

	got = sortedLuaFiles([]string{"b.lua", "a.lua"})
	if got[0] != "a.lua" {
		t.Errorf("without game.lua: %v", got)
	}
}
