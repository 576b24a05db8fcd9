package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/pupplay/engine/parser"
	"github.com/nathoo/pupplay/types"
)

// Step parses one text command, runs it and returns the lines to show.
// Pet, shop, supply, choice and neighbor numbers are 1-based here.
func (e *Engine) Step(ctx context.Context, input string) []string {
	intent := parser.Parse(input)

	switch intent.Verb {
	case "":
		return []string{"What do you want to do?"}

	// Session
	case "new":
		return lines(e.NewGame(intent.Object))
	case "load":
		if intent.Object == "" {
			return []string{"Usage: load <name>"}
		}
		res, err := e.LoadGame(ctx, intent.Object)
		if err != nil {
			e.logger.Printf("load failed: %v", err)
			return []string{fmt.Sprintf("Could not load game: %v", err)}
		}
		return lines(res)
	case "save":
		res, err := e.SaveGame(ctx)
		if err != nil {
			e.logger.Printf("save failed: %v", err)
			return []string{fmt.Sprintf("Could not save game: %v", err)}
		}
		return lines(res)
	case "saves":
		return e.savesLines(ctx)
	case "end":
		return lines(e.EndSession())

	// Care
	case "feed":
		return lines(e.FeedPet(petIndex(intent.Object)))
	case "play":
		return lines(e.PlayWithPet(petIndex(intent.Object)))
	case "clean":
		return lines(e.CleanPet(petIndex(intent.Object)))
	case "rest":
		return lines(e.PetRest(petIndex(intent.Object)))
	case "interact":
		return lines(e.InteractWithPet(petIndex(intent.Object)))

	// Adoption and shop
	case "adopt":
		fields := strings.Fields(intent.Object)
		if len(fields) < 2 {
			return []string{"Usage: adopt <species> <name> [breed]"}
		}
		return lines(e.AdoptPet(fields[0], fields[1], strings.Join(fields[2:], " ")))
	case "shop":
		return shopLines(e.VisitShop())
	case "buy":
		fields := strings.Fields(intent.Object)
		if len(fields) < 2 {
			return []string{"Usage: buy <number> <name>"}
		}
		return lines(e.PurchasePet(index(fields[0]), strings.Join(fields[1:], " ")))
	case "supply":
		fields := strings.Fields(intent.Object)
		if len(fields) == 0 {
			return []string{"Usage: supply <number> [quantity]"}
		}
		qty := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				n = 0
			}
			qty = n
		}
		return lines(e.PurchaseSupply(index(fields[0]), qty))
	case "use":
		if intent.Object == "" || intent.Target == "" {
			return []string{"Usage: use <supply> on <pet number>"}
		}
		return lines(e.UseSupply(intent.Object, index(intent.Target)))

	// House
	case "upgrade":
		return lines(e.UpgradeHouse())
	case "cleanhouse":
		return lines(e.CleanHouse())

	// Story
	case "story":
		return storyLines(e.EnterStory())
	case "choose":
		return lines(e.ProcessStoryChoice(index(intent.Object)))
	case "neighbors":
		return neighborLines(e.NeighborHelp())
	case "help":
		if intent.Object == "" {
			return commandLines()
		}
		return lines(e.HelpNeighbor(index(intent.Object)))

	// Information
	case "status":
		return statusLines(e.Status())
	case "pet":
		return petLines(e.PetDetails(petIndex(intent.Object)))
	case "features":
		features := e.AvailableFeatures()
		if features == nil {
			return []string{noPlayer.Error()}
		}
		return []string{"Available features: " + strings.Join(features, ", ")}
	case "wait":
		if !e.HasPlayer() {
			return []string{noPlayer.Error()}
		}
		out := e.Tick()
		if len(out) == 0 {
			return []string{"Time passes..."}
		}
		return out
	case "commands":
		return commandLines()
	}

	return []string{fmt.Sprintf("I don't know how to %q. Type help for commands.", intent.Verb)}
}

// index converts a 1-based number to a 0-based index; anything that is
// not a number maps to -1.
func index(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return n - 1
}

// petIndex is index with the first pet as default.
func petIndex(s string) int {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	return index(s)
}

func lines(r types.Result) []string {
	out := strings.Split(r.Message, "\n")
	for _, n := range r.Notes {
		out = append(out, strings.Split(n, "\n")...)
	}
	return out
}

func (e *Engine) savesLines(ctx context.Context) []string {
	names, err := e.ListSaves(ctx)
	if err != nil {
		e.logger.Printf("list saves failed: %v", err)
		return []string{fmt.Sprintf("Could not list saves: %v", err)}
	}
	if len(names) == 0 {
		return []string{"No saved games."}
	}
	return []string{"Saved games: " + strings.Join(names, ", ")}
}

func shopLines(o types.Outcome[ShopView]) []string {
	if !o.OK {
		return lines(o.Result)
	}
	v := o.Data
	out := []string{o.Message, fmt.Sprintf("Your money: $%d", v.PlayerMoney)}
	for _, offer := range v.Offers {
		out = append(out, "✨ "+offer.Description)
	}
	out = append(out, "Pets for sale:")
	for i, p := range v.Pets {
		line := fmt.Sprintf("  %d. %s %s (%s) $%d", i+1, p.Breed, p.Species, p.Personality, p.FinalPrice)
		if len(p.Traits) > 0 {
			line += " [" + strings.Join(p.Traits, ", ") + "]"
		}
		out = append(out, line)
	}
	out = append(out, "Supplies:")
	for i, s := range v.Supplies {
		out = append(out, fmt.Sprintf("  %d. %s $%d - %s", i+1, s.Name, s.Price, s.Description))
	}
	return out
}

func storyLines(o types.Outcome[StoryView]) []string {
	if !o.OK {
		return lines(o.Result)
	}
	v := o.Data
	out := []string{o.Message}
	if v.Chapter != nil && v.Chapter.Description != "" {
		out = append(out, v.Chapter.Description)
	}
	if len(v.Quests) == 0 {
		out = append(out, "All quests in this chapter are complete.")
	} else {
		out = append(out, "Quests:")
		for _, q := range v.Quests {
			out = append(out, fmt.Sprintf("  - %s: %s", q.Title, q.Description))
		}
	}
	if v.Pending != nil {
		out = append(out, formatPending(v.Pending)...)
	}
	return out
}

func formatPending(ev *types.StoryEventDef) []string {
	out := []string{fmt.Sprintf("Waiting for your choice: %s", ev.Title)}
	for i, c := range ev.Choices {
		out = append(out, fmt.Sprintf("  %d. %s", i+1, c.Text))
	}
	return out
}

func neighborLines(o types.Outcome[[]types.NeighborTask]) []string {
	out := []string{o.Message}
	for i, t := range o.Data {
		out = append(out, fmt.Sprintf("  %d. %s: %s ($%d, difficulty %d)", i+1, t.Neighbor, t.Task, t.Reward, t.Difficulty))
	}
	return out
}

func statusLines(o types.Outcome[StatusView]) []string {
	if !o.OK {
		return []string{o.Message}
	}
	v := o.Data
	p := v.Player
	out := []string{
		fmt.Sprintf("%s | Level %d (%d xp) | $%d | Chapter %d", p.Name, p.Level, p.Experience, p.Money, v.Chapter),
		fmt.Sprintf("House: level %d, %d/%d pets, cleanliness %.0f%%", p.House.Level, len(p.Pets), p.House.Capacity, p.House.Cleanliness),
	}
	if len(p.Pets) == 0 {
		out = append(out, "You have no pets yet. Try 'shop' or 'adopt'.")
	}
	for i, pt := range p.Pets {
		line := fmt.Sprintf("  %d. %s the %s %s (Lv %d) happy %.0f hunger %.0f energy %.0f clean %.0f health %.0f",
			i+1, pt.Name, pt.Breed, pt.Species, pt.Level, pt.Happiness, pt.Hunger, pt.Energy, pt.Cleanliness, pt.Health)
		if len(pt.NeedsAttention) > 0 {
			line += " | needs: " + strings.Join(pt.NeedsAttention, ", ")
		}
		out = append(out, line)
	}

	var items []string
	for name, n := range p.Inventory {
		if n > 0 {
			items = append(items, fmt.Sprintf("%s x%d", name, n))
		}
	}
	sort.Strings(items)
	if len(items) > 0 {
		out = append(out, "Inventory: "+strings.Join(items, ", "))
	}
	if len(p.Achievements) > 0 {
		out = append(out, "Achievements: "+strings.Join(p.Achievements, ", "))
	}
	out = append(out, fmt.Sprintf("Quests available: %d | Pets in shop: %d", v.AvailableQuests, v.ShopPets))
	return out
}

func petLines(o types.Outcome[PetView]) []string {
	if !o.OK {
		return lines(o.Result)
	}
	p := o.Data.Pet
	out := []string{
		fmt.Sprintf("%s the %s %s, level %d (%d xp), age %.1f", p.Name, p.Breed, p.Species, p.Level, p.Experience, p.Age),
		fmt.Sprintf("Happiness %.0f | Hunger %.0f | Energy %.0f | Cleanliness %.0f | Health %.0f",
			p.Happiness, p.Hunger, p.Energy, p.Cleanliness, p.Health),
	}
	if len(p.Traits) > 0 {
		out = append(out, "Traits: "+strings.Join(p.Traits, ", "))
	}
	if len(p.NeedsAttention) > 0 {
		out = append(out, "Needs: "+strings.Join(p.NeedsAttention, ", "))
	}
	for _, in := range o.Data.Interactions {
		out = append(out, fmt.Sprintf("  %s - %s", in.Action, in.Description))
	}
	return out
}

func commandLines() []string {
	return []string{
		"Session:  new <name>, load <name>, save, saves, end",
		"Care:     feed|play|clean|rest|interact [pet number]",
		"Pets:     adopt <species> <name> [breed], pet <number>, status",
		"Shop:     shop, buy <number> <name>, supply <number> [qty], use <supply> on <pet>",
		"House:    upgrade, clean house",
		"Story:    story, choose <number>, neighbors, help <number>, features",
		"Time:     wait",
	}
}
