// Package player holds the owner of the pets: currency, house, supply
// inventory, achievements and story progress.
package player

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nathoo/pupplay/engine/gameerr"
	"github.com/nathoo/pupplay/engine/pet"
	"github.com/nathoo/pupplay/engine/rng"
	"github.com/nathoo/pupplay/types"
)

// Starting values.
const (
	StartingMoney    = 500
	StartingCapacity = 3

	// UnknownSpeciesPrice is the adoption price of a species missing from
	// the content pack.
	UnknownSpeciesPrice = 50

	// XPPerLevel is the experience needed per current level to level up.
	XPPerLevel = 200

	HouseUpgradePerLevel = 200
	HouseCapacityStep    = 2
)

// Inventory counter names.
const (
	Food             = "food"
	Toys             = "toys"
	CleaningSupplies = "cleaningSupplies"
)

// Achievement tags.
const (
	Helper        = "helper"
	GoodSamaritan = "good_samaritan"
)

// House is the player's home. Capacity bounds the pet roster.
type House struct {
	Level       int      `json:"level"`
	Rooms       []string `json:"rooms"`
	Capacity    int      `json:"capacity"`
	Decorations []string `json:"decorations"`
	Cleanliness float64  `json:"cleanliness"`
}

// StoryProgress is the player's side of the story: where they are and what
// they have finished.
type StoryProgress struct {
	CurrentChapter  int      `json:"currentChapter"`
	CompletedQuests []string `json:"completedQuests"`
	UnlockedContent []string `json:"unlockedContent"`
}

// Player owns pets and money.
type Player struct {
	Name          string
	Money         int
	Level         int
	Experience    int
	Pets          []*pet.Pet
	House         House
	Inventory     map[string]int
	Achievements  []string
	StoryProgress StoryProgress
	CreatedAt     time.Time
	LastPlayed    time.Time
}

// Status is a read-only summary of the player.
type Status struct {
	Name          string
	Level         int
	Experience    int
	Money         int
	Pets          []pet.Status
	House         House
	Inventory     map[string]int
	Achievements  []string
	StoryProgress StoryProgress
}

// New creates a player with the starting kit.
func New(name string) *Player {
	now := time.Now().UTC()
	return &Player{
		Name:  name,
		Money: StartingMoney,
		Level: 1,
		Pets:  []*pet.Pet{},
		House: House{
			Level:       1,
			Rooms:       []string{"Living Room"},
			Capacity:    StartingCapacity,
			Decorations: []string{},
			Cleanliness: 100,
		},
		Inventory: map[string]int{
			Food:             10,
			Toys:             2,
			CleaningSupplies: 5,
		},
		Achievements: []string{},
		StoryProgress: StoryProgress{
			CurrentChapter:  1,
			CompletedQuests: []string{},
			UnlockedContent: []string{"basic_pets"},
		},
		CreatedAt:  now,
		LastPlayed: now,
	}
}

// Admit is the guarded path every new pet takes into the roster. Funds are
// checked before capacity and nothing changes on failure.
func (p *Player) Admit(newPet *pet.Pet, price int) error {
	if p.Money < price {
		return gameerr.Funds(price, p.Money)
	}
	if len(p.Pets) >= p.House.Capacity {
		return gameerr.New(gameerr.ErrHouseFull, "House is full! Current capacity: %d", p.House.Capacity)
	}
	p.Money -= price
	p.Pets = append(p.Pets, newPet)
	p.AddExperience(20)
	return nil
}

// AdoptPet adopts a fresh pet of the given species at its base price. A nil
// species costs UnknownSpeciesPrice.
func (p *Player) AdoptPet(species *types.SpeciesDef, speciesName, name, breed string) (*pet.Pet, string, error) {
	price := UnknownSpeciesPrice
	if species != nil {
		price = species.BasePrice
		speciesName = species.Name
	}
	adopted := pet.New(name, speciesName, breed, price)
	if err := p.Admit(adopted, price); err != nil {
		return nil, "", err
	}
	return adopted, fmt.Sprintf("Welcome %s the %s to your family! Cost: $%d", name, speciesName, price), nil
}

// EarnMoney credits amount and never fails.
func (p *Player) EarnMoney(amount int, reason string) string {
	if reason == "" {
		reason = "unknown"
	}
	p.Money += amount
	return fmt.Sprintf("Earned $%d from %s! Total: $%d", amount, reason, p.Money)
}

// SpendMoney debits amount if the player can afford it.
func (p *Player) SpendMoney(amount int, item string) (string, error) {
	if item == "" {
		item = "item"
	}
	if p.Money < amount {
		return "", gameerr.Funds(amount, p.Money)
	}
	p.Money -= amount
	return fmt.Sprintf("Purchased %s for $%d! Remaining: $%d", item, amount, p.Money), nil
}

// UpgradeCost is the price of the next house level.
func (p *Player) UpgradeCost() int {
	return p.House.Level * HouseUpgradePerLevel
}

// UpgradeHouse buys the next house level.
func (p *Player) UpgradeHouse() (string, error) {
	if _, err := p.SpendMoney(p.UpgradeCost(), "house upgrade"); err != nil {
		return "", err
	}
	p.House.Level++
	p.House.Capacity += HouseCapacityStep
	p.House.Rooms = append(p.House.Rooms, fmt.Sprintf("Room %d", p.House.Level))
	p.AddExperience(50)
	return fmt.Sprintf("House upgraded to level %d! Capacity increased to %d pets.", p.House.Level, p.House.Capacity), nil
}

// AddExperience grants experience and applies every level-up it earns. Each
// new level pays newLevel*50. The returned message is empty when the level
// did not change.
func (p *Player) AddExperience(amount int) string {
	p.Experience += amount
	var msgs []string
	for p.Experience >= p.Level*XPPerLevel {
		p.Experience -= p.Level * XPPerLevel
		p.Level++
		bonus := p.Level * 50
		p.Money += bonus
		msgs = append(msgs, fmt.Sprintf("🎉 Player level up! You are now level %d! Earned $%d bonus!", p.Level, bonus))
	}
	return strings.Join(msgs, "\n")
}

// DailyCare passes time for every pet and dirties the house.
func (p *Player) DailyCare(src rng.Source) []string {
	var lines []string
	for _, pt := range p.Pets {
		pt.PassTime(src)
		if needs := pt.NeedsAttention(); len(needs) > 0 {
			lines = append(lines, fmt.Sprintf("%s needs attention: %s", pt.Name, strings.Join(needs, ", ")))
		}
	}
	p.House.Cleanliness -= 5
	if p.House.Cleanliness < 0 {
		p.House.Cleanliness = 0
	}
	return lines
}

// CompleteQuest records a quest and pays the flat quest bonus.
func (p *Player) CompleteQuest(id string) (string, error) {
	if p.QuestDone(id) {
		return "", gameerr.New(gameerr.ErrAlreadyCompleted, "Quest already completed!")
	}
	p.RecordQuest(id)
	p.AddExperience(100)
	p.EarnMoney(150, "quest completion")
	return fmt.Sprintf("Quest %q completed! Gained experience and money!", id), nil
}

// RecordQuest adds id to the completed set without any reward.
func (p *Player) RecordQuest(id string) {
	if !p.QuestDone(id) {
		p.StoryProgress.CompletedQuests = append(p.StoryProgress.CompletedQuests, id)
	}
}

// QuestDone reports whether id is in the completed set.
func (p *Player) QuestDone(id string) bool {
	return slices.Contains(p.StoryProgress.CompletedQuests, id)
}

// Unlock appends content tags. Duplicates are kept.
func (p *Player) Unlock(tags ...string) {
	p.StoryProgress.UnlockedContent = append(p.StoryProgress.UnlockedContent, tags...)
}

// HasUnlocked reports whether the content tag has been unlocked.
func (p *Player) HasUnlocked(tag string) bool {
	return slices.Contains(p.StoryProgress.UnlockedContent, tag)
}

// AddAchievement adds tag once. It reports whether the tag was new.
func (p *Player) AddAchievement(tag string) bool {
	if p.HasAchievement(tag) {
		return false
	}
	p.Achievements = append(p.Achievements, tag)
	return true
}

// HasAchievement reports whether tag has been earned.
func (p *Player) HasAchievement(tag string) bool {
	return slices.Contains(p.Achievements, tag)
}

// Pet returns the pet at a 0-based index.
func (p *Player) Pet(index int) (*pet.Pet, error) {
	if index < 0 || index >= len(p.Pets) {
		return nil, gameerr.New(gameerr.ErrInvalidSelection, "Invalid pet selection!")
	}
	return p.Pets[index], nil
}

// RemovePet drops the pet at index, keeping the order of the rest.
func (p *Player) RemovePet(index int) (*pet.Pet, error) {
	removed, err := p.Pet(index)
	if err != nil {
		return nil, err
	}
	p.Pets = append(p.Pets[:index], p.Pets[index+1:]...)
	return removed, nil
}

// MaxPetLevel is the highest pet level, or 0 with no pets.
func (p *Player) MaxPetLevel() int {
	best := 0
	for _, pt := range p.Pets {
		if pt.Level > best {
			best = pt.Level
		}
	}
	return best
}

// TotalPetLevels sums the levels of all pets.
func (p *Player) TotalPetLevels() int {
	total := 0
	for _, pt := range p.Pets {
		total += pt.Level
	}
	return total
}

// CountTrait counts pets carrying trait.
func (p *Player) CountTrait(trait string) int {
	n := 0
	for _, pt := range p.Pets {
		if pt.HasTrait(trait) {
			n++
		}
	}
	return n
}

// Status returns a snapshot for display.
func (p *Player) Status() Status {
	pets := make([]pet.Status, len(p.Pets))
	for i, pt := range p.Pets {
		pets[i] = pt.Status()
	}
	inv := make(map[string]int, len(p.Inventory))
	for k, v := range p.Inventory {
		inv[k] = v
	}
	house := p.House
	house.Rooms = slices.Clone(p.House.Rooms)
	house.Decorations = slices.Clone(p.House.Decorations)
	progress := p.StoryProgress
	progress.CompletedQuests = slices.Clone(p.StoryProgress.CompletedQuests)
	progress.UnlockedContent = slices.Clone(p.StoryProgress.UnlockedContent)
	return Status{
		Name:          p.Name,
		Level:         p.Level,
		Experience:    p.Experience,
		Money:         p.Money,
		Pets:          pets,
		House:         house,
		Inventory:     inv,
		Achievements:  slices.Clone(p.Achievements),
		StoryProgress: progress,
	}
}
