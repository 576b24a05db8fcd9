// Package types defines the shared data structures for the PupPlay engine.
// This package contains only type definitions, no logic and no methods.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional, original case preserved
	Target string // optional, text after "on"/"to"
}

// Result is the uniform outcome of a player action.
type Result struct {
	OK      bool
	Message string
	Notes   []string // follow-up lines, e.g. quest completions
	Err     error    // set when OK is false
}

// Outcome is a Result that also carries a structured payload.
type Outcome[T any] struct {
	Result
	Data T
}

// GameDef holds content metadata.
type GameDef struct {
	Title   string
	Version string
	Intro   string
}

// SpeciesDef is a purchasable species with its base price and traits.
type SpeciesDef struct {
	Name      string
	BasePrice int
	Traits    []string
	Breeds    []string
}

// PersonalityDef is the vital adjustment applied when a shop pet with this
// personality is purchased. Zero fields mean no effect.
type PersonalityDef struct {
	Name      string
	Happiness float64
	Energy    float64
	Hunger    float64
}

// SupplyDef is a consumable sold by the shop.
type SupplyDef struct {
	Name        string
	Price       int
	Effect      string // vital name: hunger, happiness, cleanliness, energy, health
	Value       float64
	Description string
}

// SpecialOffer is a shop promotion. Only "discount" offers change prices.
type SpecialOffer struct {
	Type        string // "discount", "bundle", "rare_day"
	Description string
	Discount    float64
	Bonus       string
	Effect      string
}

// Requirement is one predicate a quest must satisfy. Kind is one of
// pets, house_level, max_pet_level, care_actions, help_actions, rare_pets.
type Requirement struct {
	Kind  string
	Value int
	Raw   string // the content's value when it was not a number
}

// Reward is granted once when a quest completes.
type Reward struct {
	Money      int
	Experience int
}

// QuestDef is the static definition of a quest.
type QuestDef struct {
	ID          string
	Title       string
	Description string
	Requires    []Requirement // priority order
	Reward      Reward
}

// ChapterDef is the static definition of a story chapter.
type ChapterDef struct {
	Number      int
	Title       string
	Description string
	Quests      []QuestDef
	Unlocks     []string
}

// ChoiceDef is one option of a story event.
type ChoiceDef struct {
	Text    string
	Outcome string
	Reward  string
}

// StoryEventDef is a random story event surfaced during play.
type StoryEventDef struct {
	Title       string
	Description string
	Choices     []ChoiceDef
}

// NeighborTask is a paid favor for an AI neighbor.
type NeighborTask struct {
	Neighbor   string
	Task       string
	Reward     int
	Difficulty int
}

// Content holds every immutable definition loaded from Lua.
type Content struct {
	Game          GameDef
	Species       []SpeciesDef
	Personalities []PersonalityDef
	Supplies      []SupplyDef
	Offers        []SpecialOffer
	Chapters      []ChapterDef // ordered by Number
	Events        []StoryEventDef
	Neighbors     []NeighborTask
	Interactions  []string // templates with a single %s for the pet name
}
