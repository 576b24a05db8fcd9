// Package engine is the session orchestrator. It owns the current player,
// the story and the shop, and exposes every game action as a method that
// returns a types.Result. All public methods are safe for concurrent use.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/nathoo/pupplay/engine/gameerr"
	"github.com/nathoo/pupplay/engine/pet"
	"github.com/nathoo/pupplay/engine/player"
	"github.com/nathoo/pupplay/engine/rng"
	"github.com/nathoo/pupplay/engine/save"
	"github.com/nathoo/pupplay/engine/shop"
	"github.com/nathoo/pupplay/engine/story"
	"github.com/nathoo/pupplay/types"
)

// State is the coarse mode the game is in.
type State string

const (
	StateMenu    State = "menu"
	StatePlaying State = "playing"
	StateStory   State = "story"
	StateShop    State = "shop"
)

// Game tuning.
const (
	InteractionChance = 0.1
	CleanHouseCost    = 10
)

// Feature tags reported by AvailableFeatures.
const (
	FeatureBasicCare        = "basic_care"
	FeaturePetShop          = "pet_shop"
	FeatureAdvancedPets     = "advanced_pets"
	FeatureHouseDecorations = "house_decorations"
	FeaturePetBreeding      = "pet_breeding"
	FeatureCompetitions     = "competitions"
	FeatureTrading          = "trading"
)

var noPlayer = gameerr.New(gameerr.ErrNoActivePlayer, "No active game! Start a new game or load one.")

// Options configures an Engine. Content is required; the rest have defaults.
type Options struct {
	Content *types.Content
	Store   save.Store  // default: FileStore in "saves"
	Source  rng.Source  // default: time-seeded RNG
	Logger  *log.Logger // default: discards
}

// Engine holds one game session.
type Engine struct {
	mu sync.Mutex

	content *types.Content
	store   save.Store
	src     rng.Source
	logger  *log.Logger

	player *player.Player
	story  *story.Story
	shop   *shop.Shop
	state  State
}

// New creates an engine in the menu state with a freshly stocked shop.
func New(opts Options) *Engine {
	if opts.Store == nil {
		opts.Store = save.NewFileStore("saves")
	}
	if opts.Source == nil {
		opts.Source = rng.New(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		content: opts.Content,
		store:   opts.Store,
		src:     opts.Source,
		logger:  opts.Logger,
		story:   story.New(opts.Content, opts.Source),
		shop:    shop.New(opts.Content, opts.Source),
		state:   StateMenu,
	}
}

// Content returns the loaded content pack.
func (e *Engine) Content() *types.Content {
	return e.content
}

// State returns the current game state tag.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// HasPlayer reports whether a session is active.
func (e *Engine) HasPlayer() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.player != nil
}

func ok(msg string, notes ...string) types.Result {
	return types.Result{OK: true, Message: msg, Notes: notes}
}

func fail(err error) types.Result {
	return types.Result{OK: false, Message: err.Error(), Err: err}
}

// --- Session ---

// NewGame starts a fresh session for name.
func (e *Engine) NewGame(name string) types.Result {
	name = strings.TrimSpace(name)
	if name == "" {
		return fail(gameerr.New(gameerr.ErrInvalidSelection, "Please enter a name!"))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.player = player.New(name)
	e.story = story.New(e.content, e.src)
	e.state = StatePlaying
	e.logger.Printf("new game for %q", name)
	return ok(fmt.Sprintf("Welcome to %s, %s! Your adventure begins now.", e.content.Game.Title, name))
}

// LoadGame restores the saved session for name. A missing save is a
// non-OK result; a store failure or corrupt save is returned as an error.
func (e *Engine) LoadGame(ctx context.Context, name string) (types.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.store.Load(ctx, name)
	if errors.Is(err, gameerr.ErrSaveNotFound) {
		return fail(err), nil
	}
	if err != nil {
		return types.Result{}, fmt.Errorf("load game for %s: %w", name, err)
	}

	e.player = snap.ToPlayer()
	e.story = story.New(e.content, e.src)
	e.story.Sync(e.player.StoryProgress)
	e.state = StatePlaying
	e.logger.Printf("loaded game for %q (chapter %d)", e.player.Name, e.story.ChapterNumber())
	return ok(fmt.Sprintf("Welcome back, %s!", name)), nil
}

// SaveGame persists the current player.
func (e *Engine) SaveGame(ctx context.Context) (types.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(gameerr.New(gameerr.ErrNoActivePlayer, "No active game to save!")), nil
	}
	loc, err := e.store.Save(ctx, save.FromPlayer(e.player))
	if err != nil {
		return types.Result{}, fmt.Errorf("save game for %s: %w", e.player.Name, err)
	}
	e.logger.Printf("saved game for %q to %s", e.player.Name, loc)
	return ok("Game saved to " + loc), nil
}

// ListSaves returns the names of every stored save.
func (e *Engine) ListSaves(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// EndSession drops the current player and returns to the menu. A tick
// arriving afterwards is a no-op.
func (e *Engine) EndSession() types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	name := e.player.Name
	e.player = nil
	e.state = StateMenu
	e.logger.Printf("ended session for %q", name)
	return ok(fmt.Sprintf("See you soon, %s!", name))
}

// --- Pet care ---

// FeedPet feeds the pet at index.
func (e *Engine) FeedPet(index int) types.Result {
	return e.care(index, 5, (*pet.Pet).Feed)
}

// PlayWithPet plays with the pet at index.
func (e *Engine) PlayWithPet(index int) types.Result {
	return e.care(index, 10, (*pet.Pet).Play)
}

// CleanPet cleans the pet at index.
func (e *Engine) CleanPet(index int) types.Result {
	return e.care(index, 3, (*pet.Pet).Clean)
}

// PetRest lets the pet at index rest.
func (e *Engine) PetRest(index int) types.Result {
	return e.care(index, 2, (*pet.Pet).Rest)
}

// InteractWithPet spends a moment with the pet at index: a flavor line,
// +5 happiness and +2 pet experience.
func (e *Engine) InteractWithPet(index int) types.Result {
	return e.care(index, 1, func(p *pet.Pet) string {
		msg := p.RandomInteraction(e.src, e.content.Interactions)
		p.Apply(pet.Happiness, 5)
		p.Experience += 2
		p.Touch()
		return msg
	})
}

func (e *Engine) care(index, playerXP int, act func(*pet.Pet) string) types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	p, err := e.player.Pet(index)
	if err != nil {
		return fail(err)
	}
	msg := act(p)
	if levelUp := e.player.AddExperience(playerXP); levelUp != "" {
		return ok(msg, levelUp)
	}
	return ok(msg)
}

// --- Adoption and shop ---

// AdoptPet adopts a new pet of the named species at its base price.
// Unknown species are accepted at player.UnknownSpeciesPrice.
func (e *Engine) AdoptPet(species, name, breed string) types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	if strings.TrimSpace(name) == "" {
		return fail(gameerr.New(gameerr.ErrInvalidSelection, "Please give your new pet a name!"))
	}
	_, msg, err := e.player.AdoptPet(e.findSpecies(species), species, name, breed)
	if err != nil {
		return fail(err)
	}
	return ok(msg, e.story.CheckQuestProgress(e.player)...)
}

func (e *Engine) findSpecies(name string) *types.SpeciesDef {
	for i := range e.content.Species {
		if strings.EqualFold(e.content.Species[i].Name, name) {
			return &e.content.Species[i]
		}
	}
	return nil
}

// ShopView is what the player sees on entering the shop.
type ShopView struct {
	Pets        []ShopPet
	Supplies    []types.SupplyDef
	Offers      []types.SpecialOffer
	Discount    float64 // price multiplier
	PlayerMoney int
}

// ShopPet is a catalog entry with its discounted price.
type ShopPet struct {
	shop.Entry
	FinalPrice int
}

// VisitShop enters the shop.
func (e *Engine) VisitShop() types.Outcome[ShopView] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return types.Outcome[ShopView]{Result: fail(noPlayer)}
	}
	e.state = StateShop

	catalog := e.shop.Catalog()
	pets := make([]ShopPet, len(catalog))
	for i, entry := range catalog {
		pets[i] = ShopPet{Entry: entry, FinalPrice: e.shop.FinalPrice(entry)}
	}
	return types.Outcome[ShopView]{
		Result: ok("Welcome to the Pet Shop!"),
		Data: ShopView{
			Pets:        pets,
			Supplies:    e.shop.Supplies(),
			Offers:      e.shop.Offers(),
			Discount:    e.shop.CurrentDiscount(),
			PlayerMoney: e.player.Money,
		},
	}
}

// PurchasePet buys the catalog entry at index and names it.
func (e *Engine) PurchasePet(index int, name string) types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	if strings.TrimSpace(name) == "" {
		return fail(gameerr.New(gameerr.ErrInvalidSelection, "Please give your new pet a name!"))
	}
	_, msg, err := e.shop.PurchasePet(e.player, index, name)
	if err != nil {
		return fail(err)
	}
	return ok(msg, e.story.CheckQuestProgress(e.player)...)
}

// PurchaseSupply buys quantity units of the supply at index.
func (e *Engine) PurchaseSupply(index, quantity int) types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	msg, err := e.shop.PurchaseSupply(e.player, index, quantity)
	if err != nil {
		return fail(err)
	}
	return ok(msg)
}

// UseSupply uses one unit of the named supply on the pet at petIndex.
// The supply name is matched case-insensitively against the shop list.
func (e *Engine) UseSupply(name string, petIndex int) types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	for _, sup := range e.shop.Supplies() {
		if strings.EqualFold(sup.Name, name) {
			name = sup.Name
			break
		}
	}
	msg, err := e.shop.UseSupply(e.player, name, petIndex)
	if err != nil {
		return fail(err)
	}
	return ok(msg)
}

// --- House ---

// UpgradeHouse buys the next house level.
func (e *Engine) UpgradeHouse() types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	msg, err := e.player.UpgradeHouse()
	if err != nil {
		return fail(err)
	}
	return ok(msg, e.story.CheckQuestProgress(e.player)...)
}

// CleanHouse cleans the house for CleanHouseCost; every pet is a little
// happier afterwards.
func (e *Engine) CleanHouse() types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	if _, err := e.player.SpendMoney(CleanHouseCost, "house cleaning"); err != nil {
		return fail(err)
	}
	e.player.House.Cleanliness = pet.MaxVital
	for _, p := range e.player.Pets {
		p.Apply(pet.Happiness, 5)
	}
	msg := "House cleaned! All pets are happier in the clean environment."
	if levelUp := e.player.AddExperience(10); levelUp != "" {
		return ok(msg, levelUp)
	}
	return ok(msg)
}

// --- Story ---

// StoryView is the story screen.
type StoryView struct {
	Chapter  *story.Chapter
	Quests   []*story.Quest
	Progress player.StoryProgress
	Pending  *types.StoryEventDef // nil when no event waits for a choice
}

// EnterStory switches to story mode.
func (e *Engine) EnterStory() types.Outcome[StoryView] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return types.Outcome[StoryView]{Result: fail(noPlayer)}
	}
	e.state = StateStory
	pending, _ := e.story.Pending()
	ch := e.story.CurrentChapter()
	msg := "The story continues."
	if ch != nil {
		msg = fmt.Sprintf("Chapter %d: %s", ch.Number, ch.Title)
	}
	return types.Outcome[StoryView]{
		Result: ok(msg),
		Data: StoryView{
			Chapter:  ch,
			Quests:   e.story.AvailableQuests(),
			Progress: e.player.StoryProgress,
			Pending:  pending,
		},
	}
}

// ProcessStoryChoice answers the pending story event.
func (e *Engine) ProcessStoryChoice(choiceIndex int) types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	msg, err := e.story.ProcessChoice(e.player, choiceIndex)
	if err != nil {
		return fail(err)
	}
	return ok(msg)
}

// --- Neighbors ---

// NeighborHelp lists the neighbors who could use a hand.
func (e *Engine) NeighborHelp() types.Outcome[[]types.NeighborTask] {
	tasks := append([]types.NeighborTask(nil), e.content.Neighbors...)
	return types.Outcome[[]types.NeighborTask]{Result: ok("Your neighbors could use some help:"), Data: tasks}
}

// HelpNeighbor performs the neighbor task at index.
func (e *Engine) HelpNeighbor(index int) types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return fail(noPlayer)
	}
	if index < 0 || index >= len(e.content.Neighbors) {
		return fail(gameerr.New(gameerr.ErrInvalidSelection, "Invalid help option!"))
	}
	task := e.content.Neighbors[index]
	e.player.EarnMoney(task.Reward, "helping "+task.Neighbor)
	levelUp := e.player.AddExperience(task.Difficulty * 25)
	e.player.AddAchievement(player.Helper)

	var notes []string
	if levelUp != "" {
		notes = append(notes, levelUp)
	}
	notes = append(notes, e.story.CheckQuestProgress(e.player)...)
	return ok(fmt.Sprintf("Helped %s with %s! Earned $%d and gained experience.", task.Neighbor, task.Task, task.Reward), notes...)
}

// --- Information ---

// StatusView summarizes the session.
type StatusView struct {
	State           State
	Player          player.Status
	Chapter         int
	AvailableQuests int
	ShopPets        int
}

// Status reports the session summary. Without a player only State is set.
func (e *Engine) Status() types.Outcome[StatusView] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return types.Outcome[StatusView]{
			Result: types.Result{Message: "No active game", Err: noPlayer},
			Data:   StatusView{State: e.state},
		}
	}
	return types.Outcome[StatusView]{
		Result: ok(e.player.Name),
		Data: StatusView{
			State:           e.state,
			Player:          e.player.Status(),
			Chapter:         e.story.ChapterNumber(),
			AvailableQuests: len(e.story.AvailableQuests()),
			ShopPets:        len(e.shop.Catalog()),
		},
	}
}

// Interaction describes one care action offered on the pet screen.
type Interaction struct {
	Action      string
	Description string
}

var petInteractions = []Interaction{
	{"feed", "Feed your pet to reduce hunger"},
	{"play", "Play with your pet to increase happiness"},
	{"clean", "Clean your pet to improve cleanliness"},
	{"rest", "Let your pet rest to restore energy"},
	{"interact", "Interact with your pet for bonding"},
}

// PetView is the detail screen of one pet.
type PetView struct {
	Pet          pet.Status
	Interactions []Interaction
}

// PetDetails returns the detail view of the pet at index.
func (e *Engine) PetDetails(index int) types.Outcome[PetView] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return types.Outcome[PetView]{Result: fail(noPlayer)}
	}
	p, err := e.player.Pet(index)
	if err != nil {
		return types.Outcome[PetView]{Result: fail(err)}
	}
	return types.Outcome[PetView]{
		Result: ok(p.Name),
		Data: PetView{
			Pet:          p.Status(),
			Interactions: append([]Interaction(nil), petInteractions...),
		},
	}
}

// AvailableFeatures lists the features the player has access to.
func (e *Engine) AvailableFeatures() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return nil
	}
	features := []string{FeatureBasicCare, FeaturePetShop}
	if e.player.HasUnlocked("advanced_pets") {
		features = append(features, FeatureAdvancedPets)
	}
	if e.player.HasUnlocked("decorations") {
		features = append(features, FeatureHouseDecorations)
	}
	if e.player.HasUnlocked("breeding") {
		features = append(features, FeaturePetBreeding)
	}
	if e.player.Level >= 5 {
		features = append(features, FeatureCompetitions)
	}
	if e.player.Level >= 10 {
		features = append(features, FeatureTrading)
	}
	return features
}

// --- Time ---

// Tick advances the simulation one step and returns what happened, in
// order: pet interactions and level-ups, quest completions, a story event,
// then pets needing attention.
func (e *Engine) Tick() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return nil
	}
	var lines []string

	for _, p := range e.player.Pets {
		p.PassTime(e.src)
		if e.src.Float64() < InteractionChance {
			lines = append(lines, "🐾 "+p.RandomInteraction(e.src, e.content.Interactions))
		}
		if msg, leveled := p.CheckLevelUp(); leveled {
			lines = append(lines, msg)
		}
	}

	lines = append(lines, e.story.CheckQuestProgress(e.player)...)

	if ev, raised := e.story.MaybeEvent(); raised {
		lines = append(lines, story.FormatEvent(ev)...)
	}

	lines = append(lines, e.player.DailyCare(e.src)...)
	return lines
}
