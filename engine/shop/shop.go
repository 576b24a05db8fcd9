// Package shop generates the pet catalog and sells pets and supplies to a
// player.
package shop

import (
	"fmt"
	"math"

	"github.com/nathoo/pupplay/engine/gameerr"
	"github.com/nathoo/pupplay/engine/pet"
	"github.com/nathoo/pupplay/engine/player"
	"github.com/nathoo/pupplay/engine/rng"
	"github.com/nathoo/pupplay/types"
)

// Catalog generation parameters.
const (
	BreedsPerSpecies = 3
	PriceJitter      = 30
	MaxAge           = 2
	RestockBelow     = 10

	RareChance      = 0.1
	LegendaryChance = 0.05
)

// Trait tags added by catalog rolls.
const (
	Rare      = "rare"
	Legendary = "legendary"
)

// DiscountOffer is the only offer type that changes prices.
const DiscountOffer = "discount"

// Entry is a pet for sale. It is consumed by a purchase.
type Entry struct {
	Species     string
	Breed       string
	Price       int
	Traits      []string
	Age         float64
	Personality string
}

// Shop owns the catalog. Reference data comes from the content pack and is
// never mutated.
type Shop struct {
	species       []types.SpeciesDef
	personalities []types.PersonalityDef
	supplies      []types.SupplyDef
	offers        []types.SpecialOffer
	src           rng.Source

	catalog []Entry
}

// New builds a shop and generates its first catalog.
func New(content *types.Content, src rng.Source) *Shop {
	s := &Shop{
		species:       content.Species,
		personalities: content.Personalities,
		supplies:      content.Supplies,
		offers:        content.Offers,
		src:           src,
	}
	s.catalog = s.generate()
	return s
}

func (s *Shop) generate() []Entry {
	var out []Entry
	for _, sp := range s.species {
		breeds := breedsOf(sp)
		for i := 0; i < BreedsPerSpecies && i < len(breeds); i++ {
			out = append(out, s.roll(sp, breeds[i]))
		}
	}
	return out
}

// roll prices one entry: jitter, age, personality, then the independent
// rare and legendary multipliers.
func (s *Shop) roll(sp types.SpeciesDef, breed string) Entry {
	e := Entry{
		Species: sp.Name,
		Breed:   breed,
		Price:   sp.BasePrice + s.src.Intn(PriceJitter),
		Traits:  append([]string{}, sp.Traits...),
		Age:     s.src.Float64() * MaxAge,
	}
	if len(s.personalities) > 0 {
		e.Personality = s.personalities[s.src.Intn(len(s.personalities))].Name
	}
	if s.src.Float64() < RareChance {
		e.Traits = append(e.Traits, Rare)
		e.Price *= 2
	}
	if s.src.Float64() < LegendaryChance {
		e.Traits = append(e.Traits, Legendary)
		e.Price *= 3
	}
	return e
}

func (s *Shop) restock() {
	if len(s.species) == 0 {
		return
	}
	sp := s.species[s.src.Intn(len(s.species))]
	breeds := breedsOf(sp)
	s.catalog = append(s.catalog, s.roll(sp, breeds[s.src.Intn(len(breeds))]))
}

func breedsOf(sp types.SpeciesDef) []string {
	if len(sp.Breeds) == 0 {
		return []string{"Mixed"}
	}
	return sp.Breeds
}

// Catalog returns a copy of the pets for sale.
func (s *Shop) Catalog() []Entry {
	out := make([]Entry, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *Shop) Supplies() []types.SupplyDef { return s.supplies }

func (s *Shop) Offers() []types.SpecialOffer { return s.offers }

// CurrentDiscount is the price multiplier from the first discount offer, or 1.
func (s *Shop) CurrentDiscount() float64 {
	for _, o := range s.offers {
		if o.Type == DiscountOffer {
			return 1 - o.Discount
		}
	}
	return 1
}

// FinalPrice is what an entry costs after the current discount.
func (s *Shop) FinalPrice(e Entry) int {
	return int(math.Floor(float64(e.Price) * s.CurrentDiscount()))
}

// PurchasePet sells the entry at index to p under the given name.
func (s *Shop) PurchasePet(p *player.Player, index int, name string) (*pet.Pet, string, error) {
	if index < 0 || index >= len(s.catalog) {
		return nil, "", gameerr.New(gameerr.ErrInvalidSelection, "Invalid pet selection!")
	}
	e := s.catalog[index]
	price := s.FinalPrice(e)

	bought := pet.New(name, e.Species, e.Breed, price)
	bought.Traits = append([]string{}, e.Traits...)
	bought.Age = e.Age
	s.applyPersonality(bought, e.Personality)

	if err := p.Admit(bought, price); err != nil {
		return nil, "", err
	}

	s.catalog = append(s.catalog[:index], s.catalog[index+1:]...)
	if len(s.catalog) < RestockBelow {
		s.restock()
	}
	return bought, fmt.Sprintf("Congratulations! %s the %s %s %s is now yours!", name, e.Personality, e.Breed, e.Species), nil
}

// applyPersonality adds the personality's vital offsets. The result is not
// re-clamped.
func (s *Shop) applyPersonality(p *pet.Pet, personality string) {
	for _, def := range s.personalities {
		if def.Name != personality {
			continue
		}
		p.Adjust(pet.Happiness, def.Happiness)
		p.Adjust(pet.Energy, def.Energy)
		p.Adjust(pet.Hunger, def.Hunger)
		return
	}
}

// PurchaseSupply buys quantity units of the supply at index.
func (s *Shop) PurchaseSupply(p *player.Player, index, quantity int) (string, error) {
	if index < 0 || index >= len(s.supplies) {
		return "", gameerr.New(gameerr.ErrInvalidSelection, "Invalid supply selection!")
	}
	if quantity < 1 {
		return "", gameerr.New(gameerr.ErrInvalidSelection, "Quantity must be at least 1!")
	}
	sup := s.supplies[index]
	if sup.Price > 0 && quantity > p.Money/sup.Price {
		need := math.MaxInt
		if quantity <= math.MaxInt/sup.Price {
			need = sup.Price * quantity
		}
		return "", gameerr.Funds(need, p.Money)
	}
	total := sup.Price * quantity
	p.Money -= total
	p.Inventory[sup.Name] += quantity
	return fmt.Sprintf("Purchased %dx %s for $%d!", quantity, sup.Name, total), nil
}

// UseSupply spends one unit of the named supply on the pet at petIndex.
func (s *Shop) UseSupply(p *player.Player, name string, petIndex int) (string, error) {
	if p.Inventory[name] <= 0 {
		return "", gameerr.New(gameerr.ErrNoSupply, "You don't have any %s!", name)
	}
	target, err := p.Pet(petIndex)
	if err != nil {
		return "", err
	}
	sup, ok := s.Supply(name)
	if !ok {
		return "", gameerr.New(gameerr.ErrInvalidSelection, "Unknown supply type!")
	}

	delta := sup.Value
	if sup.Effect == pet.Hunger {
		delta = -delta
	}
	target.Apply(sup.Effect, delta)

	p.Inventory[name]--
	target.Experience += 5
	target.Touch()
	return fmt.Sprintf("Used %s on %s! %s", name, target.Name, sup.Description), nil
}

// Supply looks up a supply definition by name.
func (s *Shop) Supply(name string) (types.SupplyDef, bool) {
	for _, sup := range s.supplies {
		if sup.Name == name {
			return sup, true
		}
	}
	return types.SupplyDef{}, false
}
