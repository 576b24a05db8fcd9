// Package pet implements a single cared-for pet: its bounded vitals, care
// actions, time decay and level ladder.
package pet

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/pupplay/engine/rng"
)

// Vital bounds and thresholds.
const (
	MinVital = 0
	MaxVital = 100

	HungryAbove = 70
	TiredBelow  = 20
	DirtyBelow  = 30
	SadBelow    = 30

	// AgePerTick is the age added by every PassTime call.
	AgePerTick = 0.1

	// XPPerLevel is the experience needed per current level to level up.
	XPPerLevel = 100
)

// Vital names, shared with supply effects.
const (
	Happiness   = "happiness"
	Hunger      = "hunger"
	Energy      = "energy"
	Cleanliness = "cleanliness"
	Health      = "health"
)

// Pet is a live pet owned by exactly one player.
type Pet struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Species       string    `json:"species"`
	Breed         string    `json:"breed"`
	Level         int       `json:"level"`
	Experience    int       `json:"experience"`
	Happiness     float64   `json:"happiness"`
	Hunger        float64   `json:"hunger"`
	Energy        float64   `json:"energy"`
	Cleanliness   float64   `json:"cleanliness"`
	Health        float64   `json:"health"`
	Age           float64   `json:"age"`
	PurchasePrice int       `json:"purchasePrice"`
	Traits        []string  `json:"traits"`
	CreatedAt     time.Time `json:"createdAt"`
	LastCaredFor  time.Time `json:"lastCaredFor"`
}

// Status is a read-only summary of a pet.
type Status struct {
	Name           string
	Species        string
	Breed          string
	Level          int
	Experience     int
	Happiness      float64
	Hunger         float64
	Energy         float64
	Cleanliness    float64
	Health         float64
	Age            float64
	Traits         []string
	NeedsAttention []string
}

// New creates a level 1 pet with default vitals. An empty breed becomes "Mixed".
func New(name, species, breed string, price int) *Pet {
	if breed == "" {
		breed = "Mixed"
	}
	now := time.Now().UTC()
	return &Pet{
		ID:            uuid.NewString(),
		Name:          name,
		Species:       species,
		Breed:         breed,
		Level:         1,
		Happiness:     50,
		Hunger:        50,
		Energy:        50,
		Cleanliness:   50,
		Health:        100,
		PurchasePrice: price,
		Traits:        []string{},
		CreatedAt:     now,
		LastCaredFor:  now,
	}
}

// Feed lowers hunger and raises happiness and health.
func (p *Pet) Feed() string {
	p.Hunger = clamp(p.Hunger - 30)
	p.Happiness = clamp(p.Happiness + 10)
	p.Health = clamp(p.Health + 5)
	return p.cared(5, fmt.Sprintf("%s enjoyed the meal! Hunger decreased, happiness increased.", p.Name))
}

// Play raises happiness at the cost of energy and hunger.
func (p *Pet) Play() string {
	p.Happiness = clamp(p.Happiness + 20)
	p.Energy = clamp(p.Energy - 15)
	p.Hunger = clamp(p.Hunger + 10)
	return p.cared(10, fmt.Sprintf("%s had a great time playing! Happiness increased significantly.", p.Name))
}

// Clean resets cleanliness to the maximum.
func (p *Pet) Clean() string {
	p.Cleanliness = MaxVital
	p.Happiness = clamp(p.Happiness + 5)
	p.Health = clamp(p.Health + 10)
	return p.cared(3, fmt.Sprintf("%s is now sparkling clean and feels great!", p.Name))
}

// Rest restores energy.
func (p *Pet) Rest() string {
	p.Energy = clamp(p.Energy + 40)
	p.Happiness = clamp(p.Happiness + 5)
	return p.cared(2, fmt.Sprintf("%s had a good rest and feels refreshed!", p.Name))
}

// cared records a care action: experience, timestamp, and a single
// level-up check whose message replaces msg.
func (p *Pet) cared(xp int, msg string) string {
	p.Experience += xp
	p.Touch()
	if levelUp, ok := p.CheckLevelUp(); ok {
		return levelUp
	}
	return msg
}

// Touch marks the pet as cared for now.
func (p *Pet) Touch() {
	p.LastCaredFor = time.Now().UTC()
}

// CheckLevelUp promotes the pet once if it has enough experience.
func (p *Pet) CheckLevelUp() (string, bool) {
	needed := p.Level * XPPerLevel
	if p.Experience < needed {
		return "", false
	}
	p.Level++
	p.Experience -= needed
	return fmt.Sprintf("🎉 %s leveled up to level %d!", p.Name, p.Level), true
}

// NeedsAttention lists the pet's currently unmet needs.
func (p *Pet) NeedsAttention() []string {
	var needs []string
	if p.Hunger > HungryAbove {
		needs = append(needs, "hungry")
	}
	if p.Energy < TiredBelow {
		needs = append(needs, "tired")
	}
	if p.Cleanliness < DirtyBelow {
		needs = append(needs, "dirty")
	}
	if p.Happiness < SadBelow {
		needs = append(needs, "sad")
	}
	return needs
}

// PassTime applies one tick of decay.
func (p *Pet) PassTime(src rng.Source) {
	p.Hunger = clamp(p.Hunger + src.Float64()*5)
	p.Energy = clamp(p.Energy - src.Float64()*3)
	p.Cleanliness = clamp(p.Cleanliness - src.Float64()*2)

	if len(p.NeedsAttention()) > 2 {
		p.Happiness = clamp(p.Happiness - 5)
	}

	p.Age += AgePerTick
}

// RandomInteraction picks a flavor line from pool. Each template takes the
// pet's name as its only argument.
func (p *Pet) RandomInteraction(src rng.Source, pool []string) string {
	if len(pool) == 0 {
		return p.Name + " looks at you."
	}
	tmpl := pool[src.Intn(len(pool))]
	if !strings.Contains(tmpl, "%s") {
		return tmpl
	}
	return fmt.Sprintf(tmpl, p.Name)
}

// Apply adds delta to the named vital, clamped. Unknown vitals are ignored
// and reported as false.
func (p *Pet) Apply(vital string, delta float64) bool {
	field := p.vital(vital)
	if field == nil {
		return false
	}
	*field = clamp(*field + delta)
	return true
}

// Adjust adds delta to the named vital without clamping. Used for
// personality effects at purchase time.
func (p *Pet) Adjust(vital string, delta float64) {
	if field := p.vital(vital); field != nil {
		*field += delta
	}
}

func (p *Pet) vital(name string) *float64 {
	switch name {
	case Happiness:
		return &p.Happiness
	case Hunger:
		return &p.Hunger
	case Energy:
		return &p.Energy
	case Cleanliness:
		return &p.Cleanliness
	case Health:
		return &p.Health
	default:
		return nil
	}
}

// HasTrait reports whether the pet carries the trait.
func (p *Pet) HasTrait(trait string) bool {
	for _, t := range p.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// Status returns a snapshot of the pet for display.
func (p *Pet) Status() Status {
	return Status{
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Level:          p.Level,
		Experience:     p.Experience,
		Happiness:      p.Happiness,
		Hunger:         p.Hunger,
		Energy:         p.Energy,
		Cleanliness:    p.Cleanliness,
		Health:         p.Health,
		Age:            p.Age,
		Traits:         append([]string(nil), p.Traits...),
		NeedsAttention: p.NeedsAttention(),
	}
}

func clamp(v float64) float64 {
	if v < MinVital {
		return MinVital
	}
	if v > MaxVital {
		return MaxVital
	}
	return v
}
