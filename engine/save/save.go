// Package save implements the JSON snapshot of a player and the stores that
// persist it.
package save

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nathoo/pupplay/engine/pet"
	"github.com/nathoo/pupplay/engine/player"
)

// Version is written into every snapshot.
const Version = "1.0.0"

// Snapshot is the JSON-serializable save format.
type Snapshot struct {
	Version       string               `json:"version"`
	Name          string               `json:"name"`
	Money         int                  `json:"money"`
	Level         int                  `json:"level"`
	Experience    int                  `json:"experience"`
	Pets          []pet.Pet            `json:"pets"`
	House         player.House         `json:"house"`
	Inventory     map[string]int       `json:"inventory"`
	Achievements  []string             `json:"achievements"`
	StoryProgress player.StoryProgress `json:"storyProgress"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastPlayed    time.Time            `json:"lastPlayed"`
}

// FromPlayer captures p. LastPlayed is stamped with the current time.
func FromPlayer(p *player.Player) *Snapshot {
	pets := make([]pet.Pet, len(p.Pets))
	for i, pt := range p.Pets {
		pets[i] = *pt
	}
	return &Snapshot{
		Version:       Version,
		Name:          p.Name,
		Money:         p.Money,
		Level:         p.Level,
		Experience:    p.Experience,
		Pets:          pets,
		House:         p.House,
		Inventory:     p.Inventory,
		Achievements:  p.Achievements,
		StoryProgress: p.StoryProgress,
		CreatedAt:     p.CreatedAt,
		LastPlayed:    time.Now().UTC(),
	}
}

// ToPlayer rebuilds a live player with its own pets.
func (s *Snapshot) ToPlayer() *player.Player {
	pets := make([]*pet.Pet, len(s.Pets))
	for i := range s.Pets {
		pt := s.Pets[i]
		pets[i] = &pt
	}
	return &player.Player{
		Name:          s.Name,
		Money:         s.Money,
		Level:         s.Level,
		Experience:    s.Experience,
		Pets:          pets,
		House:         s.House,
		Inventory:     s.Inventory,
		Achievements:  s.Achievements,
		StoryProgress: s.StoryProgress,
		CreatedAt:     s.CreatedAt,
		LastPlayed:    s.LastPlayed,
	}
}

// Encode serializes a snapshot to indented JSON.
func Encode(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Decode deserializes JSON bytes into a snapshot.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	// Ensure collections are never nil after load.
	if s.Pets == nil {
		s.Pets = []pet.Pet{}
	}
	for i := range s.Pets {
		if s.Pets[i].Traits == nil {
			s.Pets[i].Traits = []string{}
		}
	}
	if s.Inventory == nil {
		s.Inventory = map[string]int{}
	}
	if s.Achievements == nil {
		s.Achievements = []string{}
	}
	if s.House.Rooms == nil {
		s.House.Rooms = []string{}
	}
	if s.House.Decorations == nil {
		s.House.Decorations = []string{}
	}
	if s.StoryProgress.CompletedQuests == nil {
		s.StoryProgress.CompletedQuests = []string{}
	}
	if s.StoryProgress.UnlockedContent == nil {
		s.StoryProgress.UnlockedContent = []string{}
	}
	return &s, nil
}
