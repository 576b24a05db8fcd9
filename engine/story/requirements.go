package story

import (
	"github.com/nathoo/pupplay/engine/player"
	"github.com/nathoo/pupplay/engine/shop"
	"github.com/nathoo/pupplay/types"
)

// Requirement kinds.
const (
	Pets        = "pets"
	HouseLevel  = "house_level"
	MaxPetLevel = "max_pet_level"
	CareActions = "care_actions"
	HelpActions = "help_actions"
	RarePets    = "rare_pets"
)

// priority is the order in which a quest's requirements are tried.
var priority = []string{Pets, HouseLevel, MaxPetLevel, CareActions, HelpActions, RarePets}

// EvalRequirement evaluates a single requirement against the player.
// Unknown kinds are never satisfied.
func EvalRequirement(r types.Requirement, p *player.Player) bool {
	switch r.Kind {
	case Pets:
		return len(p.Pets) >= r.Value

	case HouseLevel:
		return p.House.Level >= r.Value

	case MaxPetLevel:
		return p.MaxPetLevel() >= r.Value

	case CareActions:
		// Care actions are not counted; the sum of pet levels stands in.
		return p.TotalPetLevels() >= r.Value

	case HelpActions:
		return p.HasAchievement(player.Helper)

	case RarePets:
		return p.CountTrait(shop.Rare) >= r.Value

	default:
		return false
	}
}

// Satisfied tries the requirements in priority order and returns true on
// the first one that holds (OR logic). An empty list is never satisfied.
func Satisfied(reqs []types.Requirement, p *player.Player) bool {
	for _, kind := range priority {
		for _, r := range reqs {
			if r.Kind == kind && EvalRequirement(r, p) {
				return true
			}
		}
	}
	return false
}
