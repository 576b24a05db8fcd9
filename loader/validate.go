package loader

import (
	"fmt"
	"log"
	"strings"

	"github.com/nathoo/pupplay/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Vitals a supply may affect.
var validEffects = map[string]bool{
	"happiness":   true,
	"hunger":      true,
	"energy":      true,
	"cleanliness": true,
	"health":      true,
}

var validOfferTypes = map[string]bool{
	"discount": true,
	"bundle":   true,
	"rare_day": true,
}

var validRequirementKinds = map[string]bool{
	"pets":          true,
	"house_level":   true,
	"max_pet_level": true,
	"care_actions":  true,
	"help_actions":  true,
	"rare_pets":     true,
}

// validate checks the compiled content for consistency.
func validate(c *types.Content) error {
	ve := &ValidationError{}
	errf := func(format string, args ...any) {
		ve.Errors = append(ve.Errors, fmt.Sprintf(format, args...))
	}
	warnf := func(format string, args ...any) {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(format, args...))
	}

	if c.Game.Title == "" {
		errf("Game.title is required")
	}

	if len(c.Species) == 0 {
		errf("at least one Species is required")
	}
	seen := map[string]bool{}
	for _, s := range c.Species {
		if seen[s.Name] {
			errf("duplicate species %q", s.Name)
		}
		seen[s.Name] = true
		if s.BasePrice <= 0 {
			errf("species %q base_price must be positive", s.Name)
		}
		if len(s.Breeds) == 0 {
			warnf("species %q has no breeds; shop entries will be Mixed", s.Name)
		}
	}

	if len(c.Personalities) == 0 {
		warnf("no Personality definitions; shop pets will have none")
	}

	seen = map[string]bool{}
	for _, s := range c.Supplies {
		if seen[s.Name] {
			errf("duplicate supply %q", s.Name)
		}
		seen[s.Name] = true
		if !validEffects[s.Effect] {
			errf("supply %q has unknown effect %q", s.Name, s.Effect)
		}
		if s.Price <= 0 {
			errf("supply %q price must be positive", s.Name)
		}
	}

	for _, o := range c.Offers {
		if !validOfferTypes[o.Type] {
			errf("unknown offer type %q", o.Type)
		}
		if o.Type == "discount" && (o.Discount < 0 || o.Discount >= 1) {
			errf("discount offer must be in [0, 1), got %v", o.Discount)
		}
	}

	if len(c.Chapters) == 0 {
		errf("at least one Chapter is required")
	}
	questIDs := map[string]int{}
	for i, ch := range c.Chapters {
		if ch.Number != i+1 {
			errf("chapters must be numbered 1..N without gaps, found %d at position %d", ch.Number, i+1)
		}
		if len(ch.Quests) == 0 {
			errf("chapter %d has no quests", ch.Number)
		}
		for _, q := range ch.Quests {
			if prev, ok := questIDs[q.ID]; ok {
				errf("quest %q defined in chapter %d and chapter %d", q.ID, prev, ch.Number)
			}
			questIDs[q.ID] = ch.Number
			if len(q.Requires) == 0 {
				errf("quest %q has no requirements", q.ID)
			}
			for _, r := range q.Requires {
				if !validRequirementKinds[r.Kind] {
					errf("quest %q has unknown requirement %q", q.ID, r.Kind)
				}
				if r.Raw != "" {
					errf("quest %q requirement %s must be a number, got %q", q.ID, r.Kind, r.Raw)
				}
			}
		}
	}

	for _, ev := range c.Events {
		if len(ev.Choices) == 0 {
			errf("story event %q has no choices", ev.Title)
		}
	}

	for _, n := range c.Neighbors {
		if n.Reward < 0 {
			errf("neighbor %q reward must not be negative", n.Neighbor)
		}
		if n.Difficulty < 1 {
			errf("neighbor %q difficulty must be at least 1", n.Neighbor)
		}
	}

	if len(c.Interactions) == 0 {
		warnf("no Interactions defined")
	}
	for _, line := range c.Interactions {
		if strings.Count(line, "%") > 1 || (strings.Contains(line, "%") && !strings.Contains(line, "%s")) {
			errf("interaction %q may only use a single %%s for the pet name", line)
		}
	}

	for _, w := range ve.Warnings {
		log.Printf("content warning: %s", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
