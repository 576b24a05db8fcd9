// Package story runs the chapter and quest state machine and the random
// story events that interrupt play.
package story

import (
	"fmt"
	"strings"

	"github.com/nathoo/pupplay/engine/gameerr"
	"github.com/nathoo/pupplay/engine/player"
	"github.com/nathoo/pupplay/engine/rng"
	"github.com/nathoo/pupplay/types"
)

// Event timing.
const (
	EventMinTicks = 10
	EventChance   = 0.2
)

// Choice outcome tags with built-in effects.
const (
	EarnKarma        = "earn_karma"
	DiscountShopping = "discount_shopping"
	Competition      = "competition"
	Observer         = "observer"
)

// Quest is a quest definition plus its per-session completed flag.
type Quest struct {
	types.QuestDef
	Completed bool
}

// Chapter is one chapter of the story with live quests.
type Chapter struct {
	Number      int
	Title       string
	Description string
	Quests      []*Quest
	Unlocks     []string
}

// Story is one session's progression. Definitions are copied on creation
// so sessions never share completed flags.
type Story struct {
	chapters []*Chapter
	events   []types.StoryEventDef
	src      rng.Source

	current int // chapter number, 1-based
	ticks   int
	pending *types.StoryEventDef
}

// New builds a story at chapter 1.
func New(content *types.Content, src rng.Source) *Story {
	s := &Story{events: content.Events, src: src, current: 1}
	for _, def := range content.Chapters {
		ch := &Chapter{
			Number:      def.Number,
			Title:       def.Title,
			Description: def.Description,
			Unlocks:     append([]string(nil), def.Unlocks...),
		}
		for _, q := range def.Quests {
			ch.Quests = append(ch.Quests, &Quest{QuestDef: q})
		}
		s.chapters = append(s.chapters, ch)
	}
	return s
}

// Sync restores the chapter and completed flags from saved progress.
func (s *Story) Sync(progress player.StoryProgress) {
	s.current = progress.CurrentChapter
	if s.current < 1 {
		s.current = 1
	}
	if s.current > len(s.chapters) && len(s.chapters) > 0 {
		s.current = len(s.chapters)
	}
	done := make(map[string]bool, len(progress.CompletedQuests))
	for _, id := range progress.CompletedQuests {
		done[id] = true
	}
	for _, ch := range s.chapters {
		for _, q := range ch.Quests {
			q.Completed = done[q.ID]
		}
	}
}

// ChapterNumber is the current 1-based chapter number.
func (s *Story) ChapterNumber() int { return s.current }

// CurrentChapter returns the current chapter, or nil for empty content.
func (s *Story) CurrentChapter() *Chapter {
	if s.current < 1 || s.current > len(s.chapters) {
		return nil
	}
	return s.chapters[s.current-1]
}

// AllQuests lists the current chapter's quests.
func (s *Story) AllQuests() []*Quest {
	ch := s.CurrentChapter()
	if ch == nil {
		return nil
	}
	return ch.Quests
}

// AvailableQuests lists the current chapter's incomplete quests.
func (s *Story) AvailableQuests() []*Quest {
	var out []*Quest
	for _, q := range s.AllQuests() {
		if !q.Completed {
			out = append(out, q)
		}
	}
	return out
}

// CheckQuestProgress completes every satisfied quest of the current chapter
// and advances the chapter once it is done.
func (s *Story) CheckQuestProgress(p *player.Player) []string {
	ch := s.CurrentChapter()
	if ch == nil {
		return nil
	}
	var results []string

	for _, q := range ch.Quests {
		if q.Completed {
			continue
		}
		if p.QuestDone(q.ID) {
			q.Completed = true
			continue
		}
		if !Satisfied(q.Requires, p) {
			continue
		}

		q.Completed = true
		p.RecordQuest(q.ID)
		p.EarnMoney(q.Reward.Money, "quest: "+q.Title)
		levelUp := p.AddExperience(q.Reward.Experience)
		results = append(results, fmt.Sprintf("🎯 Quest completed: %q! Rewards claimed!", q.Title))
		if levelUp != "" {
			results = append(results, levelUp)
		}
		p.Unlock(ch.Unlocks...)
	}

	if s.chapterDone(ch) && s.current < len(s.chapters) {
		s.current++
		p.StoryProgress.CurrentChapter = s.current
		results = append(results, fmt.Sprintf("📖 Chapter %d completed! Chapter %d unlocked!", s.current-1, s.current))
	}
	return results
}

func (s *Story) chapterDone(ch *Chapter) bool {
	for _, q := range ch.Quests {
		if !q.Completed {
			return false
		}
	}
	return true
}

// MaybeEvent counts one tick and may raise a story event, which becomes
// the pending event.
func (s *Story) MaybeEvent() (*types.StoryEventDef, bool) {
	s.ticks++
	if s.ticks < EventMinTicks || len(s.events) == 0 {
		return nil, false
	}
	if s.src.Float64() >= EventChance {
		return nil, false
	}
	ev := s.events[s.src.Intn(len(s.events))]
	s.pending = &ev
	s.ticks = 0
	return s.pending, true
}

// Pending returns the event awaiting a choice, if any.
func (s *Story) Pending() (*types.StoryEventDef, bool) {
	return s.pending, s.pending != nil
}

// ProcessChoice resolves the pending event with the choice at index.
func (s *Story) ProcessChoice(p *player.Player, index int) (string, error) {
	if s.pending == nil {
		return "", gameerr.New(gameerr.ErrInvalidSelection, "No story event is waiting for a choice!")
	}
	if index < 0 || index >= len(s.pending.Choices) {
		return "", gameerr.New(gameerr.ErrInvalidSelection, "Invalid choice!")
	}
	choice := s.pending.Choices[index]
	s.pending = nil

	switch choice.Outcome {
	case EarnKarma:
		p.AddAchievement(player.GoodSamaritan)
		return p.EarnMoney(50, "good deed"), nil
	case DiscountShopping:
		p.Inventory[player.Food] += 10
		p.Inventory[player.Toys] += 5
		return "Stocked up on supplies at great prices!", nil
	case Competition:
		prize := 50
		if s.src.Float64() > 0.5 {
			prize = 200
		}
		return p.EarnMoney(prize, "pet competition"), nil
	case Observer:
		if msg := p.AddExperience(25); msg != "" {
			return msg, nil
		}
		return "Learned new techniques by observing!", nil
	default:
		return choice.Reward, nil
	}
}

// FormatEvent renders an event as its announcement and choices lines.
func FormatEvent(ev *types.StoryEventDef) []string {
	choices := make([]string, len(ev.Choices))
	for i, c := range ev.Choices {
		choices[i] = fmt.Sprintf("%d. %s", i+1, c.Text)
	}
	return []string{
		fmt.Sprintf("📖 Story Event: %s - %s", ev.Title, ev.Description),
		"Choices: " + strings.Join(choices, ", "),
	}
}
