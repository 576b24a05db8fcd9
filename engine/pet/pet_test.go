package pet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/pupplay/engine/rng"
)

func assertBounded(t *testing.T, p *Pet) {
	t.Helper()
	for name, v := range map[string]float64{
		Happiness:   p.Happiness,
		Hunger:      p.Hunger,
		Energy:      p.Energy,
		Cleanliness: p.Cleanliness,
		Health:      p.Health,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 100.0, name)
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New("Rex", "Dog", "", 100)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Mixed", p.Breed)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.Experience)
	assert.Equal(t, 50.0, p.Hunger)
	assert.Equal(t, 100.0, p.Health)
	assert.Equal(t, 100, p.PurchasePrice)
	assert.NotNil(t, p.Traits)
}

func TestFeed(t *testing.T) {
	p := New("Rex", "Dog", "Beagle", 100)
	msg := p.Feed()

	assert.Equal(t, 20.0, p.Hunger)
	assert.Equal(t, 60.0, p.Happiness)
	assert.Equal(t, 100.0, p.Health)
	assert.Equal(t, 5, p.Experience)
	assert.Contains(t, msg, "Rex enjoyed the meal")
}

func TestFeed_FloorsHungerAndNeverLowersHappiness(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	p.Hunger = 10
	p.Happiness = 100

	p.Feed()
	assert.Equal(t, 0.0, p.Hunger)
	assert.Equal(t, 100.0, p.Happiness)
}

func TestPlay(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	p.Play()

	assert.Equal(t, 70.0, p.Happiness)
	assert.Equal(t, 35.0, p.Energy)
	assert.Equal(t, 60.0, p.Hunger)
	assert.Equal(t, 10, p.Experience)
}

func TestClean(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	p.Cleanliness = 3
	p.Health = 95
	p.Clean()

	assert.Equal(t, 100.0, p.Cleanliness)
	assert.Equal(t, 55.0, p.Happiness)
	assert.Equal(t, 100.0, p.Health)
	assert.Equal(t, 3, p.Experience)
}

func TestRest(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	p.Energy = 80
	p.Rest()

	assert.Equal(t, 100.0, p.Energy)
	assert.Equal(t, 55.0, p.Happiness)
	assert.Equal(t, 2, p.Experience)
}

func TestCareActions_StayBounded(t *testing.T) {
	starts := []float64{0, 1, 29.5, 50, 99.9, 100}
	actions := map[string]func(*Pet) string{
		"feed":  (*Pet).Feed,
		"play":  (*Pet).Play,
		"clean": (*Pet).Clean,
		"rest":  (*Pet).Rest,
	}
	for name, act := range actions {
		for _, v := range starts {
			p := New("Rex", "Dog", "", 0)
			p.Happiness, p.Hunger, p.Energy, p.Cleanliness, p.Health = v, v, v, v, v
			act(p)
			t.Run(name, func(t *testing.T) { assertBounded(t, p) })
		}
	}
}

func TestLevelUp_ReplacesMessage(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	p.Experience = 97

	msg := p.Feed()
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 2, p.Experience)
	assert.Equal(t, "🎉 Rex leveled up to level 2!", msg)
}

func TestCheckLevelUp_SingleStep(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	p.Experience = 350

	_, ok := p.CheckLevelUp()
	require.True(t, ok)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 250, p.Experience)

	_, ok = p.CheckLevelUp()
	require.True(t, ok)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 50, p.Experience)

	_, ok = p.CheckLevelUp()
	assert.False(t, ok)
	assert.Less(t, p.Experience, p.Level*XPPerLevel)
}

func TestNeedsAttention(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	assert.Empty(t, p.NeedsAttention())

	p.Hunger = 71
	p.Energy = 19
	p.Cleanliness = 29
	p.Happiness = 29
	assert.Equal(t, []string{"hungry", "tired", "dirty", "sad"}, p.NeedsAttention())

	p.Hunger = 70
	p.Energy = 20
	assert.Equal(t, []string{"dirty", "sad"}, p.NeedsAttention())
}

func TestPassTime(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	p.PassTime(rng.NewSequence(0.5, 0.5, 0.5))

	assert.Equal(t, 52.5, p.Hunger)
	assert.Equal(t, 48.5, p.Energy)
	assert.Equal(t, 49.0, p.Cleanliness)
	assert.Equal(t, 50.0, p.Happiness)
	assert.InDelta(t, 0.1, p.Age, 1e-9)
}

func TestPassTime_SadWhenManyNeeds(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	p.Hunger = 90
	p.Energy = 5
	p.Cleanliness = 10
	p.Happiness = 60

	p.PassTime(rng.NewSequence(0))
	assert.Equal(t, 55.0, p.Happiness)

	p.Happiness = 2
	p.PassTime(rng.NewSequence(0.99))
	assert.Equal(t, 0.0, p.Happiness)
	assertBounded(t, p)
}

func TestPassTime_AgesEveryTick(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	src := rng.New(3)
	for i := 0; i < 10; i++ {
		p.PassTime(src)
		assertBounded(t, p)
	}
	assert.InDelta(t, 1.0, p.Age, 1e-9)
}

func TestRandomInteraction(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	pool := []string{"%s wags tail happily!", "%s nuzzles against you."}

	assert.Equal(t, "Rex nuzzles against you.", p.RandomInteraction(rng.NewSequence(0.9), pool))
	assert.Equal(t, "Rex looks at you.", p.RandomInteraction(rng.NewSequence(0.9), nil))
	assert.Equal(t, 50.0, p.Happiness)
}

func TestApplyAndAdjust(t *testing.T) {
	p := New("Rex", "Dog", "", 0)

	assert.True(t, p.Apply(Energy, 80))
	assert.Equal(t, 100.0, p.Energy)
	assert.False(t, p.Apply("charisma", 10))

	p.Adjust(Energy, 20)
	assert.Equal(t, 120.0, p.Energy)
}

func TestHasTrait(t *testing.T) {
	p := New("Rex", "Dog", "", 0)
	p.Traits = []string{"loyal", "rare"}

	assert.True(t, p.HasTrait("rare"))
	assert.False(t, p.HasTrait("legendary"))
}
