package parser

import (
	"testing"

	"github.com/nathoo/pupplay/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Basic verbs
		{
			name:  "status",
			input: "status",
			want:  types.Intent{Verb: "status"},
		},
		{
			name:  "feed 1",
			input: "feed 1",
			want:  types.Intent{Verb: "feed", Object: "1"},
		},
		{
			name:  "verb is lowered",
			input: "FEED 2",
			want:  types.Intent{Verb: "feed", Object: "2"},
		},

		// Verb aliases
		{
			name:  "sleep → rest",
			input: "sleep 1",
			want:  types.Intent{Verb: "rest", Object: "1"},
		},
		{
			name:  "nap → rest",
			input: "nap 3",
			want:  types.Intent{Verb: "rest", Object: "3"},
		},
		{
			name:  "cuddle → interact",
			input: "cuddle 1",
			want:  types.Intent{Verb: "interact", Object: "1"},
		},
		{
			name:  "wash → clean",
			input: "wash 2",
			want:  types.Intent{Verb: "clean", Object: "2"},
		},
		{
			name:  "purchase → buy",
			input: "purchase 4 Buddy",
			want:  types.Intent{Verb: "buy", Object: "4 Buddy"},
		},
		{
			name:  "assist → help",
			input: "assist 2",
			want:  types.Intent{Verb: "help", Object: "2"},
		},
		{
			name:  "info → pet",
			input: "info 1",
			want:  types.Intent{Verb: "pet", Object: "1"},
		},
		{
			name:  "z → wait",
			input: "z",
			want:  types.Intent{Verb: "wait"},
		},

		// Multi-word verbs
		{
			name:  "clean house",
			input: "clean house",
			want:  types.Intent{Verb: "cleanhouse"},
		},
		{
			name:  "clean pet stays clean",
			input: "clean 1",
			want:  types.Intent{Verb: "clean", Object: "1"},
		},
		{
			name:  "play with",
			input: "play with 2",
			want:  types.Intent{Verb: "play", Object: "2"},
		},
		{
			name:  "talk with → interact",
			input: "talk with 1",
			want:  types.Intent{Verb: "interact", Object: "1"},
		},
		{
			name:  "buy supply",
			input: "buy supply 3 2",
			want:  types.Intent{Verb: "supply", Object: "3 2"},
		},
		{
			name:  "buy pet",
			input: "buy pet 1 Rex",
			want:  types.Intent{Verb: "buy", Object: "1 Rex"},
		},
		{
			name:  "upgrade house",
			input: "upgrade house",
			want:  types.Intent{Verb: "upgrade"},
		},
		{
			name:  "help neighbor",
			input: "help neighbor 1",
			want:  types.Intent{Verb: "help", Object: "1"},
		},
		{
			name:  "new game",
			input: "new game Alice",
			want:  types.Intent{Verb: "new", Object: "Alice"},
		},
		{
			name:  "end session",
			input: "end session",
			want:  types.Intent{Verb: "end"},
		},
		{
			name:  "list saves",
			input: "list saves",
			want:  types.Intent{Verb: "saves"},
		},

		// Case preservation
		{
			name:  "player name keeps case",
			input: "new Mary Jane",
			want:  types.Intent{Verb: "new", Object: "Mary Jane"},
		},
		{
			name:  "single-letter name",
			input: "new A",
			want:  types.Intent{Verb: "new", Object: "A"},
		},
		{
			name:  "article-like pet name",
			input: "adopt Dog An",
			want:  types.Intent{Verb: "adopt", Object: "Dog An"},
		},
		{
			name:  "preposition-like name",
			input: "buy 2 To",
			want:  types.Intent{Verb: "buy", Object: "2 To"},
		},
		{
			name:  "adopt keeps case",
			input: "adopt Dog Rex Golden Retriever",
			want:  types.Intent{Verb: "adopt", Object: "Dog Rex Golden Retriever"},
		},

		// Prepositions
		{
			name:  "use supply on pet",
			input: "use Grooming Kit on 2",
			want:  types.Intent{Verb: "use", Object: "Grooming Kit", Target: "2"},
		},
		{
			name:  "use with article",
			input: "use the Health Potion on 1",
			want:  types.Intent{Verb: "use", Object: "Health Potion", Target: "1"},
		},
		{
			name:  "preposition is case-insensitive",
			input: "use Interactive Toy ON 3",
			want:  types.Intent{Verb: "use", Object: "Interactive Toy", Target: "3"},
		},
		{
			name:  "give to",
			input: "use food to 1",
			want:  types.Intent{Verb: "use", Object: "food", Target: "1"},
		},

		// Unknown verbs pass through
		{
			name:  "unknown verb",
			input: "dance wildly",
			want:  types.Intent{Verb: "dance", Object: "wildly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripArticles(t *testing.T) {
	got := stripArticles([]string{"The", "Grooming", "a", "Kit"})
	if len(got) != 2 || got[0] != "Grooming" || got[1] != "Kit" {
		t.Errorf("stripArticles = %v", got)
	}
}
