// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/pupplay/types"
)

var verbAliases = map[string]string{
	// Care
	"eat":    "feed",
	"treat":  "feed",
	"toy":    "play",
	"wash":   "clean",
	"bathe":  "clean",
	"groom":  "clean",
	"sleep":  "rest",
	"nap":    "rest",
	"cuddle": "interact",
	"talk":   "interact",
	"hug":    "interact",

	// Shop
	"store":    "shop",
	"purchase": "buy",
	"supplies": "supply",

	// House
	"expand": "upgrade",

	// Story
	"quests":   "story",
	"quest":    "story",
	"choice":   "choose",
	"pick":     "choose",
	"assist":   "help",
	"neighbor": "neighbors",

	// Info
	"st":      "status",
	"stats":   "status",
	"info":    "pet",
	"details": "pet",
	"show":    "pet",
	"unlocks": "features",

	// Session
	"start":    "new",
	"continue": "load",
	"z":        "wait",
	"tick":     "wait",
	"?":        "commands",
}

var prepositions = map[string]bool{
	"on": true, "to": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Verbs whose arguments carry names. Their words are passed through whole,
// so a pet called "An" or a player called "To" survives.
var namingVerbs = map[string]bool{
	"new": true, "load": true, "adopt": true, "buy": true,
}

// Parse converts a raw command string into an Intent. The verb is lowered;
// object and target keep their original case.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(input)
	words[0] = strings.ToLower(words[0])

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	if namingVerbs[verb] {
		return types.Intent{Verb: verb, Object: strings.Join(words[1:], " ")}
	}
	rest := stripArticles(words[1:])

	// Use the first preposition as a delimiter between object and target.
	object, target := splitOnPreposition(rest)

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

// expandMultiWordVerbs handles "clean house", "play with", "buy supply"
// and similar two-word verbs.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	second := strings.ToLower(words[1])

	switch words[0] {
	case "clean", "tidy":
		if second == "house" || second == "home" || second == "up" {
			return append([]string{"cleanhouse"}, words[2:]...)
		}
	case "play", "talk":
		if second == "with" {
			return append([]string{words[0]}, words[2:]...)
		}
	case "buy", "purchase":
		if second == "supply" || second == "supplies" {
			return append([]string{"supply"}, words[2:]...)
		}
		if second == "pet" {
			return append([]string{"buy"}, words[2:]...)
		}
	case "upgrade":
		if second == "house" || second == "home" {
			return append([]string{"upgrade"}, words[2:]...)
		}
	case "help", "assist":
		if second == "neighbor" {
			return append([]string{"help"}, words[2:]...)
		}
	case "new":
		if second == "game" {
			return append([]string{"new"}, words[2:]...)
		}
	case "load":
		if second == "game" {
			return append([]string{"load"}, words[2:]...)
		}
	case "list":
		if second == "saves" {
			return append([]string{"saves"}, words[2:]...)
		}
	case "end":
		if second == "session" || second == "game" {
			return []string{"end"}
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[strings.ToLower(w)] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[strings.ToLower(w)] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}
