// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/achievecore/types"
)

var verbAliases = map[string]string{
	// Acquire
	"get":     "acquire",
	"gain":    "acquire",
	"take":    "acquire",
	"buy":     "acquire",
	"loot":    "acquire",
	"recruit": "acquire",

	// Draw
	"dr": "draw",

	// Discard
	"drop": "discard",

	// Throw
	"toss":    "throw",
	"burn":    "throw",
	"banish":  "throw",
	"destroy": "throw",
	"trash":   "throw",

	// Turn
	"end":  "end_turn",
	"pass": "end_turn",
	"next": "end_turn",

	// Scenario
	"win":     "complete",
	"victory": "complete",
	"lose":    "fail",
	"defeat":  "fail",
	"abandon": "fail",

	// Oath
	"swear":  "oath",
	"pledge": "oath",

	// Time of day
	"tod": "time",

	// Crusade
	"crusade": "new",
	"start":   "new",

	// Achievements
	"ach":         "achievements",
	"achievement": "achievements",

	// Status
	"h":      "hand",
	"cards":  "hand",
	"l":      "look",
	"status": "look",
}

var prepositions = map[string]bool{
	"to": true, "into": true, "in": true, "from": true, "with": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	// Apply verb aliases.
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := words[1:]

	// Strip articles ("the", "a", "an").
	rest = stripArticles(rest)

	// Time-of-day sequences are space separated; keep them whole.
	if verb == "time" {
		return types.Intent{Verb: verb, Object: strings.Join(rest, " ")}
	}

	// Use the first preposition as a delimiter between object and target.
	object, target := splitOnPreposition(rest)

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

// expandMultiWordVerbs handles "end turn", "pick up", "throw away" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "end", "pass":
		if words[1] == "turn" {
			return append([]string{"end_turn"}, words[2:]...)
		}
	case "pick":
		if words[1] == "up" {
			return append([]string{"acquire"}, words[2:]...)
		}
	case "throw", "toss":
		if words[1] == "away" || words[1] == "out" {
			return append([]string{"throw"}, words[2:]...)
		}
	case "new":
		if words[1] == "crusade" || words[1] == "game" {
			return append([]string{"new"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
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
		if prepositions[w] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}
