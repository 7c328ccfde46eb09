package nlu

import (
	"regexp"
	"strings"
)

// Result carries the lightweight analysis attached to a conversational turn.
// It is observational only; the pipeline never branches on it.
type Result struct {
	Intent   string            `json:"intent"`
	Keywords []string          `json:"keywords"`
	Entities map[string]string `json:"entities"`
}

type intentRule struct {
	intent   string
	keywords []string
}

// Classifier performs keyword-overlap intent detection over normalized text.
type Classifier struct {
	wordPattern *regexp.Regexp
	rules       []intentRule
}

func NewClassifier() *Classifier {
	return &Classifier{
		wordPattern: regexp.MustCompile(`[\w']+`),
		// Rule order is part of the contract: the first overlapping set wins.
		rules: []intentRule{
			{intent: "reminder", keywords: []string{"remind", "remember", "alert"}},
			{intent: "schedule", keywords: []string{"schedule", "appointment", "meeting"}},
			{intent: "status", keywords: []string{"status", "state", "update"}},
		},
	}
}

func (c *Classifier) Classify(text string) Result {
	raw := c.wordPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tok := range raw {
		tok = strings.ToLower(tok)
		tokens = append(tokens, tok)
		seen[tok] = struct{}{}
	}

	intent := "conversation"
	for _, rule := range c.rules {
		if overlaps(seen, rule.keywords) {
			intent = rule.intent
			break
		}
	}

	keywords := tokens
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}

	entities := map[string]string{}
	if _, am := seen["am"]; am {
		entities["time"] = "soon"
	} else if _, pm := seen["pm"]; pm {
		entities["time"] = "soon"
	}

	return Result{Intent: intent, Keywords: keywords, Entities: entities}
}

func overlaps(tokens map[string]struct{}, keywords []string) bool {
	for _, kw := range keywords {
		if _, ok := tokens[kw]; ok {
			return true
		}
	}
	return false
}
