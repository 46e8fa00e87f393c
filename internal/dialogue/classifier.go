package dialogue

import (
	"context"
	"regexp"
	"slices"
	"strings"
)

type ClassifyInput struct {
	Transcript string
	History    []string
	Sentiment  Sentiment
}

// Classifier never fails: strategies that depend on a remote service
// report IntentUnclear when that service cannot answer.
type Classifier interface {
	Classify(ctx context.Context, in ClassifyInput) Intent
}

const negationWindow = 4

var (
	wordPattern = regexp.MustCompile(`[a-z0-9']+`)

	affirmativeCues = []string{"yes", "yeah", "yep", "sure", "okay", "ok", "pay", "paying"}
	negationCues    = []string{"not", "no", "never", "won't", "wont", "cannot", "can't", "cant", "don't", "dont", "unable"}
	refusalWords    = []string{
		"no", "nope", "can't", "cant", "cannot", "won't", "never", "refuse", "refusing",
		"later", "problem", "busy", "delay", "sometime", "soonish", "unable",
	}
	refusalPhrases = []string{"next week", "month end", "end of month"}
	// "no" directly before these is not a negation of what follows.
	softenedNo = []string{"problem", "problems", "worries", "doubt"}
)

type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify checks the latest transcript only, in order: a negated
// affirmative cue refuses, any affirmative cue agrees, then refusal
// or delay cues refuse. Everything else is unclear.
func (k *KeywordClassifier) Classify(_ context.Context, in ClassifyInput) Intent {
	words := tokenize(in.Transcript)
	if len(words) == 0 {
		return IntentUnclear
	}
	if hasNegatedAffirmative(words) || slices.Contains(words, "refuse") || slices.Contains(words, "refusing") {
		return IntentRefusesToPay
	}
	if containsAny(words, affirmativeCues) {
		return IntentAgreesToPay
	}
	if containsAny(words, refusalWords) || containsPhrase(words, refusalPhrases) {
		return IntentRefusesToPay
	}
	return IntentUnclear
}

func tokenize(s string) []string {
	s = strings.ToLower(strings.ReplaceAll(s, "’", "'"))
	return wordPattern.FindAllString(s, -1)
}

func hasNegatedAffirmative(words []string) bool {
	for i, w := range words {
		if !slices.Contains(affirmativeCues, w) {
			continue
		}
		for j := max(0, i-negationWindow); j < i; j++ {
			if isNegation(words, j) {
				return true
			}
		}
	}
	return false
}

func isNegation(words []string, i int) bool {
	if !slices.Contains(negationCues, words[i]) {
		return false
	}
	if words[i] == "no" && i+1 < len(words) && slices.Contains(softenedNo, words[i+1]) {
		return false
	}
	return true
}

func containsAny(words, cues []string) bool {
	for _, w := range words {
		if slices.Contains(cues, w) {
			return true
		}
	}
	return false
}

func containsPhrase(words, phrases []string) bool {
	joined := " " + strings.Join(words, " ") + " "
	for _, p := range phrases {
		if strings.Contains(joined, " "+p+" ") {
			return true
		}
	}
	return false
}
