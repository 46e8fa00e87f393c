package dialogue

import "strings"

type Intent string

const (
	IntentAgreesToPay     Intent = "AGREES_TO_PAY"
	IntentRefusesToPay    Intent = "REFUSES_TO_PAY"
	IntentRequestsInfo    Intent = "REQUESTS_INFO"
	IntentEndConversation Intent = "END_CONVERSATION"
	IntentUnclear         Intent = "UNCLEAR"
)

var allIntents = []Intent{
	IntentAgreesToPay,
	IntentRefusesToPay,
	IntentRequestsInfo,
	IntentEndConversation,
	IntentUnclear,
}

// ParseIntent accepts a label in any case with spaces or dashes for underscores.
func ParseIntent(s string) (Intent, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, in := range allIntents {
		if string(in) == norm {
			return in, true
		}
	}
	return IntentUnclear, false
}

type Sentiment string

const (
	SentimentNone     Sentiment = ""
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

func ParseSentiment(s string) (Sentiment, bool) {
	switch Sentiment(strings.ToUpper(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive, true
	case SentimentNegative:
		return SentimentNegative, true
	case SentimentNeutral:
		return SentimentNeutral, true
	default:
		return SentimentNeutral, false
	}
}
