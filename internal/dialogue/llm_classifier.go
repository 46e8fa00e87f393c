package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/foxseedlab/kaishu/internal/llm"
)

const intentPromptFormat = `%sAnalyze the customer's intent from the latest customer message below, using the conversation only as context.
Latest customer message: %q
%s
Choose exactly one label:
- "AGREES_TO_PAY": the customer agrees to pay their loan.
- "REFUSES_TO_PAY": the customer refuses to pay or says they cannot pay now.
- "REQUESTS_INFO": the customer asks for details about the loan or the payment.
- "END_CONVERSATION": the customer wants to end the call.
- "UNCLEAR": the intent is not clear.

Respond with a single JSON object with the key "intent", for example {"intent": "AGREES_TO_PAY"}.`

type LLMClassifier struct {
	completer llm.Completer
	model     string
}

func NewLLMClassifier(completer llm.Completer, model string) *LLMClassifier {
	return &LLMClassifier{completer: completer, model: model}
}

func (c *LLMClassifier) Classify(ctx context.Context, in ClassifyInput) Intent {
	out, err := c.completer.Complete(ctx, llm.CompletionRequest{
		Model:       c.model,
		Prompt:      buildIntentPrompt(in),
		Temperature: 0,
	})
	if err != nil {
		slog.Warn("intent completion failed; falling back to unclear", "error", err)
		return IntentUnclear
	}
	intent, ok := parseIntentOutput(out)
	if !ok {
		slog.Warn("intent completion was not parseable; falling back to unclear", "output", out)
		return IntentUnclear
	}
	return intent
}

func buildIntentPrompt(in ClassifyInput) string {
	history := ""
	if len(in.History) > 0 {
		history = "Conversation so far:\n" + strings.Join(in.History, "\n") + "\n\n"
	}
	sentiment := ""
	if in.Sentiment != SentimentNone {
		sentiment = fmt.Sprintf("Detected sentiment of the message: %s\n", in.Sentiment)
	}
	return fmt.Sprintf(intentPromptFormat, history, in.Transcript, sentiment)
}

// parseIntentOutput accepts {"intent": LABEL}, optionally fenced or
// surrounded by prose, or a bare label.
func parseIntentOutput(out string) (Intent, bool) {
	if start, end := strings.Index(out, "{"), strings.LastIndex(out, "}"); start >= 0 && end > start {
		var body struct {
			Intent string `json:"intent"`
		}
		if err := json.Unmarshal([]byte(out[start:end+1]), &body); err == nil {
			return ParseIntent(body.Intent)
		}
	}
	trimmed := strings.Trim(strings.TrimSpace(out), "`\"'.")
	return ParseIntent(trimmed)
}
