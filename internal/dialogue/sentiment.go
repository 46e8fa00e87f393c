package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/foxseedlab/kaishu/internal/llm"
)

const sentimentPromptFormat = `Classify the sentiment of this customer message in a loan repayment call as POSITIVE, NEGATIVE or NEUTRAL.
Message: %q
Respond with only the label.`

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) Sentiment
}

// NoSentiment leaves the classifier without a sentiment signal.
type NoSentiment struct{}

func (NoSentiment) Analyze(context.Context, string) Sentiment { return SentimentNone }

type LLMSentimentAnalyzer struct {
	completer llm.Completer
	model     string
}

func NewLLMSentimentAnalyzer(completer llm.Completer, model string) *LLMSentimentAnalyzer {
	return &LLMSentimentAnalyzer{completer: completer, model: model}
}

// Analyze reports NEUTRAL when the model fails or answers off-label.
func (a *LLMSentimentAnalyzer) Analyze(ctx context.Context, text string) Sentiment {
	if strings.TrimSpace(text) == "" {
		return SentimentNeutral
	}
	out, err := a.completer.Complete(ctx, llm.CompletionRequest{
		Model:  a.model,
		Prompt: fmt.Sprintf(sentimentPromptFormat, text),
	})
	if err != nil {
		slog.Warn("sentiment completion failed", "error", err)
		return SentimentNeutral
	}
	s, _ := ParseSentiment(strings.Trim(strings.TrimSpace(out), "`\"'."))
	return s
}
