package dialogue

import (
	"github.com/foxseedlab/kaishu/internal/config"
	"github.com/foxseedlab/kaishu/internal/llm"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (Classifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Classifier == config.ClassifierLLM {
			return NewLLMClassifier(do.MustInvoke[llm.Completer](i), cfg.LLMModel), nil
		}
		return NewKeywordClassifier(), nil
	})
	do.Provide(injector, func(i do.Injector) (SentimentAnalyzer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.SentimentEnabled {
			return NoSentiment{}, nil
		}
		return NewLLMSentimentAnalyzer(do.MustInvoke[llm.Completer](i), cfg.LLMSentimentModel), nil
	})
	do.Provide(injector, func(i do.Injector) (*Planner, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewPlanner(cfg.PaymentLinkURL), nil
	})
}
