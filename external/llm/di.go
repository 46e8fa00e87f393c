package llm

import (
	"github.com/foxseedlab/kaishu/internal/config"
	"github.com/foxseedlab/kaishu/internal/llm"
	"github.com/openai/openai-go"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*openai.Client, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewClient(ClientConfig{
			BaseURL: c.LLMBaseURL,
			APIKey:  c.LLMAPIKey,
			Timeout: c.LLMTimeout,
		}), nil
	})
	do.Provide(injector, func(i do.Injector) (llm.Completer, error) {
		return NewOpenAICompleter(do.MustInvoke[*openai.Client](i)), nil
	})
}
