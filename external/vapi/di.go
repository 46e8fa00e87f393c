package vapi

import (
	"github.com/foxseedlab/kaishu/internal/config"
	"github.com/foxseedlab/kaishu/internal/voice"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (voice.Caller, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewCaller(Config{
			APIKey:        c.VapiAPIKey,
			AssistantID:   c.VapiAssistantID,
			PhoneNumberID: c.VapiPhoneNumberID,
			BaseURL:       c.VapiBaseURL,
			Timeout:       c.VendorTimeout,
		}), nil
	})
}
