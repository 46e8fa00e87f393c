package twilio

import (
	"github.com/foxseedlab/kaishu/internal/config"
	"github.com/foxseedlab/kaishu/internal/phone"
	"github.com/foxseedlab/kaishu/internal/sms"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (sms.Sender, error) {
		return NewSMSSender(configFrom(do.MustInvoke[*config.Config](i))), nil
	})
	do.Provide(injector, func(i do.Injector) (phone.Validator, error) {
		return NewLookupValidator(configFrom(do.MustInvoke[*config.Config](i))), nil
	})
}

func configFrom(c *config.Config) Config {
	return Config{
		AccountSID:    c.TwilioAccountSID,
		AuthToken:     c.TwilioAuthToken,
		FromNumber:    c.TwilioPhoneNumber,
		BaseURL:       c.TwilioBaseURL,
		LookupBaseURL: c.TwilioLookupBaseURL,
		Timeout:       c.VendorTimeout,
	}
}
