package outbound

import (
	"github.com/foxseedlab/kaishu/internal/config"
	"github.com/foxseedlab/kaishu/internal/phone"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/voice"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Starter, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewStarter(
			do.MustInvoke[repository.Repository](i),
			do.MustInvoke[phone.Validator](i),
			do.MustInvoke[voice.Caller](i),
			cfg.PhoneLookupEnabled,
		), nil
	})
}
