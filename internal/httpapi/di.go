package httpapi

import (
	"github.com/foxseedlab/kaishu/internal/config"
	"github.com/foxseedlab/kaishu/internal/outbound"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/session"
	"github.com/foxseedlab/kaishu/internal/voicenote"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewServer(
			do.MustInvoke[repository.Repository](i),
			do.MustInvoke[*session.Dispatcher](i),
			do.MustInvoke[*outbound.Starter](i),
			do.MustInvoke[*voicenote.Processor](i),
			cfg.CORSAllowedOrigins,
		), nil
	})
}
