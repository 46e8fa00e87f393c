package outcome

import (
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Recorder, error) {
		return NewRecorder(
			do.MustInvoke[repository.Repository](i),
			do.MustInvoke[webhook.Sender](i),
		), nil
	})
}
