package session

import (
	"github.com/foxseedlab/kaishu/internal/dialogue"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/sms"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (Store, error) {
		return NewMemoryStore(), nil
	})
	do.Provide(injector, func(i do.Injector) (*Dispatcher, error) {
		return NewDispatcher(
			do.MustInvoke[Store](i),
			do.MustInvoke[repository.Repository](i),
			do.MustInvoke[dialogue.Classifier](i),
			do.MustInvoke[*dialogue.Planner](i),
			do.MustInvoke[sms.Sender](i),
		), nil
	})
}
