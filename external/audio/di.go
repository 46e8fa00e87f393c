package audio

import (
	"github.com/foxseedlab/kaishu/internal/audio"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (audio.RecordingStore, error) {
		return NewTempStore(""), nil
	})
}
