package voicenote

import (
	"github.com/foxseedlab/kaishu/internal/audio"
	"github.com/foxseedlab/kaishu/internal/dialogue"
	"github.com/foxseedlab/kaishu/internal/outcome"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/sms"
	"github.com/foxseedlab/kaishu/internal/transcriber"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Processor, error) {
		return NewProcessor(
			do.MustInvoke[repository.Repository](i),
			do.MustInvoke[audio.RecordingStore](i),
			do.MustInvoke[transcriber.Transcriber](i),
			do.MustInvoke[dialogue.Classifier](i),
			do.MustInvoke[dialogue.SentimentAnalyzer](i),
			do.MustInvoke[*dialogue.Planner](i),
			do.MustInvoke[*outcome.Recorder](i),
			do.MustInvoke[sms.Sender](i),
		), nil
	})
}
