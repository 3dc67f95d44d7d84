package bootstrap

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"sayboard/internal/config"
	"sayboard/internal/domain"
	"sayboard/internal/ports"
	"sayboard/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Listen *usecase.ListenController
	Speak  *usecase.SpeakController
	Voices *usecase.VoiceDirectory
	Config config.Config
	Log    zerolog.Logger
}

// Build wires all backend dependencies. A nil recognizer or synthesizer marks
// the capability as absent on this host; the controllers then fail its
// operations instead of crashing.
func Build(eventSink ports.EventSink, recognizer ports.Recognizer, synthesizer ports.Synthesizer) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}

	log := newLogger(cfg.Log.Level)

	voices := usecase.NewVoiceDirectory(synthesizer)

	listen := usecase.NewListenController(
		recognizer,
		eventSink,
		domain.RecognitionConfig{
			Language:       cfg.Recognition.Language,
			Continuous:     cfg.Recognition.Continuous,
			InterimResults: cfg.Recognition.InterimResults,
		},
		log,
	)
	speak := usecase.NewSpeakController(synthesizer, voices, eventSink, log)

	return Services{
		Listen: listen,
		Speak:  speak,
		Voices: voices,
		Config: cfg,
		Log:    log,
	}, nil
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(parsed)
}
