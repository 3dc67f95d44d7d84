package usecase

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"sayboard/internal/domain"
	"sayboard/internal/ports"
)

// ErrUnsupported is returned by every public operation on a capability the
// host does not provide.
var ErrUnsupported = errors.New("speech capability not supported on this host")

// ListenController owns the recognition session: it drives the host
// recognizer and merges incoming result batches into the running transcript.
// Host notifications are consumed on a single goroutine, so callback-driven
// state mutation is serialized.
type ListenController struct {
	rec    ports.Recognizer
	events ports.EventSink
	log    zerolog.Logger

	mu    sync.Mutex
	cfg   domain.RecognitionConfig
	state domain.ListenState

	buf  *transcriptBuffer
	done chan struct{}
}

func NewListenController(
	rec ports.Recognizer,
	events ports.EventSink,
	cfg domain.RecognitionConfig,
	log zerolog.Logger,
) *ListenController {
	c := &ListenController{
		rec:    rec,
		events: events,
		log:    log.With().Str("component", "listen").Logger(),
		cfg:    cfg,
		state:  domain.ListenStateIdle,
		buf:    newTranscriptBuffer(),
		done:   make(chan struct{}),
	}
	if rec == nil {
		close(c.done)
		return c
	}
	go c.consumeEvents()
	return c
}

// Configure updates the stored recognizer configuration. The configuration is
// pushed to the capability best-effort; hosts apply it no earlier than the
// next Start while a session is active.
func (c *ListenController) Configure(cfg domain.RecognitionConfig) error {
	if strings.TrimSpace(cfg.Language) == "" {
		return errors.New("language tag must not be empty")
	}

	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()

	if c.rec != nil {
		if err := c.rec.Configure(cfg); err != nil {
			c.log.Warn().Err(err).Msg("live reconfiguration rejected by host")
		}
	}
	c.log.Debug().Str("language", cfg.Language).Bool("continuous", cfg.Continuous).
		Bool("interim", cfg.InterimResults).Msg("recognition configured")
	return nil
}

// Start transitions Idle to Listening. A second Start while already listening
// is a silent no-op so rapid double-clicks never surface host faults.
func (c *ListenController) Start() error {
	if c.rec == nil {
		return ErrUnsupported
	}

	c.mu.Lock()
	if c.state == domain.ListenStateListening {
		c.mu.Unlock()
		c.log.Debug().Msg("start ignored; already listening")
		return nil
	}
	cfg := c.cfg
	c.mu.Unlock()

	if err := c.rec.Configure(cfg); err != nil {
		return fmt.Errorf("failed to configure recognizer: %w", err)
	}
	if err := c.rec.Start(); err != nil {
		return fmt.Errorf("failed to start recognition: %w", err)
	}

	c.mu.Lock()
	c.state = domain.ListenStateListening
	c.mu.Unlock()

	c.log.Info().Str("language", cfg.Language).Msg("listening")
	c.events.ListenStateChanged(domain.ListenStateListening, domain.ReasonListeningStarted)
	return nil
}

// Stop requests the end of the session. The transition back to Idle happens
// only once the host delivers its end notification; Stop on an idle session
// is a no-op.
func (c *ListenController) Stop() error {
	if c.rec == nil {
		return ErrUnsupported
	}

	c.mu.Lock()
	idle := c.state == domain.ListenStateIdle
	c.mu.Unlock()
	if idle {
		return nil
	}

	if err := c.rec.Stop(); err != nil {
		return fmt.Errorf("failed to stop recognition: %w", err)
	}
	c.events.ListenStateChanged(domain.ListenStateListening, domain.ReasonListeningStopping)
	return nil
}

// State returns the current session state.
func (c *ListenController) State() domain.ListenState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Config returns the stored recognizer configuration.
func (c *ListenController) Config() domain.RecognitionConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Transcript returns the externally observed transcript, interim included.
func (c *ListenController) Transcript() string {
	return c.buf.Display()
}

// Export returns the finalized transcript verbatim, UTF-8, no header.
func (c *ListenController) Export() []byte {
	return []byte(c.buf.Final())
}

// Clear discards the accumulated transcript.
func (c *ListenController) Clear() {
	c.buf.Clear()
	c.events.TranscriptChanged("", "")
	c.events.ListenStateChanged(c.State(), domain.ReasonTranscriptCleared)
}

func (c *ListenController) consumeEvents() {
	defer close(c.done)

	for event := range c.rec.Events() {
		switch event.Kind {
		case domain.RecognitionStarted:
			c.log.Debug().Msg("host confirmed recognition start")
		case domain.RecognitionResults:
			c.buf.Consume(event.Results)
			c.events.TranscriptChanged(c.buf.Final(), c.buf.Interim())
		case domain.RecognitionFailed:
			code := mapRecognitionError(event.Code)
			c.log.Warn().Str("host_code", event.Code).Msg("recognition error")
			c.events.SessionError(code, event.Code)
		case domain.RecognitionEnded:
			c.mu.Lock()
			wasListening := c.state == domain.ListenStateListening
			c.state = domain.ListenStateIdle
			c.mu.Unlock()
			if wasListening {
				c.log.Info().Msg("session ended")
				c.events.ListenStateChanged(domain.ListenStateIdle, domain.ReasonListeningEnded)
			}
		}
	}
}

// mapRecognitionError maps raw host error codes to the user-facing taxonomy.
func mapRecognitionError(code string) domain.ErrorCode {
	switch code {
	case "no-speech":
		return domain.ErrorCodeNoSpeech
	case "audio-capture":
		return domain.ErrorCodeNoMicrophone
	case "not-allowed":
		return domain.ErrorCodePermissionDenied
	default:
		return domain.ErrorCodeRecognition
	}
}
