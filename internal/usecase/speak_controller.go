package usecase

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sayboard/internal/domain"
	"sayboard/internal/ports"
)

// ErrEmptyInput is returned when a speak request carries only whitespace.
var ErrEmptyInput = errors.New("nothing to speak")

// voicesChangedDebounce coalesces the bursts of voices-changed notifications
// some hosts fire while populating their voice list.
const voicesChangedDebounce = 150 * time.Millisecond

// SpeakController owns the single outstanding utterance and tracks playback
// state. State changes only on host confirmation, except for Cancel, which is
// locally authoritative because hosts may never confirm a cancellation. Every
// job carries an identity so late notifications from a superseded job are
// discarded.
type SpeakController struct {
	synth  ports.Synthesizer
	voices *VoiceDirectory
	events ports.EventSink
	log    zerolog.Logger

	mu        sync.Mutex
	state     domain.SpeakState
	currentID string

	debounced func(func())
	done      chan struct{}
}

func NewSpeakController(
	synth ports.Synthesizer,
	voices *VoiceDirectory,
	events ports.EventSink,
	log zerolog.Logger,
) *SpeakController {
	c := &SpeakController{
		synth:     synth,
		voices:    voices,
		events:    events,
		log:       log.With().Str("component", "speak").Logger(),
		state:     domain.SpeakStateIdle,
		debounced: debounce.New(voicesChangedDebounce),
		done:      make(chan struct{}),
	}
	if synth == nil {
		close(c.done)
		return c
	}
	go c.consumeEvents()
	return c
}

// Speak submits a new utterance. Any in-flight utterance is cancelled first;
// the host delivers no end notification for a cancelled job, only for the new
// one once it starts.
func (c *SpeakController) Speak(request domain.UtteranceRequest) error {
	if c.synth == nil {
		return ErrUnsupported
	}

	text := strings.TrimSpace(request.Text)
	if text == "" {
		return ErrEmptyInput
	}

	c.mu.Lock()
	if c.currentID != "" {
		_ = c.synth.Cancel()
		interrupted := c.state == domain.SpeakStateSpeaking || c.state == domain.SpeakStatePaused
		c.state = domain.SpeakStateIdle
		c.currentID = ""
		if interrupted {
			c.mu.Unlock()
			c.events.SpeakStateChanged(domain.SpeakStateIdle, domain.ReasonSpeechInterrupted)
			c.mu.Lock()
		}
	}

	job := domain.UtteranceJob{
		ID:     uuid.NewString(),
		Text:   text,
		Lang:   request.Lang,
		Rate:   request.Rate,
		Pitch:  request.Pitch,
		Volume: request.Volume,
	}
	if voice, ok := c.voices.ByID(request.VoiceID); ok {
		job.VoiceID = voice.ID
		if voice.Lang != "" {
			job.Lang = voice.Lang
		}
	} else if request.VoiceID == "" {
		// No voice asked for: pick the directory default for the requested
		// language. A named but unknown voice stays on the host default.
		if voice, ok := c.voices.ResolveDefaultFor(job.Lang); ok {
			job.VoiceID = voice.ID
		}
	}
	c.currentID = job.ID
	c.mu.Unlock()

	if err := c.synth.Speak(job); err != nil {
		c.mu.Lock()
		c.currentID = ""
		c.mu.Unlock()
		return fmt.Errorf("failed to submit utterance: %w", err)
	}

	c.log.Debug().Str("utterance", job.ID).Str("voice", job.VoiceID).Msg("utterance submitted")
	return nil
}

// Pause requests a pause. Valid only while Speaking; the transition to Paused
// happens on host confirmation.
func (c *SpeakController) Pause() error {
	if c.synth == nil {
		return ErrUnsupported
	}
	if c.State() != domain.SpeakStateSpeaking {
		return nil
	}
	if err := c.synth.Pause(); err != nil {
		return fmt.Errorf("failed to pause speech: %w", err)
	}
	return nil
}

// Resume requests a resume. Valid only while Paused.
func (c *SpeakController) Resume() error {
	if c.synth == nil {
		return ErrUnsupported
	}
	if c.State() != domain.SpeakStatePaused {
		return nil
	}
	if err := c.synth.Resume(); err != nil {
		return fmt.Errorf("failed to resume speech: %w", err)
	}
	return nil
}

// Cancel discards the outstanding utterance. The local transition to Idle is
// immediate and authoritative; a confirming host notification, if any, is
// already stale by the time it arrives.
func (c *SpeakController) Cancel() error {
	if c.synth == nil {
		return ErrUnsupported
	}

	c.mu.Lock()
	if c.state != domain.SpeakStateSpeaking && c.state != domain.SpeakStatePaused {
		c.mu.Unlock()
		return nil
	}
	c.state = domain.SpeakStateIdle
	c.currentID = ""
	c.mu.Unlock()

	_ = c.synth.Cancel()
	c.log.Debug().Msg("speech cancelled")
	c.events.SpeakStateChanged(domain.SpeakStateIdle, domain.ReasonSpeechCancelled)
	return nil
}

// State returns the current playback state.
func (c *SpeakController) State() domain.SpeakState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RefreshVoices rebuilds the voice directory snapshot and pushes it to the UI.
func (c *SpeakController) RefreshVoices() ([]domain.Voice, error) {
	snapshot, err := c.voices.Refresh()
	if err != nil {
		return nil, err
	}
	c.events.VoicesChanged(snapshot)
	return snapshot, nil
}

func (c *SpeakController) consumeEvents() {
	defer close(c.done)

	for event := range c.synth.Events() {
		if event.Kind == domain.SpeechVoicesChanged {
			c.debounced(func() {
				if _, err := c.RefreshVoices(); err != nil {
					c.log.Warn().Err(err).Msg("voice refresh failed")
				}
			})
			continue
		}
		c.handleUtteranceEvent(event)
	}
}

func (c *SpeakController) handleUtteranceEvent(event domain.SpeechEvent) {
	c.mu.Lock()
	if event.UtteranceID == "" || event.UtteranceID != c.currentID {
		c.mu.Unlock()
		c.log.Debug().Str("utterance", event.UtteranceID).Str("kind", string(event.Kind)).
			Msg("stale host notification discarded")
		return
	}

	var (
		state  domain.SpeakState
		reason domain.StateReason
		report bool
	)
	switch event.Kind {
	case domain.SpeechStarted:
		c.state = domain.SpeakStateSpeaking
		state, reason, report = c.state, domain.ReasonSpeechStarted, true
	case domain.SpeechPaused:
		if c.state == domain.SpeakStateSpeaking {
			c.state = domain.SpeakStatePaused
			state, reason, report = c.state, domain.ReasonSpeechPaused, true
		}
	case domain.SpeechResumed:
		if c.state == domain.SpeakStatePaused {
			c.state = domain.SpeakStateSpeaking
			state, reason, report = c.state, domain.ReasonSpeechResumed, true
		}
	case domain.SpeechEnded:
		c.state = domain.SpeakStateEnded
		c.currentID = ""
		state, reason, report = c.state, domain.ReasonSpeechEnded, true
	case domain.SpeechFailed:
		c.state = domain.SpeakStateEnded
		c.currentID = ""
		state, reason, report = c.state, domain.ReasonSpeechFailed, true
	}
	c.mu.Unlock()

	if event.Kind == domain.SpeechFailed {
		c.log.Warn().Str("host_code", event.Code).Msg("synthesis error")
		c.events.SessionError(domain.ErrorCodeSynthesis, event.Code)
	}
	if report {
		c.events.SpeakStateChanged(state, reason)
	}
}
