package ports

import (
	"sayboard/internal/domain"
)

// Recognizer is the host speech recognition capability. Configure, Start and
// Stop return immediately; effects are observed through Events. A Recognizer
// may be absent on a given host, in which case the controller holds nil.
type Recognizer interface {
	Configure(cfg domain.RecognitionConfig) error
	Start() error
	Stop() error
	Events() <-chan domain.RecognitionEvent
}

// Synthesizer is the host speech synthesis capability. Speak, Pause, Resume
// and Cancel return immediately; per-utterance lifecycle and voices-changed
// notifications arrive through Events.
type Synthesizer interface {
	Voices() ([]domain.Voice, error)
	Speak(job domain.UtteranceJob) error
	Pause() error
	Resume() error
	Cancel() error
	Events() <-chan domain.SpeechEvent
}

// EventSink emits backend state/events to the UI.
type EventSink interface {
	ListenStateChanged(state domain.ListenState, reason domain.StateReason)
	TranscriptChanged(finalized string, interim string)
	SpeakStateChanged(state domain.SpeakState, reason domain.StateReason)
	VoicesChanged(voices []domain.Voice)
	SessionError(code domain.ErrorCode, detail string)
}
