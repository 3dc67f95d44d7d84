package bridge

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"sayboard/internal/domain"
)

const (
	cmdSpeechSpeak  = "sayboard:cmd:tts:speak"
	cmdSpeechPause  = "sayboard:cmd:tts:pause"
	cmdSpeechResume = "sayboard:cmd:tts:resume"
	cmdSpeechCancel = "sayboard:cmd:tts:cancel"
)

// Synthesizer adapts the page-hosted synthesis engine to the capability port.
// The page pushes its voice list through SetVoices whenever the host reports
// a change; Voices serves the latest pushed list.
type Synthesizer struct {
	ctx    context.Context
	events chan domain.SpeechEvent

	mu     sync.Mutex
	voices []domain.Voice
}

func NewSynthesizer(ctx context.Context) *Synthesizer {
	return &Synthesizer{ctx: ctx, events: make(chan domain.SpeechEvent, 16)}
}

func (s *Synthesizer) Voices() ([]domain.Voice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Voice, len(s.voices))
	copy(out, s.voices)
	return out, nil
}

// SetVoices replaces the cached host voice list.
func (s *Synthesizer) SetVoices(voices []domain.Voice) {
	s.mu.Lock()
	s.voices = append([]domain.Voice(nil), voices...)
	s.mu.Unlock()
}

func (s *Synthesizer) Speak(job domain.UtteranceJob) error {
	runtime.EventsEmit(s.ctx, cmdSpeechSpeak, job)
	return nil
}

func (s *Synthesizer) Pause() error {
	runtime.EventsEmit(s.ctx, cmdSpeechPause)
	return nil
}

func (s *Synthesizer) Resume() error {
	runtime.EventsEmit(s.ctx, cmdSpeechResume)
	return nil
}

func (s *Synthesizer) Cancel() error {
	runtime.EventsEmit(s.ctx, cmdSpeechCancel)
	return nil
}

func (s *Synthesizer) Events() <-chan domain.SpeechEvent {
	return s.events
}

// Deliver pushes one host notification into the event stream.
func (s *Synthesizer) Deliver(event domain.SpeechEvent) {
	select {
	case s.events <- event:
	default:
	}
}

// Close ends the event stream; the consuming controller goroutine exits.
func (s *Synthesizer) Close() {
	close(s.events)
}
