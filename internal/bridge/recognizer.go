package bridge

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"sayboard/internal/domain"
)

const (
	cmdRecognitionConfigure = "sayboard:cmd:rec:configure"
	cmdRecognitionStart     = "sayboard:cmd:rec:start"
	cmdRecognitionStop      = "sayboard:cmd:rec:stop"
)

// Recognizer adapts the page-hosted recognition engine to the capability
// port. Calls become runtime events the page acts on; the page forwards the
// engine's callbacks back through Deliver.
type Recognizer struct {
	ctx    context.Context
	events chan domain.RecognitionEvent
}

func NewRecognizer(ctx context.Context) *Recognizer {
	return &Recognizer{ctx: ctx, events: make(chan domain.RecognitionEvent, 16)}
}

func (r *Recognizer) Configure(cfg domain.RecognitionConfig) error {
	runtime.EventsEmit(r.ctx, cmdRecognitionConfigure, cfg)
	return nil
}

func (r *Recognizer) Start() error {
	runtime.EventsEmit(r.ctx, cmdRecognitionStart)
	return nil
}

func (r *Recognizer) Stop() error {
	runtime.EventsEmit(r.ctx, cmdRecognitionStop)
	return nil
}

func (r *Recognizer) Events() <-chan domain.RecognitionEvent {
	return r.events
}

// Deliver pushes one host notification into the event stream.
func (r *Recognizer) Deliver(event domain.RecognitionEvent) {
	select {
	case r.events <- event:
	default:
		// A wedged consumer must not block the UI thread.
	}
}

// Close ends the event stream; the consuming controller goroutine exits.
func (r *Recognizer) Close() {
	close(r.events)
}
