package bootstrap

import (
	"errors"
	"testing"

	"sayboard/internal/domain"
	"sayboard/internal/usecase"
)

func TestBuildWithAbsentCapabilities(t *testing.T) {
	services, err := Build(noopEventSink{}, nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if services.Listen == nil || services.Speak == nil || services.Voices == nil {
		t.Fatalf("expected assembled services")
	}

	if err := services.Listen.Start(); !errors.Is(err, usecase.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported from listen start, got %v", err)
	}
	if err := services.Speak.Speak(domain.UtteranceRequest{Text: "hi"}); !errors.Is(err, usecase.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported from speak, got %v", err)
	}
}

func TestBuildAppliesRecognitionConfig(t *testing.T) {
	t.Setenv("SAYBOARD_LANGUAGE", "de-DE")
	t.Setenv("SAYBOARD_CONTINUOUS", "false")

	services, err := Build(noopEventSink{}, nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	cfg := services.Listen.Config()
	if cfg.Language != "de-DE" || cfg.Continuous {
		t.Fatalf("unexpected recognition config: %+v", cfg)
	}
}

type noopEventSink struct{}

func (noopEventSink) ListenStateChanged(_ domain.ListenState, _ domain.StateReason) {}
func (noopEventSink) TranscriptChanged(_, _ string)                                 {}
func (noopEventSink) SpeakStateChanged(_ domain.SpeakState, _ domain.StateReason)   {}
func (noopEventSink) VoicesChanged(_ []domain.Voice)                                {}
func (noopEventSink) SessionError(_ domain.ErrorCode, _ string)                     {}
