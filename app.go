package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"sayboard/internal/bootstrap"
	"sayboard/internal/bridge"
	"sayboard/internal/config"
	"sayboard/internal/domain"
	"sayboard/internal/ports"
	"sayboard/internal/usecase"
)

const (
	eventListen     = "sayboard:listen"
	eventTranscript = "sayboard:transcript"
	eventSpeak      = "sayboard:speak"
	eventVoices     = "sayboard:voices"
	eventError      = "sayboard:error"
)

// App is the Wails application root. The page owns the host speech engines;
// App owns all state and forwards host callbacks into the controllers.
type App struct {
	ctx context.Context

	listen *usecase.ListenController
	speak  *usecase.SpeakController
	voices *usecase.VoiceDirectory
	rec    *bridge.Recognizer
	synth  *bridge.Synthesizer
	cfg    config.Config
	log    zerolog.Logger
	caps   domain.Capabilities

	bootErr error
}

func NewApp() *App {
	return &App{log: zerolog.Nop()}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Ready is called by the page once it has detected host capability support.
// It assembles the backend; on a page reload it tears the old graph down
// first so stale host notifications cannot reach the new controllers.
func (a *App) Ready(caps domain.Capabilities) error {
	a.teardown()
	a.caps = caps
	a.bootErr = nil

	// Interface values stay nil for absent capabilities; assigning a nil
	// *bridge value would make them non-nil.
	var rec *bridge.Recognizer
	var synth *bridge.Synthesizer
	var recPort ports.Recognizer
	var synthPort ports.Synthesizer
	if caps.Recognition {
		rec = bridge.NewRecognizer(a.ctx)
		recPort = rec
	}
	if caps.Synthesis {
		synth = bridge.NewSynthesizer(a.ctx)
		synthPort = synth
	}

	services, err := bootstrap.Build(a, recPort, synthPort)
	if err != nil {
		a.bootErr = err
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return err
	}

	a.rec = rec
	a.synth = synth
	a.listen = services.Listen
	a.speak = services.Speak
	a.voices = services.Voices
	a.cfg = services.Config
	a.log = services.Log

	a.log.Info().Bool("recognition", caps.Recognition).Bool("synthesis", caps.Synthesis).
		Msg("backend ready")
	a.ListenStateChanged(domain.ListenStateIdle, domain.ReasonReady)
	a.SpeakStateChanged(domain.SpeakStateIdle, domain.ReasonReady)
	return nil
}

// Configure updates the recognition session configuration.
func (a *App) Configure(cfg domain.RecognitionConfig) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.listen.Configure(cfg)
}

// StartListening begins a recognition session.
func (a *App) StartListening() (domain.Status, error) {
	if err := a.requireReady(); err != nil {
		return domain.Status{}, err
	}
	if err := a.listen.Start(); err != nil {
		a.reportError(err, domain.ErrorCodeRecognition)
		return domain.Status{}, err
	}
	return a.GetStatus(), nil
}

// StopListening requests the end of the recognition session.
func (a *App) StopListening() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.listen.Stop(); err != nil {
		a.reportError(err, domain.ErrorCodeRecognition)
		return err
	}
	return nil
}

// GetTranscript returns the externally observed transcript.
func (a *App) GetTranscript() string {
	if a.listen == nil {
		return ""
	}
	return a.listen.Transcript()
}

// ClearTranscript discards the accumulated transcript.
func (a *App) ClearTranscript() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.listen.Clear()
	return nil
}

// SaveTranscript writes the finalized transcript verbatim to a user-chosen
// file. A cancelled dialog is not an error.
func (a *App) SaveTranscript() error {
	if err := a.requireReady(); err != nil {
		return err
	}

	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save transcript",
		DefaultFilename: "transcript.txt",
	})
	if err != nil {
		a.SessionError(domain.ErrorCodeExport, err.Error())
		return err
	}
	if path == "" {
		return nil
	}

	if err := os.WriteFile(path, a.listen.Export(), 0o644); err != nil {
		a.SessionError(domain.ErrorCodeExport, err.Error())
		return err
	}
	a.log.Info().Str("path", path).Msg("transcript saved")
	return nil
}

// CopyTranscript puts the finalized transcript on the system clipboard.
func (a *App) CopyTranscript() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := runtime.ClipboardSetText(a.ctx, string(a.listen.Export())); err != nil {
		a.SessionError(domain.ErrorCodeClipboard, err.Error())
		return err
	}
	return nil
}

// Speak submits a text-to-speech request.
func (a *App) Speak(request domain.UtteranceRequest) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.speak.Speak(request); err != nil {
		a.reportError(err, domain.ErrorCodeSynthesis)
		return err
	}
	return nil
}

// PauseSpeech requests a playback pause.
func (a *App) PauseSpeech() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.speak.Pause(); err != nil {
		a.reportError(err, domain.ErrorCodeSynthesis)
		return err
	}
	return nil
}

// ResumeSpeech requests a playback resume.
func (a *App) ResumeSpeech() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.speak.Resume(); err != nil {
		a.reportError(err, domain.ErrorCodeSynthesis)
		return err
	}
	return nil
}

// CancelSpeech discards the outstanding utterance immediately.
func (a *App) CancelSpeech() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.speak.Cancel(); err != nil {
		a.reportError(err, domain.ErrorCodeSynthesis)
		return err
	}
	return nil
}

// GetVoices returns the current voice directory snapshot.
func (a *App) GetVoices() []domain.Voice {
	if a.voices == nil {
		return nil
	}
	return a.voices.Snapshot()
}

// RefreshVoices rebuilds the voice directory from the host list.
func (a *App) RefreshVoices() ([]domain.Voice, error) {
	if err := a.requireReady(); err != nil {
		return nil, err
	}
	snapshot, err := a.speak.RefreshVoices()
	if err != nil {
		a.reportError(err, domain.ErrorCodeSynthesis)
		return nil, err
	}
	return snapshot, nil
}

// GetStatus returns the current backend status.
func (a *App) GetStatus() domain.Status {
	if a.listen == nil || a.speak == nil {
		status := domain.Status{Listen: domain.ListenStateIdle, Speak: domain.SpeakStateIdle}
		if a.bootErr != nil {
			status.Message = a.bootErr.Error()
		}
		return status
	}
	return domain.Status{
		Listen:     a.listen.State(),
		Speak:      a.speak.State(),
		Transcript: a.listen.Transcript(),
		Voices:     len(a.voices.Snapshot()),
	}
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}
	if a.listen == nil {
		return map[string]string{}
	}
	cfg := a.listen.Config()
	return map[string]string{
		"language":      cfg.Language,
		"continuous":    fmt.Sprintf("%t", cfg.Continuous),
		"interim":       fmt.Sprintf("%t", cfg.InterimResults),
		"recognition":   fmt.Sprintf("%t", a.caps.Recognition),
		"synthesis":     fmt.Sprintf("%t", a.caps.Synthesis),
		"defaultRate":   fmt.Sprintf("%g", a.cfg.Synthesis.Rate),
		"defaultPitch":  fmt.Sprintf("%g", a.cfg.Synthesis.Pitch),
		"defaultVolume": fmt.Sprintf("%g", a.cfg.Synthesis.Volume),
	}
}

// PageHidden is called by the page on visibility loss: recognition stops and
// playback is discarded so the host engines never run unattended.
func (a *App) PageHidden() {
	if a.listen == nil || a.speak == nil {
		return
	}
	_ = a.listen.Stop()
	_ = a.speak.Cancel()
	a.log.Debug().Msg("page hidden; sessions torn down")
}

// HostRecognitionEvent forwards one recognizer notification from the page.
func (a *App) HostRecognitionEvent(event domain.RecognitionEvent) {
	if a.rec == nil {
		return
	}
	a.rec.Deliver(event)
}

// HostSpeechEvent forwards one synthesizer notification from the page.
func (a *App) HostSpeechEvent(event domain.SpeechEvent) {
	if a.synth == nil {
		return
	}
	a.synth.Deliver(event)
}

// HostVoicesChanged forwards the host voice list from the page.
func (a *App) HostVoicesChanged(voices []domain.Voice) {
	if a.synth == nil {
		return
	}
	a.synth.SetVoices(voices)
	a.synth.Deliver(domain.SpeechEvent{Kind: domain.SpeechVoicesChanged})
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.listen == nil || a.speak == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

func (a *App) reportError(err error, fallback domain.ErrorCode) {
	switch {
	case errors.Is(err, usecase.ErrUnsupported):
		a.SessionError(domain.ErrorCodeUnsupported, err.Error())
	case errors.Is(err, usecase.ErrEmptyInput):
		a.SessionError(domain.ErrorCodeEmptyInput, err.Error())
	default:
		a.SessionError(fallback, err.Error())
	}
}

func (a *App) teardown() {
	if a.listen != nil {
		_ = a.listen.Stop()
	}
	if a.speak != nil {
		_ = a.speak.Cancel()
	}
	if a.rec != nil {
		a.rec.Close()
		a.rec = nil
	}
	if a.synth != nil {
		a.synth.Close()
		a.synth = nil
	}
	a.listen = nil
	a.speak = nil
	a.voices = nil
}

// ListenStateChanged emits recognition lifecycle updates to the frontend.
func (a *App) ListenStateChanged(state domain.ListenState, reason domain.StateReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventListen, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": stateReasonMessage(reason),
	})
}

// TranscriptChanged emits the current transcript split to the frontend.
func (a *App) TranscriptChanged(finalized string, interim string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventTranscript, map[string]string{
		"finalized": finalized,
		"interim":   interim,
	})
}

// SpeakStateChanged emits playback lifecycle updates to the frontend.
func (a *App) SpeakStateChanged(state domain.SpeakState, reason domain.StateReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventSpeak, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": stateReasonMessage(reason),
	})
}

// VoicesChanged emits the refreshed voice directory to the frontend.
func (a *App) VoicesChanged(voices []domain.Voice) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventVoices, voices)
}

// SessionError emits backend errors to the UI.
func (a *App) SessionError(code domain.ErrorCode, detail string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func stateReasonMessage(reason domain.StateReason) string {
	switch reason {
	case domain.ReasonReady:
		return "Ready"
	case domain.ReasonListeningStarted:
		return "Listening..."
	case domain.ReasonListeningStopping:
		return "Stopping..."
	case domain.ReasonListeningEnded:
		return "Stopped listening"
	case domain.ReasonTranscriptCleared:
		return "Transcript cleared"
	case domain.ReasonSpeechStarted:
		return "Speaking..."
	case domain.ReasonSpeechPaused:
		return "Speech paused"
	case domain.ReasonSpeechResumed:
		return "Speaking..."
	case domain.ReasonSpeechEnded:
		return "Finished speaking"
	case domain.ReasonSpeechCancelled:
		return "Speech cancelled"
	case domain.ReasonSpeechInterrupted:
		return "Speech interrupted by a new utterance"
	case domain.ReasonSpeechFailed:
		return "Speech failed"
	case domain.ReasonPageHidden:
		return "Page hidden"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeUnsupported:
		return "Speech is not supported in this browser"
	case domain.ErrorCodeEmptyInput:
		return "Nothing to speak"
	case domain.ErrorCodePermissionDenied:
		return "Permission denied"
	case domain.ErrorCodeNoMicrophone:
		return "No microphone"
	case domain.ErrorCodeNoSpeech:
		return "Nothing heard"
	case domain.ErrorCodeRecognition:
		return "Recognition error"
	case domain.ErrorCodeSynthesis:
		return "Speech synthesis error"
	case domain.ErrorCodeExport:
		return "Could not save transcript"
	case domain.ErrorCodeClipboard:
		return "Clipboard write failed"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}
