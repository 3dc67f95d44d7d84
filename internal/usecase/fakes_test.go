package usecase

import (
	"sync"
	"testing"
	"time"

	"sayboard/internal/domain"
)

// waitFor polls until the condition holds; host notifications are consumed on
// a controller goroutine, so observable effects are asynchronous.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

type fakeRecognizer struct {
	mu sync.Mutex

	events chan domain.RecognitionEvent

	configs      []domain.RecognitionConfig
	startCalls   int
	stopCalls    int
	configureErr error
	startErr     error
	stopErr      error
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{events: make(chan domain.RecognitionEvent, 16)}
}

func (f *fakeRecognizer) Configure(cfg domain.RecognitionConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.configureErr != nil {
		return f.configureErr
	}
	f.configs = append(f.configs, cfg)
	return nil
}

func (f *fakeRecognizer) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.startCalls++
	return nil
}

func (f *fakeRecognizer) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopErr != nil {
		return f.stopErr
	}
	f.stopCalls++
	return nil
}

func (f *fakeRecognizer) Events() <-chan domain.RecognitionEvent { return f.events }

func (f *fakeRecognizer) deliver(event domain.RecognitionEvent) { f.events <- event }

func (f *fakeRecognizer) counts() (starts int, stops int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startCalls, f.stopCalls
}

func (f *fakeRecognizer) lastConfig() domain.RecognitionConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.configs) == 0 {
		return domain.RecognitionConfig{}
	}
	return f.configs[len(f.configs)-1]
}

type fakeSynthesizer struct {
	mu sync.Mutex

	events chan domain.SpeechEvent

	voices    []domain.Voice
	voicesErr error

	jobs        []domain.UtteranceJob
	speakErr    error
	pauseCalls  int
	resumeCalls int
	cancelCalls int
}

func newFakeSynthesizer() *fakeSynthesizer {
	return &fakeSynthesizer{events: make(chan domain.SpeechEvent, 16)}
}

func (f *fakeSynthesizer) Voices() ([]domain.Voice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.voicesErr != nil {
		return nil, f.voicesErr
	}
	return append([]domain.Voice(nil), f.voices...), nil
}

func (f *fakeSynthesizer) Speak(job domain.UtteranceJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.speakErr != nil {
		return f.speakErr
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeSynthesizer) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauseCalls++
	return nil
}

func (f *fakeSynthesizer) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumeCalls++
	return nil
}

func (f *fakeSynthesizer) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalls++
	return nil
}

func (f *fakeSynthesizer) Events() <-chan domain.SpeechEvent { return f.events }

func (f *fakeSynthesizer) deliver(event domain.SpeechEvent) { f.events <- event }

func (f *fakeSynthesizer) snapshotJobs() []domain.UtteranceJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.UtteranceJob(nil), f.jobs...)
}

func (f *fakeSynthesizer) counts() (pauses int, resumes int, cancels int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pauseCalls, f.resumeCalls, f.cancelCalls
}

type fakeEventSink struct {
	mu sync.Mutex

	listenStates []stateEvent
	speakStates  []stateEvent
	transcripts  []transcriptEvent
	voiceLists   [][]domain.Voice
	errors       []errEvent
}

type stateEvent struct {
	state  string
	reason domain.StateReason
}

type transcriptEvent struct {
	finalized string
	interim   string
}

type errEvent struct {
	code   domain.ErrorCode
	detail string
}

func (f *fakeEventSink) ListenStateChanged(state domain.ListenState, reason domain.StateReason) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listenStates = append(f.listenStates, stateEvent{state: string(state), reason: reason})
}

func (f *fakeEventSink) TranscriptChanged(finalized string, interim string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transcripts = append(f.transcripts, transcriptEvent{finalized: finalized, interim: interim})
}

func (f *fakeEventSink) SpeakStateChanged(state domain.SpeakState, reason domain.StateReason) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.speakStates = append(f.speakStates, stateEvent{state: string(state), reason: reason})
}

func (f *fakeEventSink) VoicesChanged(voices []domain.Voice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voiceLists = append(f.voiceLists, append([]domain.Voice(nil), voices...))
}

func (f *fakeEventSink) SessionError(code domain.ErrorCode, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, errEvent{code: code, detail: detail})
}

func (f *fakeEventSink) snapshotListenStates() []stateEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]stateEvent(nil), f.listenStates...)
}

func (f *fakeEventSink) snapshotSpeakStates() []stateEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]stateEvent(nil), f.speakStates...)
}

func (f *fakeEventSink) snapshotTranscripts() []transcriptEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]transcriptEvent(nil), f.transcripts...)
}

func (f *fakeEventSink) snapshotVoiceLists() [][]domain.Voice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]domain.Voice(nil), f.voiceLists...)
}

func (f *fakeEventSink) snapshotErrors() []errEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]errEvent(nil), f.errors...)
}
