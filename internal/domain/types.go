package domain

// ListenState models the recognition session lifecycle.
type ListenState string

const (
	ListenStateIdle      ListenState = "idle"
	ListenStateListening ListenState = "listening"
)

// SpeakState models the speech output lifecycle. Ended accepts a new
// utterance exactly like Idle; it only records that playback finished.
type SpeakState string

const (
	SpeakStateIdle     SpeakState = "idle"
	SpeakStateSpeaking SpeakState = "speaking"
	SpeakStatePaused   SpeakState = "paused"
	SpeakStateEnded    SpeakState = "ended"
)

// StateReason provides a structured reason for state transitions.
type StateReason string

const (
	ReasonReady             StateReason = "ready"
	ReasonListeningStarted  StateReason = "listening_started"
	ReasonListeningStopping StateReason = "listening_stopping"
	ReasonListeningEnded    StateReason = "listening_ended"
	ReasonTranscriptCleared StateReason = "transcript_cleared"
	ReasonSpeechStarted     StateReason = "speech_started"
	ReasonSpeechPaused      StateReason = "speech_paused"
	ReasonSpeechResumed     StateReason = "speech_resumed"
	ReasonSpeechEnded       StateReason = "speech_ended"
	ReasonSpeechCancelled   StateReason = "speech_cancelled"
	ReasonSpeechInterrupted StateReason = "speech_interrupted"
	ReasonSpeechFailed      StateReason = "speech_failed"
	ReasonPageHidden        StateReason = "page_hidden"
)

// ErrorCode identifies backend errors surfaced to the UI.
type ErrorCode string

const (
	ErrorCodeStartup          ErrorCode = "startup"
	ErrorCodeUnsupported      ErrorCode = "unsupported"
	ErrorCodeEmptyInput       ErrorCode = "empty_input"
	ErrorCodePermissionDenied ErrorCode = "permission_denied"
	ErrorCodeNoMicrophone     ErrorCode = "no_microphone"
	ErrorCodeNoSpeech         ErrorCode = "no_speech"
	ErrorCodeRecognition      ErrorCode = "recognition"
	ErrorCodeSynthesis        ErrorCode = "synthesis"
	ErrorCodeExport           ErrorCode = "export"
	ErrorCodeClipboard        ErrorCode = "clipboard"
)

// RecognitionConfig is the recognizer configuration applied to a session.
type RecognitionConfig struct {
	Language       string `json:"language"`
	Continuous     bool   `json:"continuous"`
	InterimResults bool   `json:"interimResults"`
}

// RecognitionResult is one result inside a host result batch.
type RecognitionResult struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"isFinal"`
}

// RecognitionEventKind identifies a host recognizer notification.
type RecognitionEventKind string

const (
	RecognitionStarted RecognitionEventKind = "started"
	RecognitionResults RecognitionEventKind = "results"
	RecognitionFailed  RecognitionEventKind = "failed"
	RecognitionEnded   RecognitionEventKind = "ended"
)

// RecognitionEvent is an asynchronous notification from the recognizer
// capability. Results carries the batch starting at the host's result index;
// Code carries the raw host error code for failed notifications.
type RecognitionEvent struct {
	Kind    RecognitionEventKind `json:"kind"`
	Index   int                  `json:"index"`
	Results []RecognitionResult  `json:"results"`
	Code    string               `json:"code"`
}

// Voice describes one synthesis voice offered by the host.
type Voice struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Lang    string `json:"lang"`
	Default bool   `json:"default"`
}

// UtteranceRequest is a user-submitted text-to-speech job. VoiceID and Lang
// may be empty; rate, pitch and volume are in the host synthesis ranges.
type UtteranceRequest struct {
	Text    string  `json:"text"`
	VoiceID string  `json:"voiceId"`
	Lang    string  `json:"lang"`
	Rate    float64 `json:"rate"`
	Pitch   float64 `json:"pitch"`
	Volume  float64 `json:"volume"`
}

// UtteranceJob is an UtteranceRequest bound to an identity at submission.
// Host notifications carry the identity back so stale notifications from a
// superseded job can be discarded.
type UtteranceJob struct {
	ID      string  `json:"id"`
	Text    string  `json:"text"`
	VoiceID string  `json:"voiceId"`
	Lang    string  `json:"lang"`
	Rate    float64 `json:"rate"`
	Pitch   float64 `json:"pitch"`
	Volume  float64 `json:"volume"`
}

// SpeechEventKind identifies a host synthesizer notification.
type SpeechEventKind string

const (
	SpeechStarted       SpeechEventKind = "started"
	SpeechPaused        SpeechEventKind = "paused"
	SpeechResumed       SpeechEventKind = "resumed"
	SpeechEnded         SpeechEventKind = "ended"
	SpeechFailed        SpeechEventKind = "failed"
	SpeechVoicesChanged SpeechEventKind = "voiceschanged"
)

// SpeechEvent is an asynchronous notification from the synthesizer
// capability. UtteranceID is empty for voiceschanged notifications.
type SpeechEvent struct {
	Kind        SpeechEventKind `json:"kind"`
	UtteranceID string          `json:"utteranceId"`
	Code        string          `json:"code"`
}

// Capabilities reports which host speech capabilities the page detected.
type Capabilities struct {
	Recognition bool `json:"recognition"`
	Synthesis   bool `json:"synthesis"`
}

// Status summarizes the current backend status for the UI.
type Status struct {
	Listen     ListenState `json:"listen"`
	Speak      SpeakState  `json:"speak"`
	Transcript string      `json:"transcript"`
	Voices     int         `json:"voices"`
	Message    string      `json:"message,omitempty"`
}
