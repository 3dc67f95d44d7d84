package usecase

import (
	"strings"
	"sync"

	"sayboard/internal/domain"
)

// transcriptBuffer accumulates finalized recognition text plus at most one
// pending interim string. Finalized text is append-only; the interim string
// is replaced wholesale on every result batch and never persisted until the
// host marks a result final.
type transcriptBuffer struct {
	mu        sync.Mutex
	finalized string
	interim   string
}

func newTranscriptBuffer() *transcriptBuffer {
	return &transcriptBuffer{}
}

// Consume merges one host result batch. Final results append in delivery
// order; non-final results replace the interim string as their in-order
// concatenation, so a batch with only finals clears it.
func (b *transcriptBuffer) Consume(results []domain.RecognitionResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var interim strings.Builder
	for _, result := range results {
		if result.IsFinal {
			b.appendLocked(result.Text)
			continue
		}
		interim.WriteString(result.Text)
	}
	b.interim = interim.String()
}

func (b *transcriptBuffer) appendLocked(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if b.finalized != "" && !strings.HasSuffix(b.finalized, "\n") {
		b.finalized += " "
	}
	b.finalized += text
}

func (b *transcriptBuffer) Final() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.finalized
}

func (b *transcriptBuffer) Interim() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.interim
}

// Display is the externally observed transcript: the finalized text, with the
// pending interim appended on its own marked line when present.
func (b *transcriptBuffer) Display() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if strings.TrimSpace(b.interim) == "" {
		return b.finalized
	}
	return b.finalized + "\n[…] " + b.interim
}

func (b *transcriptBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finalized = ""
	b.interim = ""
}
