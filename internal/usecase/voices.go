package usecase

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"sayboard/internal/domain"
	"sayboard/internal/ports"
)

// VoiceDirectory holds a sorted snapshot of the host synthesis voices.
// Refresh rebuilds the snapshot wholesale; readers always observe either the
// previous or the new list, never a partially-updated one.
type VoiceDirectory struct {
	synth ports.Synthesizer

	mu       sync.RWMutex
	snapshot []domain.Voice
}

func NewVoiceDirectory(synth ports.Synthesizer) *VoiceDirectory {
	return &VoiceDirectory{synth: synth}
}

// Refresh queries the host for the current voice list and atomically replaces
// the snapshot. An empty host list yields an empty directory; hosts commonly
// populate their voice lists asynchronously after startup.
func (d *VoiceDirectory) Refresh() ([]domain.Voice, error) {
	if d.synth == nil {
		return nil, ErrUnsupported
	}

	voices, err := d.synth.Voices()
	if err != nil {
		return nil, fmt.Errorf("failed to list host voices: %w", err)
	}

	sorted := make([]domain.Voice, len(voices))
	copy(sorted, voices)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Lang != sorted[j].Lang {
			return sorted[i].Lang < sorted[j].Lang
		}
		return sorted[i].Name < sorted[j].Name
	})

	d.mu.Lock()
	d.snapshot = sorted
	d.mu.Unlock()

	return d.Snapshot(), nil
}

// Snapshot returns a copy of the current voice list.
func (d *VoiceDirectory) Snapshot() []domain.Voice {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.Voice, len(d.snapshot))
	copy(out, d.snapshot)
	return out
}

// ByID looks up a voice by its stable identifier.
func (d *VoiceDirectory) ByID(id string) (domain.Voice, bool) {
	if strings.TrimSpace(id) == "" {
		return domain.Voice{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, voice := range d.snapshot {
		if voice.ID == id {
			return voice, true
		}
	}
	return domain.Voice{}, false
}

// ResolveDefaultFor returns the first voice whose language shares the primary
// subtag of languageTag, in snapshot order.
func (d *VoiceDirectory) ResolveDefaultFor(languageTag string) (domain.Voice, bool) {
	primary := primarySubtag(languageTag)
	if primary == "" {
		return domain.Voice{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, voice := range d.snapshot {
		if primarySubtag(voice.Lang) == primary {
			return voice, true
		}
	}
	return domain.Voice{}, false
}

func primarySubtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}
