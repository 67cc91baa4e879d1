package session

import (
	"sync"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

// PlaceholderText is the provisional entry shown while a reply is pending.
const PlaceholderText = "generating response..."

// Handle identifies the placeholder a workflow expects to still be at the
// tail when it resolves.
type Handle string

// Transcript is the ordered chat log and the single source of truth the UI
// renders. Append-only, except that a trailing placeholder is replaced in
// place by exactly one final message. Workflow commands run on bubbletea's
// goroutines, so all access goes through the lock; the UI only reads
// snapshots.
type Transcript struct {
	mu      sync.Mutex
	entries []model.Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a message at the end.
func (t *Transcript) Append(msg model.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, msg)
}

// AppendPlaceholder adds a provisional assistant entry and returns the handle
// ResolvePlaceholder needs to replace it.
func (t *Transcript) AppendPlaceholder(text string) Handle {
	msg := model.NewMessage(model.SenderAssistant, text)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, msg)
	return Handle(msg.ID)
}

// ResolvePlaceholder replaces the tail entry identified by handle with the
// final message. No-op when the tail has changed identity since the
// placeholder was appended; single-flight makes that unreachable in
// practice, but a stale resolve must never clobber someone else's tail.
func (t *Transcript) ResolvePlaceholder(h Handle, final model.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.entries) == 0 {
		return
	}
	if t.entries[len(t.entries)-1].ID != string(h) {
		return
	}
	t.entries[len(t.entries)-1] = final
}

// Concat appends a result without resolving any placeholder. Used by flows
// whose output is additive rather than a replacement for a wait entry.
func (t *Transcript) Concat(msg model.Message) {
	t.Append(msg)
}

// Clear empties the transcript.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}

// Messages returns a snapshot copy for rendering.
func (t *Transcript) Messages() []model.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Message, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
