package session

import (
	"errors"
	"sync"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

// ErrBusy is returned when a workflow is started while another is still in
// flight. The UI also disables the triggering controls, so hitting this is
// the exception path, not the normal one.
var ErrBusy = errors.New("an operation is already in flight")

// Session holds the per-run chat state: the transcript, the pending flag,
// the staged image, and the manually selected time slots. All mutation is
// funneled through the Sequencer.
type Session struct {
	Transcript *Transcript

	mu      sync.Mutex
	pending bool
	staged  *model.Attachment
	slots   []model.TimeSlot
}

func New() *Session {
	return &Session{Transcript: NewTranscript()}
}

// Begin marks an operation in flight. Check-and-set under the lock so two
// commands racing on bubbletea goroutines cannot both pass.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return ErrBusy
	}
	s.pending = true
	return nil
}

// End clears the pending flag. Deferred on every workflow path, including
// errors.
func (s *Session) End() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// StageImage holds an image until the user confirms the upload.
func (s *Session) StageImage(att model.Attachment) {
	s.mu.Lock()
	s.staged = &att
	s.mu.Unlock()
}

// TakeStagedImage consumes the staged image. The attachment is cleared the
// moment the workflow starts, not when it settles.
func (s *Session) TakeStagedImage() (model.Attachment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged == nil {
		return model.Attachment{}, false
	}
	att := *s.staged
	s.staged = nil
	return att, true
}

func (s *Session) HasStagedImage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staged != nil
}

func (s *Session) SetSlots(slots []model.TimeSlot) {
	s.mu.Lock()
	s.slots = append([]model.TimeSlot(nil), slots...)
	s.mu.Unlock()
}

func (s *Session) Slots() []model.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TimeSlot(nil), s.slots...)
}
