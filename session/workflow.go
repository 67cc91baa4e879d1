package session

import (
	"context"
	"log"
	"strings"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

// Fixed user-facing strings. Each workflow converts gateway failures into
// one of these at its own boundary; nothing propagates past the sequencer.
const (
	msgServerError    = "server error"
	msgImageError     = "image processing error"
	msgRecommendError = "recommendation error"
	msgImageUploaded  = "image upload complete"
	msgManualDone     = "manual time selection complete"
	msgNoTimeSelected = "no time selected"
)

// Sequencer runs one user-triggered workflow at a time against the session.
// A workflow spans everything from the user action to the final transcript
// state, including multi-call flows like the image upload.
type Sequencer struct {
	sess    *Session
	gw      Gateway
	handoff HandoffStore // optional
}

func NewSequencer(sess *Session, gw Gateway, h HandoffStore) *Sequencer {
	return &Sequencer{sess: sess, gw: gw, handoff: h}
}

func (s *Sequencer) Session() *Session {
	return s.sess
}

// SendText runs the text-query workflow: user message, placeholder, one
// chat call, placeholder resolved with the answer or a fixed error line.
// Empty or whitespace-only input is a no-op.
func (s *Sequencer) SendText(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if err := s.sess.Begin(); err != nil {
		return err
	}
	defer s.sess.End()

	t := s.sess.Transcript
	t.Append(model.NewMessage(model.SenderUser, text))
	h := t.AppendPlaceholder(PlaceholderText)

	resp, err := s.gw.SendChatQuery(ctx, text)
	if err != nil {
		log.Printf("[chat] query failed: %v", err)
		t.ResolvePlaceholder(h, model.NewMessage(model.SenderAssistant, msgServerError))
		return nil
	}
	t.ResolvePlaceholder(h, model.NewMessage(model.SenderAssistant, resp))
	return nil
}

// UploadImage runs the image workflow: two chained calls behind a single
// placeholder. Slot detection must settle before the recommendation call is
// issued; if either fails the placeholder resolves to the image error line
// and the rest is abandoned.
func (s *Sequencer) UploadImage(ctx context.Context) error {
	if err := s.sess.Begin(); err != nil {
		return err
	}
	defer s.sess.End()

	img, ok := s.sess.TakeStagedImage()
	if !ok {
		return nil
	}

	t := s.sess.Transcript
	t.Append(model.NewMessage(model.SenderUser, msgImageUploaded))
	h := t.AppendPlaceholder(PlaceholderText)

	days, err := s.gw.DetectEmptySlots(ctx, img)
	if err != nil {
		log.Printf("[image] slot detection failed: %v", err)
		t.ResolvePlaceholder(h, model.NewMessage(model.SenderAssistant, msgImageError))
		return nil
	}

	courses, err := s.gw.RecommendFromImage(ctx, img)
	if err != nil {
		log.Printf("[image] recommendation failed: %v", err)
		t.ResolvePlaceholder(h, model.NewMessage(model.SenderAssistant, msgImageError))
		return nil
	}

	text := FormatFreeSlots(days) + "\n\n" + FormatImageCourses(courses)
	t.ResolvePlaceholder(h, model.NewMessage(model.SenderAssistant, text))
	return nil
}

// SubmitManualSlots runs the manual-time workflow. The result is additive:
// it is appended rather than replacing a wait entry. Zero selected slots
// short-circuits with a single bot message and no gateway call.
func (s *Sequencer) SubmitManualSlots(ctx context.Context) error {
	slots := s.sess.Slots()
	t := s.sess.Transcript
	if len(slots) == 0 {
		t.Concat(model.NewMessage(model.SenderAssistant, msgNoTimeSelected))
		return nil
	}

	if err := s.sess.Begin(); err != nil {
		return err
	}
	defer s.sess.End()

	t.Append(model.NewMessage(model.SenderUser, msgManualDone))

	courses, err := s.gw.RecommendFromManualSlots(ctx, slots)
	if err != nil {
		log.Printf("[manual] recommendation failed: %v", err)
		t.Concat(model.NewMessage(model.SenderAssistant, msgRecommendError))
		return nil
	}
	t.Concat(model.NewMessage(model.SenderAssistant, FormatManualCourses(courses)))
	return nil
}

// Reset clears the remote history and then the local transcript. A backend
// failure is logged and swallowed: a responsive local reset wins over
// backend confirmation.
func (s *Sequencer) Reset(ctx context.Context) error {
	if err := s.sess.Begin(); err != nil {
		return err
	}
	defer s.sess.End()

	if err := s.gw.ResetHistory(ctx); err != nil {
		log.Printf("[reset] backend reset failed: %v", err)
	}
	s.sess.Transcript.Clear()
	return nil
}

// Bootstrap hydrates the session at start: remote history first, then the
// cross-view handoff payload. The two steps are independent and both are
// non-fatal.
func (s *Sequencer) Bootstrap(ctx context.Context) {
	t := s.sess.Transcript

	turns, err := s.gw.FetchHistory(ctx)
	if err != nil {
		log.Printf("[bootstrap] could not load chat history: %v", err)
	} else {
		for _, turn := range turns {
			t.Append(model.NewMessage(model.SenderUser, turn.User))
			t.Append(model.NewMessage(model.SenderAssistant, turn.Bot))
		}
	}

	if s.handoff == nil {
		return
	}
	p, err := s.handoff.Take()
	if err != nil {
		log.Printf("[bootstrap] could not read handoff payload: %v", err)
		return
	}
	if p == nil {
		return
	}
	t.Concat(model.NewMessage(model.SenderAssistant, FormatHandoffCourses(p.Courses)))
}
