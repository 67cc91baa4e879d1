package session

import (
	"context"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/handoff"
	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

// Gateway is the remote backend as the sequencer sees it. Implemented by
// gateway.Client; tests substitute a fake with call counters.
type Gateway interface {
	FetchHistory(ctx context.Context) ([]model.HistoryTurn, error)
	SendChatQuery(ctx context.Context, query string) (string, error)
	ResetHistory(ctx context.Context) error
	DetectEmptySlots(ctx context.Context, image model.Attachment) ([]model.FreeSlotDay, error)
	RecommendFromImage(ctx context.Context, image model.Attachment) ([]model.ImageCourse, error)
	RecommendFromManualSlots(ctx context.Context, slots []model.TimeSlot) ([]model.ManualCourse, error)
}

// HandoffStore is the read-once slot another view leaves recommendations in.
type HandoffStore interface {
	Take() (*handoff.Payload, error)
}
