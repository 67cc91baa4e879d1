package model

import "github.com/google/uuid"

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message represents a single chat transcript entry.
type Message struct {
	ID     string // stable identity, used as the placeholder handle
	Sender Sender
	Text   string // rendered message content, may span multiple lines
}

func NewMessage(sender Sender, text string) Message {
	return Message{
		ID:     uuid.NewString(),
		Sender: sender,
		Text:   text,
	}
}
