package dto

import "time"

type ChatOutput struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type MessageOutput struct {
	ID        string
	Role      string
	Content   string
	Sources   []string
	Timestamp time.Time
}

type SendMessageInput struct {
	ChatID  string
	Content string
}

// SendMessageOutput carries the assistant's reply to one user turn.
type SendMessageOutput struct {
	Reply MessageOutput
}
