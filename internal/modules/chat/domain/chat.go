package domain

import (
	"fmt"
	"strings"
	"time"
)

// Chat is one conversation thread owned by the backend.
type Chat struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Known() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one turn in a conversation. Sources lists the ingested
// documents the assistant cited, when the backend reports them.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Sources   []string
	Timestamp time.Time
}

func ValidateChatName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("chat name is required")
	}
	return nil
}

func ValidateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message content is required")
	}
	return nil
}
