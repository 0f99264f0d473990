package out

import (
	"context"

	"dochub/internal/modules/chat/domain"
)

// ChatAPI is the backend's conversation surface. The client holds no
// chat state; every read goes to the backend.
type ChatAPI interface {
	CreateChat(ctx context.Context, name string) (domain.Chat, error)
	ListChats(ctx context.Context) ([]domain.Chat, error)
	RenameChat(ctx context.Context, id, name string) (domain.Chat, error)
	DeleteChat(ctx context.Context, id string) error
	SendMessage(ctx context.Context, chatID, content string) (domain.Message, error)
	ListMessages(ctx context.Context, chatID string) ([]domain.Message, error)
}
