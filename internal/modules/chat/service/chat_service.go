package service

import (
	"context"
	"fmt"

	"dochub/internal/modules/chat/domain"
	chatout "dochub/internal/modules/chat/port/out"
)

// ChatService fronts the backend's conversation API. The service only
// validates input locally; the RAG engine behind the backend owns all
// conversation state.
type ChatService struct {
	api chatout.ChatAPI
}

func NewChatService(api chatout.ChatAPI) *ChatService {
	return &ChatService{api: api}
}

func (s *ChatService) CreateChat(ctx context.Context, name string) (domain.Chat, error) {
	if err := domain.ValidateChatName(name); err != nil {
		return domain.Chat{}, err
	}
	return s.api.CreateChat(ctx, name)
}

func (s *ChatService) ListChats(ctx context.Context) ([]domain.Chat, error) {
	return s.api.ListChats(ctx)
}

func (s *ChatService) RenameChat(ctx context.Context, id, name string) (domain.Chat, error) {
	if id == "" {
		return domain.Chat{}, fmt.Errorf("chat id is required")
	}
	if err := domain.ValidateChatName(name); err != nil {
		return domain.Chat{}, err
	}
	return s.api.RenameChat(ctx, id, name)
}

func (s *ChatService) DeleteChat(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("chat id is required")
	}
	return s.api.DeleteChat(ctx, id)
}

func (s *ChatService) SendMessage(ctx context.Context, chatID, content string) (domain.Message, error) {
	if chatID == "" {
		return domain.Message{}, fmt.Errorf("chat id is required")
	}
	if err := domain.ValidateMessageContent(content); err != nil {
		return domain.Message{}, err
	}
	return s.api.SendMessage(ctx, chatID, content)
}

func (s *ChatService) ListMessages(ctx context.Context, chatID string) ([]domain.Message, error) {
	if chatID == "" {
		return nil, fmt.Errorf("chat id is required")
	}
	return s.api.ListMessages(ctx, chatID)
}
