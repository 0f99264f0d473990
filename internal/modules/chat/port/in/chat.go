package in

import (
	"context"

	"dochub/internal/modules/chat/dto"
)

type Usecase interface {
	CreateChat(ctx context.Context, name string) (dto.ChatOutput, error)
	ListChats(ctx context.Context) ([]dto.ChatOutput, error)
	RenameChat(ctx context.Context, id, name string) (dto.ChatOutput, error)
	DeleteChat(ctx context.Context, id string) error
	SendMessage(ctx context.Context, input dto.SendMessageInput) (dto.SendMessageOutput, error)
	ListMessages(ctx context.Context, chatID string) ([]dto.MessageOutput, error)
}
