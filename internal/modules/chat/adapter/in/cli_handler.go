package in

import (
	"context"

	"dochub/internal/modules/chat/dto"
	chatin "dochub/internal/modules/chat/port/in"
)

type CLIHandler struct {
	usecase chatin.Usecase
}

func NewCLIHandler(usecase chatin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) CreateChat(ctx context.Context, name string) (dto.ChatOutput, error) {
	return h.usecase.CreateChat(ctx, name)
}

func (h CLIHandler) ListChats(ctx context.Context) ([]dto.ChatOutput, error) {
	return h.usecase.ListChats(ctx)
}

func (h CLIHandler) SendMessage(ctx context.Context, chatID, content string) (dto.SendMessageOutput, error) {
	return h.usecase.SendMessage(ctx, dto.SendMessageInput{ChatID: chatID, Content: content})
}

func (h CLIHandler) ListMessages(ctx context.Context, chatID string) ([]dto.MessageOutput, error) {
	return h.usecase.ListMessages(ctx, chatID)
}

func (h CLIHandler) DeleteChat(ctx context.Context, id string) error {
	return h.usecase.DeleteChat(ctx, id)
}

func (h CLIHandler) RenameChat(ctx context.Context, id, name string) (dto.ChatOutput, error) {
	return h.usecase.RenameChat(ctx, id, name)
}
