package usecase

import (
	"context"

	"dochub/internal/modules/chat/domain"
	"dochub/internal/modules/chat/dto"
	chatin "dochub/internal/modules/chat/port/in"
	"dochub/internal/modules/chat/service"
)

type Interactor struct {
	svc *service.ChatService
}

func NewInteractor(svc *service.ChatService) chatin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CreateChat(ctx context.Context, name string) (dto.ChatOutput, error) {
	chat, err := i.svc.CreateChat(ctx, name)
	if err != nil {
		return dto.ChatOutput{}, err
	}
	return toChatOutput(chat), nil
}

func (i *Interactor) ListChats(ctx context.Context) ([]dto.ChatOutput, error) {
	chats, err := i.svc.ListChats(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChatOutput, 0, len(chats))
	for _, chat := range chats {
		out = append(out, toChatOutput(chat))
	}
	return out, nil
}

func (i *Interactor) RenameChat(ctx context.Context, id, name string) (dto.ChatOutput, error) {
	chat, err := i.svc.RenameChat(ctx, id, name)
	if err != nil {
		return dto.ChatOutput{}, err
	}
	return toChatOutput(chat), nil
}

func (i *Interactor) DeleteChat(ctx context.Context, id string) error {
	return i.svc.DeleteChat(ctx, id)
}

func (i *Interactor) SendMessage(ctx context.Context, input dto.SendMessageInput) (dto.SendMessageOutput, error) {
	reply, err := i.svc.SendMessage(ctx, input.ChatID, input.Content)
	if err != nil {
		return dto.SendMessageOutput{}, err
	}
	return dto.SendMessageOutput{Reply: toMessageOutput(reply)}, nil
}

func (i *Interactor) ListMessages(ctx context.Context, chatID string) ([]dto.MessageOutput, error) {
	messages, err := i.svc.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageOutput, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageOutput(m))
	}
	return out, nil
}

func toChatOutput(c domain.Chat) dto.ChatOutput {
	return dto.ChatOutput{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toMessageOutput(m domain.Message) dto.MessageOutput {
	return dto.MessageOutput{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		Sources:   m.Sources,
		Timestamp: m.Timestamp,
	}
}
