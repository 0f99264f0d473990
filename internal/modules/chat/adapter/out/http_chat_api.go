package out

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dochub/internal/modules/chat/domain"
	chatout "dochub/internal/modules/chat/port/out"
	"dochub/internal/platform/rest"
)

// HTTPChatAPI talks to the backend's /chat endpoints.
type HTTPChatAPI struct {
	api *rest.Client
}

func NewHTTPChatAPI(api *rest.Client) chatout.ChatAPI {
	return &HTTPChatAPI{api: api}
}

type chatPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func (p chatPayload) toDomain() domain.Chat {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)
	return domain.Chat{ID: p.ID, Name: p.Name, CreatedAt: createdAt}
}

// messagePayload tolerates structured content: the assistant sometimes
// answers with a JSON object instead of plain text.
type messagePayload struct {
	ID        string          `json:"id"`
	Role      string          `json:"role"`
	Content   json.RawMessage `json:"content"`
	Sources   []string        `json:"sources"`
	Timestamp string          `json:"timestamp"`
}

func (p messagePayload) toDomain() domain.Message {
	timestamp, _ := time.Parse(time.RFC3339, p.Timestamp)
	return domain.Message{
		ID:        p.ID,
		Role:      domain.Role(p.Role),
		Content:   decodeContent(p.Content),
		Sources:   p.Sources,
		Timestamp: timestamp,
	}
}

func decodeContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}

func (a *HTTPChatAPI) CreateChat(ctx context.Context, name string) (domain.Chat, error) {
	payload := struct {
		Data chatPayload `json:"data"`
	}{}
	if err := a.api.PostJSON(ctx, "/chat/user", map[string]string{"name": name}, &payload); err != nil {
		return domain.Chat{}, fmt.Errorf("create chat: %w", err)
	}
	return payload.Data.toDomain(), nil
}

func (a *HTTPChatAPI) ListChats(ctx context.Context) ([]domain.Chat, error) {
	payload := struct {
		Data []chatPayload `json:"data"`
	}{}
	if err := a.api.GetJSON(ctx, "/chat/user", &payload); err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	chats := make([]domain.Chat, 0, len(payload.Data))
	for _, p := range payload.Data {
		chats = append(chats, p.toDomain())
	}
	return chats, nil
}

func (a *HTTPChatAPI) RenameChat(ctx context.Context, id, name string) (domain.Chat, error) {
	payload := struct {
		Data chatPayload `json:"data"`
	}{}
	if err := a.api.PutJSON(ctx, "/chat/"+id+"/user", map[string]string{"name": name}, &payload); err != nil {
		return domain.Chat{}, fmt.Errorf("rename chat %s: %w", id, err)
	}
	renamed := payload.Data.toDomain()
	if renamed.ID == "" {
		renamed = domain.Chat{ID: id, Name: name}
	}
	return renamed, nil
}

func (a *HTTPChatAPI) DeleteChat(ctx context.Context, id string) error {
	if err := a.api.Delete(ctx, "/chat/"+id+"/user"); err != nil {
		return fmt.Errorf("delete chat %s: %w", id, err)
	}
	return nil
}

func (a *HTTPChatAPI) SendMessage(ctx context.Context, chatID, content string) (domain.Message, error) {
	payload := struct {
		Data messagePayload `json:"data"`
	}{}
	body := map[string]string{"content": content}
	if err := a.api.PostJSON(ctx, "/chat/"+chatID+"/user/message", body, &payload); err != nil {
		return domain.Message{}, fmt.Errorf("send message: %w", err)
	}
	return payload.Data.toDomain(), nil
}

func (a *HTTPChatAPI) ListMessages(ctx context.Context, chatID string) ([]domain.Message, error) {
	payload := struct {
		Data []messagePayload `json:"data"`
	}{}
	if err := a.api.GetJSON(ctx, "/chat/"+chatID+"/user/messages", &payload); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	messages := make([]domain.Message, 0, len(payload.Data))
	for _, p := range payload.Data {
		messages = append(messages, p.toDomain())
	}
	return messages, nil
}
