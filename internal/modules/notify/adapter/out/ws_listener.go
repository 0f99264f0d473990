package out

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dochub/internal/modules/notify/domain"
	notifyout "dochub/internal/modules/notify/port/out"

	"github.com/gorilla/websocket"
)

// WSListener consumes document_notify frames over a websocket. Frames
// carry an event envelope; anything that is not a document_notify
// event is ignored.
type WSListener struct {
	url   string
	token string
}

func NewWSListener(url, token string) notifyout.Listener {
	return &WSListener{url: url, token: token}
}

type eventFrame struct {
	Event string       `json:"event"`
	Data  framePayload `json:"data"`
}

type framePayload struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	CategoryID   string `json:"category_id"`
	FileSize     int64  `json:"file_size"`
	CurrentStage string `json:"current_stage"`
	CreatedAt    string `json:"created_at"`
}

func (p framePayload) toDomain() domain.DocumentEvent {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)
	return domain.DocumentEvent{
		FileID:     p.ID,
		Filename:   p.Filename,
		CategoryID: p.CategoryID,
		SizeBytes:  p.FileSize,
		Stage:      p.CurrentStage,
		CreatedAt:  createdAt,
	}
}

func (l *WSListener) Listen(ctx context.Context, onEvent func(domain.DocumentEvent)) error {
	if l.url == "" {
		return fmt.Errorf("socket url is not configured")
	}
	if onEvent == nil {
		onEvent = func(domain.DocumentEvent) {}
	}
	header := http.Header{}
	if l.token != "" {
		header.Set("Authorization", "Bearer "+l.token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.url, header)
	if err != nil {
		return fmt.Errorf("dial %s: %w", l.url, err)
	}
	defer func() { _ = conn.Close() }()

	// unblock ReadJSON when ctx is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var frame eventFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read notify frame: %w", err)
		}
		if frame.Event != "document_notify" {
			continue
		}
		onEvent(frame.Data.toDomain())
	}
}
