package out_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dochub/internal/modules/notify/adapter/out"
	"dochub/internal/modules/notify/domain"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestListenerDeliversDocumentEvents(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("missing bearer token, got %q", got)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer func() { _ = conn.Close() }()
		frames := []string{
			`{"event": "heartbeat"}`,
			`{"event": "document_notify", "data": {"id": "f1", "filename": "report.pdf", "file_size": 2048, "current_stage": "processing"}}`,
			`{"event": "document_notify", "data": {"id": "f1", "current_stage": "completed"}}`,
		}
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// closing ends the Listen loop with a read error
	}))
	defer srv.Close()

	listener := out.NewWSListener(wsURL(srv), "tok")
	var events []domain.DocumentEvent
	err := listener.Listen(context.Background(), func(e domain.DocumentEvent) {
		events = append(events, e)
	})
	if err == nil {
		t.Fatal("expected a connection error once the server closed")
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 document events, got %d", len(events))
	}
	if events[0].FileID != "f1" || events[0].Stage != "processing" || events[0].SizeBytes != 2048 {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Stage != "completed" {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}

func TestListenerStopsOnCancellation(t *testing.T) {
	t.Parallel()
	connected := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		close(connected)
		// hold the connection open without sending anything
		_, _, _ = conn.ReadMessage()
		_ = conn.Close()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- out.NewWSListener(wsURL(srv), "").Listen(ctx, nil)
	}()

	<-connected
	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after cancellation")
	}
}
