package out_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dochub/internal/modules/ingest/adapter/out"
	"dochub/internal/modules/ingest/domain"
	ingestout "dochub/internal/modules/ingest/port/out"
	"dochub/internal/platform/rest"
)

func TestPollerTerminatesOnCompletion(t *testing.T) {
	t.Parallel()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/organization-file/upload-status/job-9" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		n := atomic.AddInt32(&calls, 1)
		switch n {
		case 1:
			fmt.Fprint(w, `{"progress": 30, "completed": 1, "total": 3, "status": "processing"}`)
		default:
			fmt.Fprint(w, `{"progress": 100, "completed": 3, "total": 3, "status": "completed"}`)
		}
	}))
	defer srv.Close()

	poller := out.NewHTTPStatusPoller(rest.New(srv.URL, "", 5*time.Second), time.Millisecond)
	var updates []ingestout.PollUpdate
	err := poller.Poll(context.Background(), "job-9", func(u ingestout.PollUpdate) {
		updates = append(updates, u)
	})
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].ProgressPct != 30 || updates[1].ProgressPct != 100 {
		t.Fatalf("unexpected updates: %+v", updates)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("poller must stop after completion, issued %d requests", got)
	}
}

func TestPollerFirstErrorIsTerminal(t *testing.T) {
	t.Parallel()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"message": "upstream unavailable"}`)
	}))
	defer srv.Close()

	poller := out.NewHTTPStatusPoller(rest.New(srv.URL, "", 5*time.Second), time.Millisecond)
	err := poller.Poll(context.Background(), "job-9", nil)
	var pollErr *domain.PollError
	if !errors.As(err, &pollErr) {
		t.Fatalf("expected PollError, got %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("first error must stop polling, issued %d requests", got)
	}
}

func TestPollerFailedStatusIsTerminal(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"progress": 60, "completed": 2, "total": 3, "status": "failed"}`)
	}))
	defer srv.Close()

	poller := out.NewHTTPStatusPoller(rest.New(srv.URL, "", 5*time.Second), time.Millisecond)
	got := 0
	err := poller.Poll(context.Background(), "job-9", func(ingestout.PollUpdate) { got++ })
	var pollErr *domain.PollError
	if !errors.As(err, &pollErr) {
		t.Fatalf("expected PollError for failed status, got %v", err)
	}
	if got != 1 {
		t.Fatalf("the failing response still carries a progress update, got %d", got)
	}
}

func TestPollerHonorsCancellation(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"progress": 10, "status": "processing"}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	poller := out.NewHTTPStatusPoller(rest.New(srv.URL, "", 5*time.Second), time.Millisecond)
	err := poller.Poll(ctx, "job-9", func(ingestout.PollUpdate) { cancel() })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
