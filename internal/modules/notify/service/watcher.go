package service

import (
	"context"
	"errors"
	"time"

	librarydto "dochub/internal/modules/library/dto"
	libraryin "dochub/internal/modules/library/port/in"
	"dochub/internal/modules/notify/domain"
	notifyout "dochub/internal/modules/notify/port/out"

	"go.uber.org/zap"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Watcher keeps the file mirror current from the notify channel. It
// runs independently of any active upload job; a dropped connection is
// retried with exponential backoff until ctx is cancelled.
type Watcher struct {
	listener notifyout.Listener
	library  libraryin.Usecase
	logger   *zap.Logger
}

func NewWatcher(listener notifyout.Listener, library libraryin.Usecase, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{listener: listener, library: library, logger: logger}
}

func (w *Watcher) Run(ctx context.Context) error {
	backoff := initialBackoff
	for {
		err := w.listener.Listen(ctx, w.handle)
		if err == nil || errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return ctx.Err()
		}
		w.logger.Warn("notify connection lost, reconnecting",
			zap.Error(err),
			zap.Duration("backoff", backoff),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (w *Watcher) handle(event domain.DocumentEvent) {
	if err := event.Validate(); err != nil {
		w.logger.Debug("dropping malformed notify event", zap.Error(err))
		return
	}
	err := w.library.ApplyStatus(context.Background(), librarydto.StatusEventInput{
		FileID:     event.FileID,
		Filename:   event.Filename,
		CategoryID: event.CategoryID,
		SizeBytes:  event.SizeBytes,
		Stage:      event.Stage,
		CreatedAt:  event.CreatedAt,
	})
	if err != nil {
		w.logger.Warn("failed to apply document event",
			zap.String("file_id", event.FileID),
			zap.Error(err),
		)
		return
	}
	w.logger.Info("document update",
		zap.String("file_id", event.FileID),
		zap.String("stage", event.Stage),
	)
}
