package usecase

import (
	"context"

	notifyin "dochub/internal/modules/notify/port/in"
	"dochub/internal/modules/notify/service"
)

type Interactor struct {
	watcher *service.Watcher
}

func NewInteractor(watcher *service.Watcher) notifyin.Usecase {
	return &Interactor{watcher: watcher}
}

func (i *Interactor) Watch(ctx context.Context) error {
	return i.watcher.Run(ctx)
}
