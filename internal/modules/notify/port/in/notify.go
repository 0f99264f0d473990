package in

import "context"

type Usecase interface {
	// Watch blocks on the notify channel, folding document events
	// into the local file mirror, reconnecting on connection loss.
	// It returns when ctx is cancelled.
	Watch(ctx context.Context) error
}
