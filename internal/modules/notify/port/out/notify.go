package out

import (
	"context"

	"dochub/internal/modules/notify/domain"
)

// Listener holds one connection to the notify channel and delivers
// decoded events until the connection drops or ctx is cancelled.
// A clean ctx cancellation returns ctx.Err(); anything else means the
// connection failed and the caller may reconnect.
type Listener interface {
	Listen(ctx context.Context, onEvent func(domain.DocumentEvent)) error
}
