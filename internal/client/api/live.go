package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/confsync/confsync/internal/common"
	"github.com/confsync/confsync/internal/logging"
)

// LiveFeed is the push-based alternative to polling: a websocket stream
// where every message carries the full keyed map of session records. Each
// snapshot goes through the same mapper and reconciliation path as a poll
// fetch.
type LiveFeed struct {
	url    string
	dialer *websocket.Dialer
	log    logging.Logger
}

func NewLiveFeed(url string, log logging.Logger) *LiveFeed {
	return &LiveFeed{
		url:    url,
		dialer: websocket.DefaultDialer,
		log:    log,
	}
}

// Run connects and delivers every decoded snapshot to onSnapshot until the
// context is cancelled or the connection drops. A malformed frame is logged
// and skipped; the feed stays up. A snapshot-handler error is logged and the
// feed continues, so one failed reconcile does not end the stream.
func (f *LiveFeed) Run(ctx context.Context, onSnapshot func(ctx context.Context, v any) error) error {
	conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("%w: dialing %s: %v", common.ErrTransport, f.url, err)
	}
	defer conn.Close()

	// unblock the read loop when the context ends
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	f.log.Info(ctx, "live feed connected", "url", f.url)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: reading frame: %v", common.ErrTransport, err)
		}

		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			f.log.Warn(ctx, "skipping malformed live frame", "error", err)
			continue
		}

		if err := onSnapshot(ctx, v); err != nil {
			f.log.Error(ctx, "live snapshot not applied", "error", err)
		}
	}
}
