package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/confsync/confsync/internal/client/api"
)

// live follows the websocket feed, applying each snapshot to the cache,
// until the connection drops or the user interrupts with Ctrl-C.
func (a *App) live(ctx context.Context) {
	if a.config.LiveURL == "" {
		fmt.Println("No live feed configured (set CONFSYNC_LIVE_URL).")
		return
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Following live feed, Ctrl-C to stop...")

	feed := api.NewLiveFeed(a.config.LiveURL, a.logger)
	err := feed.Run(ctx, a.sync.ApplyLiveSnapshot)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err.Error())
	}
}
