package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/confsync/confsync/internal/common"
)

func (a *App) star(ctx context.Context, id string) {
	if err := a.schedule.StarSession(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No such session:", id)
			return
		}
		log.Println(err.Error())
		return
	}
	count, err := a.schedule.StarredCount(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Starred %s (%d starred)\n", id, count)
}

func (a *App) unstar(ctx context.Context, id string) {
	if err := a.schedule.UnstarSession(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No such session:", id)
			return
		}
		log.Println(err.Error())
		return
	}
	count, err := a.schedule.StarredCount(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Unstarred %s (%d starred)\n", id, count)
}
