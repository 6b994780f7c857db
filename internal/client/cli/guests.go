package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/confsync/confsync/internal/client/models"
)

func (a *App) guests(ctx context.Context, category string) {
	var (
		list []models.Guest
		err  error
	)
	if category == "" {
		list, err = a.repos.Guests.GetAll(ctx)
	} else {
		list, err = a.repos.Guests.GetByCategory(ctx, category)
	}
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(list) == 0 {
		fmt.Println("No guests cached. Run 'sync' first.")
		return
	}

	current := ""
	for _, g := range list {
		if g.Category != current {
			current = g.Category
			fmt.Println(current)
		}
		marker := " "
		if g.GuestOfHonor {
			marker = "*"
		}
		fmt.Printf("  [%s]%s %s\n", g.ID, marker, g.FullName())
	}
}
