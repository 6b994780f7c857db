package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) syncAll(ctx context.Context) {
	change, err := a.sync.SyncSessions(ctx)
	if err != nil {
		log.Println(err.Error())
	} else {
		fmt.Printf("sessions: %d inserted, %d updated, %d deleted\n",
			len(change.Inserted), len(change.Updated), len(change.Deleted))
	}

	change, err = a.sync.SyncGuests(ctx)
	if err != nil {
		log.Println(err.Error())
	} else {
		fmt.Printf("guests: %d inserted, %d updated, %d deleted\n",
			len(change.Inserted), len(change.Updated), len(change.Deleted))
	}
}
