package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/confsync/confsync/internal/client/models"
	"github.com/confsync/confsync/internal/client/services"
)

func (a *App) list(ctx context.Context) {
	sections := a.schedule.Sections()
	if len(sections) == 0 {
		fmt.Println("No sessions cached. Run 'sync' first.")
		return
	}

	for _, section := range sections {
		fmt.Println(sectionHeading(section, a.loc))
		for _, vm := range section.Items {
			fmt.Println("  " + formatViewModel(vm))
		}
	}
}

func (a *App) setFilter(query string) {
	a.schedule.SetFilter(query)
}

func (a *App) starred(ctx context.Context) {
	found := false
	for _, section := range a.schedule.Sections() {
		for _, vm := range section.Items {
			if vm.IsStarred {
				found = true
				fmt.Printf("%s  %s\n", sectionHeading(section, a.loc), formatViewModel(vm))
			}
		}
	}
	if !found {
		fmt.Println("No starred sessions.")
	}
}

func sectionHeading(s services.Section, loc *time.Location) string {
	if s.Start == nil {
		return "Unscheduled"
	}
	return s.Start.In(loc).Format("Mon 15:04")
}

func formatViewModel(vm models.SessionViewModel) string {
	star := " "
	if vm.IsStarred {
		star = "*"
	}
	parts := []string{fmt.Sprintf("[%s]%s %s", vm.SessionID, star, vm.Title)}
	if vm.Category != "" {
		parts = append(parts, vm.Category)
	}
	if vm.Room != "" {
		parts = append(parts, vm.Room)
	}
	return strings.Join(parts, " | ")
}
