package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if f := a.schedule.Filter(); f != "" {
		s = fmt.Sprintf("(filter: %s)", f)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to confsync CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("confsync %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: sync, list, filter <text>, starred, star <id>, unstar <id>, guests [category], jump <HH:MM|now>, live, exit")

		case "sync":
			a.syncAll(ctx)
		case "list":
			a.list(ctx)
		case "filter":
			a.setFilter(strings.Join(args, " "))
		case "starred":
			a.starred(ctx)
		case "star":
			if len(args) == 0 {
				fmt.Println("Usage: star <session-id>")
				continue
			}
			a.star(ctx, args[0])
		case "unstar":
			if len(args) == 0 {
				fmt.Println("Usage: unstar <session-id>")
				continue
			}
			a.unstar(ctx, args[0])
		case "guests":
			category := ""
			if len(args) > 0 {
				category = args[0]
			}
			a.guests(ctx, category)
		case "jump":
			if len(args) == 0 {
				fmt.Println("Usage: jump <HH:MM|now>")
				continue
			}
			a.jump(args[0])
		case "live":
			a.live(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
