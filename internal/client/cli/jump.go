package cli

import (
	"fmt"
	"time"
)

func (a *App) jump(arg string) {
	at, err := parseJumpTime(arg, time.Now(), a.loc)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	// prefer the first upcoming section; once everything is in the past,
	// fall back to the last one
	section, ok := a.schedule.FirstSection(at)
	if !ok {
		section, ok = a.schedule.LastSection(at)
	}
	if !ok {
		fmt.Println("No scheduled sessions cached.")
		return
	}

	sections := a.schedule.Sections()
	fmt.Printf("Section %d: %s\n", section, sectionHeading(sections[section], a.loc))
	for _, vm := range sections[section].Items {
		fmt.Println("  " + formatViewModel(vm))
	}
}

// parseJumpTime resolves a jump argument to an absolute time: "now", a
// conference-local "HH:MM" on the current day, or a full RFC 3339 stamp.
func parseJumpTime(arg string, now time.Time, loc *time.Location) (time.Time, error) {
	if arg == "now" {
		return now, nil
	}
	if t, err := time.ParseInLocation("15:04", arg, loc); err == nil {
		day := now.In(loc)
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	if t, err := time.Parse(time.RFC3339, arg); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (want HH:MM, RFC 3339, or 'now')", arg)
}
