package models

// categoryColors is the fixed track-to-color lookup used when rendering
// category labels. Categories not listed here render uncolored.
var categoryColors = map[string]string{
	"Panel":       "#2980b9",
	"Workshop":    "#27ae60",
	"Main Events": "#8e44ad",
	"Autographs":  "#f39c12",
	"Gaming":      "#c0392b",
	"Video":       "#16a085",
	"Music":       "#d35400",
}

// CategoryColor returns the hex color assigned to a category name and
// whether one exists.
func CategoryColor(category string) (string, bool) {
	c, ok := categoryColors[category]
	return c, ok
}
