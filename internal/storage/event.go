package storage

import (
	"time"
)

// DefaultColor is shown for events without an explicit color.
const DefaultColor = "#ccc7b3"

// Palette lists the colors an event can be tagged with, besides DefaultColor.
var Palette = []string{"#D4A76A", "#A67B5B", "#3E2C1C", "#F5CBA7", "#4A3D8B"}

// Event is persisted with start and end encoded as RFC 3339 timestamps with
// nanoseconds, so a stored event decodes to the same instant.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Color       string    `json:"color"`
}

func (e Event) DisplayColor() string {
	if e.Color == "" {
		return DefaultColor
	}
	return e.Color
}

func IsKnownColor(color string) bool {
	if color == "" || color == DefaultColor {
		return true
	}
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}
