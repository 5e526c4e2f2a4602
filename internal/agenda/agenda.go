package agenda

import (
	"math"
	"time"

	"github.com/lomoval/otus-golang/pocketcal/internal/storage"
	"github.com/lomoval/otus-golang/pocketcal/internal/util"
)

const (
	timeLabelLayout = "3:04 PM"
	dayLabelLayout  = "Monday, January 2"
	draftDuration   = time.Hour
)

// Entry is one row of the agenda list for a day.
type Entry struct {
	Event           storage.Event `json:"event"`
	StartLabel      string        `json:"startLabel"`
	DurationMinutes int           `json:"durationMinutes"`
	Color           string        `json:"color"`
}

// EventsOn returns the events whose [Start, End] contains at, in collection order.
func EventsOn(events []storage.Event, at time.Time) []storage.Event {
	found := make([]storage.Event, 0)
	for _, e := range events {
		if !at.Before(e.Start) && !at.After(e.End) {
			found = append(found, e)
		}
	}
	return found
}

// DurationMinutes is negative when the event ends before it starts.
func DurationMinutes(e storage.Event) int {
	return int(math.Round(e.End.Sub(e.Start).Minutes()))
}

// NewDraft is the form's starting point for a new event on at's day:
// one hour from the start of the day, default color.
func NewDraft(at time.Time, loc *time.Location) storage.Event {
	if loc == nil {
		loc = time.Local
	}
	start := util.TruncateToDay(at.In(loc))
	return storage.Event{
		Start: start,
		End:   start.Add(draftDuration),
		Color: storage.DefaultColor,
	}
}

// DayLabel is the agenda header, e.g. "Sunday, March 10".
func DayLabel(at time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return at.In(loc).Format(dayLabelLayout)
}

func Agenda(events []storage.Event, at time.Time, loc *time.Location) []Entry {
	if loc == nil {
		loc = time.Local
	}
	dayEvents := EventsOn(events, at)
	entries := make([]Entry, 0, len(dayEvents))
	for _, e := range dayEvents {
		entries = append(entries, Entry{
			Event:           e,
			StartLabel:      e.Start.In(loc).Format(timeLabelLayout),
			DurationMinutes: DurationMinutes(e),
			Color:           e.DisplayColor(),
		})
	}
	return entries
}
