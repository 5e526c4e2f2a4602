package marking

import (
	"time"

	"github.com/lomoval/otus-golang/pocketcal/internal/storage"
	"github.com/lomoval/otus-golang/pocketcal/internal/util"
)

const (
	DefaultSelectedColor = "rgba(204,199,179)"
	rangeTextColor       = "white"
)

type Kind int

const (
	KindSingle Kind = iota
	KindRangeStart
	KindRangeEnd
	KindMidRange
)

// Marking is the decoration of one calendar cell, encoded the way the
// period marking of the calendar widget expects it.
type Marking struct {
	Kind          Kind   `json:"-"`
	Marked        bool   `json:"marked,omitempty"`
	DotColor      string `json:"dotColor,omitempty"`
	StartingDay   bool   `json:"startingDay,omitempty"`
	EndingDay     bool   `json:"endingDay,omitempty"`
	Color         string `json:"color,omitempty"`
	TextColor     string `json:"textColor,omitempty"`
	Selected      bool   `json:"selected,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// Marks maps YYYY-MM-DD days to their decoration.
type Marks map[string]Marking

// Merger decides the decoration of a day already marked by an earlier event.
type Merger interface {
	Merge(existing, incoming Marking) Marking
}

type MergerFunc func(existing, incoming Marking) Marking

func (f MergerFunc) Merge(existing, incoming Marking) Marking {
	return f(existing, incoming)
}

// LastWriteWins keeps only the decoration of the latest event covering a day.
var LastWriteWins Merger = MergerFunc(func(_, incoming Marking) Marking {
	return incoming
})

// Engine zero value marks days in time.Local with the default colors.
type Engine struct {
	Location      *time.Location
	DefaultColor  string
	SelectedColor string
	Merge         Merger
}

// Mark decorates every day spanned by the events. Events are applied in
// order; overlapping days are resolved by the Merge strategy.
func (e Engine) Mark(events []storage.Event, selected time.Time) Marks {
	return e.mark(events, selected, time.Time{}, time.Time{})
}

// MarkRange is Mark limited to the visible days from..to inclusive.
func (e Engine) MarkRange(events []storage.Event, selected, from, to time.Time) Marks {
	loc := e.location()
	return e.mark(events, selected, util.CalendarDay(from, loc), util.CalendarDay(to, loc))
}

func (e Engine) mark(events []storage.Event, selected, from, to time.Time) Marks {
	loc := e.location()
	merger := e.Merge
	if merger == nil {
		merger = LastWriteWins
	}
	selectedKey := ""
	if !selected.IsZero() {
		selectedKey = util.DateKey(selected, loc)
	}

	marks := make(Marks)
	for _, event := range events {
		color := event.Color
		if color == "" {
			color = e.defaultColor()
		}
		// days are walked as calendar dates, not local midnights
		startDay := util.CalendarDay(event.Start, loc)
		endDay := util.CalendarDay(event.End, loc)

		for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
			if !from.IsZero() && (day.Before(from) || day.After(to)) {
				continue
			}
			key := day.Format(util.DateLayout)
			m := classify(day.Equal(startDay), day.Equal(endDay), color)
			if existing, ok := marks[key]; ok {
				m = merger.Merge(existing, m)
			}
			if key == selectedKey {
				m.Selected = true
				m.SelectedColor = e.selectedColor()
			}
			marks[key] = m
		}
	}
	return marks
}

func classify(isStart, isEnd bool, color string) Marking {
	switch {
	case isStart && isEnd:
		return Marking{Kind: KindSingle, Marked: true, DotColor: color}
	case isStart:
		return Marking{Kind: KindRangeStart, StartingDay: true, Color: color, TextColor: rangeTextColor}
	case isEnd:
		return Marking{Kind: KindRangeEnd, EndingDay: true, Color: color, TextColor: rangeTextColor}
	default:
		return Marking{Kind: KindMidRange, Color: color, TextColor: rangeTextColor}
	}
}

func (e Engine) location() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

func (e Engine) defaultColor() string {
	if e.DefaultColor == "" {
		return storage.DefaultColor
	}
	return e.DefaultColor
}

func (e Engine) selectedColor() string {
	if e.SelectedColor == "" {
		return DefaultSelectedColor
	}
	return e.SelectedColor
}
