package app

import (
	"context"
	"sync"
	"time"

	"github.com/lomoval/otus-golang/pocketcal/internal/agenda"
	"github.com/lomoval/otus-golang/pocketcal/internal/marking"
	"github.com/lomoval/otus-golang/pocketcal/internal/storage"
	"github.com/lomoval/otus-golang/pocketcal/internal/util"
	log "github.com/sirupsen/logrus"
)

type Store interface {
	List(ctx context.Context) []storage.Event
	Save(ctx context.Context, e storage.Event) (storage.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// App serves the presentation layer from a read-only snapshot of the stored
// events. The snapshot is reloaded on Refresh and after every change.
type App struct {
	store  Store
	engine marking.Engine

	mu       sync.Mutex
	snapshot []storage.Event
	valid    bool
}

func New(store Store, engine marking.Engine) *App {
	return &App{store: store, engine: engine}
}

func (a *App) Location() *time.Location {
	if a.engine.Location == nil {
		return time.Local
	}
	return a.engine.Location
}

// Refresh reloads the snapshot; screens call it whenever they gain focus.
func (a *App) Refresh(ctx context.Context) []storage.Event {
	events := a.store.List(ctx)
	a.mu.Lock()
	a.snapshot = events
	a.valid = true
	a.mu.Unlock()
	log.WithField("events", len(events)).Debug("events snapshot refreshed")
	return copyEvents(events)
}

func (a *App) Invalidate() {
	a.mu.Lock()
	a.valid = false
	a.mu.Unlock()
}

func (a *App) Events(ctx context.Context) []storage.Event {
	a.mu.Lock()
	if a.valid {
		events := copyEvents(a.snapshot)
		a.mu.Unlock()
		return events
	}
	a.mu.Unlock()
	return a.Refresh(ctx)
}

func (a *App) SaveEvent(ctx context.Context, e storage.Event) (storage.Event, error) {
	defer a.Invalidate()
	return a.store.Save(ctx, e)
}

func (a *App) DeleteEvent(ctx context.Context, id string) (bool, error) {
	defer a.Invalidate()
	return a.store.Delete(ctx, id)
}

func (a *App) Marks(ctx context.Context, selected time.Time) marking.Marks {
	return a.engine.Mark(a.Events(ctx), selected)
}

// MarksForMonth limits marks to the days of the month grid.
func (a *App) MarksForMonth(ctx context.Context, year int, month time.Month, selected time.Time) marking.Marks {
	first := util.StartOfDay(year, month, 1, a.Location())
	last := util.StartOfDay(year, month+1, 0, a.Location())
	return a.engine.MarkRange(a.Events(ctx), selected, first, last)
}

func (a *App) EventsOn(ctx context.Context, at time.Time) []storage.Event {
	return agenda.EventsOn(a.Events(ctx), at)
}

func (a *App) Agenda(ctx context.Context, at time.Time) []agenda.Entry {
	return agenda.Agenda(a.Events(ctx), at, a.Location())
}

func copyEvents(events []storage.Event) []storage.Event {
	c := make([]storage.Event, len(events))
	copy(c, events)
	return c
}

func (a *App) NewDraft(at time.Time) storage.Event {
	return agenda.NewDraft(at, a.Location())
}

func (a *App) DayLabel(at time.Time) string {
	return agenda.DayLabel(at, a.Location())
}
