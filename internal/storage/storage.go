package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lomoval/otus-golang/pocketcal/internal/kv"
	log "github.com/sirupsen/logrus"
)

// EventsKey is the only storage key holding the event collection.
const EventsKey = "calendar-events"

var ErrCorruptCollection = errors.New("stored events can not be decoded")

type IDGenerator func() (string, error)

type Option func(s *Store)

func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		s.nextID = gen
	}
}

// Store keeps no state between calls: every operation reads the whole
// collection and writes it back.
type Store struct {
	kv     kv.Storage
	nextID IDGenerator
}

func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{kv: storage, nextID: newID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List never fails; unreadable or malformed data is logged and reported as no events.
func (s *Store) List(ctx context.Context) []Event {
	events, err := s.load(ctx)
	if err != nil {
		log.WithError(err).Error("failed to load events")
		return []Event{}
	}
	return events
}

// Save creates the event when it has no ID, otherwise replaces the stored
// event with the same ID or inserts it under that ID.
func (s *Store) Save(ctx context.Context, e Event) (Event, error) {
	events, err := s.load(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to save event: %w", err)
	}

	if e.ID == "" {
		e.ID, err = s.nextID()
		if err != nil {
			return Event{}, fmt.Errorf("failed to generate event id: %w", err)
		}
		events = append(events, e)
	} else {
		replaced := false
		for i := range events {
			if events[i].ID == e.ID {
				events[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			log.WithField("id", e.ID).Debug("event not found, inserting")
			events = append(events, e)
		}
	}

	if err := s.store(ctx, events); err != nil {
		return Event{}, fmt.Errorf("failed to save event %q: %w", e.ID, err)
	}
	return e, nil
}

// Delete removes every event with the ID. A missing ID is not an error.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	events, err := s.load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove event with id %q: %w", id, err)
	}

	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if err := s.store(ctx, kept); err != nil {
		return false, fmt.Errorf("failed to remove event with id %q: %w", id, err)
	}
	return true, nil
}

func (s *Store) load(ctx context.Context) ([]Event, error) {
	data, found, err := s.kv.Get(ctx, EventsKey)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0)
	if !found || data == "" {
		return events, nil
	}
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCollection, err)
	}
	if events == nil {
		// "null" blob
		events = make([]Event, 0)
	}
	return events, nil
}

func (s *Store) store(ctx context.Context, events []Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return s.kv.Set(ctx, EventsKey, string(data))
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
