package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lomoval/otus-golang/pocketcal/internal/storage"
	log "github.com/sirupsen/logrus"
)

type Message struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	Location string    `json:"location"`
}

type Lister interface {
	List(ctx context.Context) []storage.Event
}

type Publisher interface {
	Publish(body []byte) error
}

// Due returns events starting in (from, to].
func Due(events []storage.Event, from, to time.Time) []storage.Event {
	due := make([]storage.Event, 0)
	for _, e := range events {
		if e.Start.After(from) && !e.Start.After(to) {
			due = append(due, e)
		}
	}
	return due
}

// Notifier publishes a message for each event when its start is within the lead time.
type Notifier struct {
	events    Lister
	publisher Publisher
	lead      time.Duration
	last      time.Time
}

func NewNotifier(events Lister, publisher Publisher, lead time.Duration, now time.Time) *Notifier {
	return &Notifier{events: events, publisher: publisher, lead: lead, last: now}
}

// Check publishes events that became due since the previous successful check.
// On a failed publish the window is kept, so the next check retries the whole
// batch and events published before the failure are sent again.
func (n *Notifier) Check(ctx context.Context, now time.Time) (int, error) {
	due := Due(n.events.List(ctx), n.last.Add(n.lead), now.Add(n.lead))

	sent := 0
	for _, e := range due {
		data, err := json.Marshal(Message{ID: e.ID, Title: e.Title, Start: e.Start, Location: e.Location})
		if err != nil {
			return sent, fmt.Errorf("failed to encode reminder %q: %w", e.ID, err)
		}
		if err := n.publisher.Publish(data); err != nil {
			return sent, fmt.Errorf("failed to publish reminder %q: %w", e.ID, err)
		}
		log.WithField("id", e.ID).Debug("reminder published")
		sent++
	}
	n.last = now
	return sent, nil
}

func (n *Notifier) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := n.Check(ctx, now); err != nil {
				log.WithError(err).Error("failed to send reminders")
			}
		}
	}
}
