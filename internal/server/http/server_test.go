package internalhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lomoval/otus-golang/pocketcal/internal/agenda"
	"github.com/lomoval/otus-golang/pocketcal/internal/app"
	memorystorage "github.com/lomoval/otus-golang/pocketcal/internal/kv/memory"
	"github.com/lomoval/otus-golang/pocketcal/internal/marking"
	"github.com/lomoval/otus-golang/pocketcal/internal/storage"
	"github.com/stretchr/testify/require"
)

type failingStorage struct{}

func (failingStorage) Connect(_ context.Context) error { return nil }

func (failingStorage) Close(_ context.Context) error { return nil }

func (failingStorage) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, nil
}

func (failingStorage) Set(_ context.Context, _ string, _ string) error {
	return errors.New("disk is full")
}

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	calendar := app.New(store, marking.Engine{Location: time.UTC})
	handler, err := NewServer(Config{Host: "127.0.0.1", Port: 0}, calendar).Handler()
	require.NoError(t, err)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestEventsAPI(t *testing.T) {
	ts := newTestServer(t, storage.New(memorystorage.New()))

	e := storage.Event{
		Title: "trip",
		Start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Color: "#4A3D8B",
	}
	var saved storage.Event
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, ts.URL+"/events", e, &saved))
	require.NotEmpty(t, saved.ID)

	var events []storage.Event
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, ts.URL+"/events", nil, &events))
	require.Equal(t, []storage.Event{saved}, events)

	var day []storage.Event
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, ts.URL+"/events/day/2024-03-11", nil, &day))
	require.Equal(t, []storage.Event{saved}, day)
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, ts.URL+"/events/day/2024-03-09", nil, &day))
	require.Empty(t, day)

	var entries []agenda.Entry
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, ts.URL+"/agenda/2024-03-11", nil, &entries))
	require.Len(t, entries, 1)
	require.Equal(t, 2880, entries[0].DurationMinutes)

	var draft draftResponse
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, ts.URL+"/draft/2024-03-10", nil, &draft))
	require.Equal(t, "Sunday, March 10", draft.DayLabel)
	require.Empty(t, draft.Event.ID)
	require.Equal(t, storage.DefaultColor, draft.Event.Color)
	require.True(t, draft.Event.Start.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 60, agenda.DurationMinutes(draft.Event))

	var marks marking.Marks
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, ts.URL+"/marks?selected=2024-03-12", nil, &marks))
	require.Len(t, marks, 3)
	require.True(t, marks["2024-03-10"].StartingDay)
	require.True(t, marks["2024-03-12"].EndingDay)
	require.True(t, marks["2024-03-12"].Selected)

	var aprilMarks marking.Marks
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, ts.URL+"/marks?month=2024-04", nil, &aprilMarks))
	require.Empty(t, aprilMarks)

	var deleted deleteResponse
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodDelete, ts.URL+"/events/"+saved.ID, nil, &deleted))
	require.True(t, deleted.Success)
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodDelete, ts.URL+"/events/absent", nil, &deleted))
	require.True(t, deleted.Success)

	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, ts.URL+"/events", nil, &events))
	require.Empty(t, events)
}

func TestEventsAPIErrors(t *testing.T) {
	ts := newTestServer(t, storage.New(memorystorage.New()))

	var resp errorResponse
	require.Equal(t, http.StatusBadRequest,
		doRequest(t, http.MethodGet, ts.URL+"/events/day/11-03-2024", nil, &resp))
	require.Equal(t, errIncorrectDate, resp.Error)

	require.Equal(t, http.StatusBadRequest,
		doRequest(t, http.MethodGet, ts.URL+"/draft/tomorrow", nil, &resp))
	require.Equal(t, errIncorrectDate, resp.Error)

	require.Equal(t, http.StatusBadRequest,
		doRequest(t, http.MethodGet, ts.URL+"/marks?month=March", nil, &resp))
	require.Equal(t, errIncorrectMonth, resp.Error)

	require.Equal(t, http.StatusBadRequest,
		doRequest(t, http.MethodPost, ts.URL+"/events", storage.Event{Title: "x", Color: "#000000"}, &resp))
	require.Equal(t, errUnknownColor, resp.Error)

	require.Equal(t, http.StatusBadRequest,
		doRequest(t, http.MethodPost, ts.URL+"/events", "not an event", &resp))
	require.Equal(t, errIncorrectBody, resp.Error)
}

func TestEventsAPIStorageFailure(t *testing.T) {
	ts := newTestServer(t, storage.New(failingStorage{}))

	var resp errorResponse
	require.Equal(t, http.StatusInternalServerError,
		doRequest(t, http.MethodPost, ts.URL+"/events", storage.Event{Title: "x"}, &resp))
	require.Equal(t, errStorage, resp.Error)

	require.Equal(t, http.StatusInternalServerError,
		doRequest(t, http.MethodDelete, ts.URL+"/events/1", nil, &resp))
}
