package internalhttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/lomoval/otus-golang/pocketcal/internal/app"
	"github.com/lomoval/otus-golang/pocketcal/internal/storage"
	"github.com/lomoval/otus-golang/pocketcal/internal/util"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
)

const (
	errIncorrectBody      = "incorrect event"
	errIncorrectDate      = "incorrect date"
	errIncorrectMonth     = "incorrect month"
	errUnknownColor       = "unknown color"
	errEventIDNotProvided = "event id is not provided"
	errStorage            = "failed to access storage"
	monthLayout           = "2006-01"
)

type handlers struct {
	app *app.App
}

type deleteResponse struct {
	Success bool `json:"success"`
}

type draftResponse struct {
	DayLabel string        `json:"dayLabel"`
	Event    storage.Event `json:"event"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h handlers) listEvents(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, h.app.Refresh(r.Context()))
}

func (h handlers) saveEvent(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var e storage.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, codes.InvalidArgument, errIncorrectBody, err)
		return
	}
	if !storage.IsKnownColor(e.Color) {
		writeError(w, codes.InvalidArgument, errUnknownColor, fmt.Errorf("color %q", e.Color))
		return
	}

	saved, err := h.app.SaveEvent(r.Context(), e)
	if err != nil {
		writeError(w, codes.Internal, errStorage, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h handlers) deleteEvent(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id := pathParams["id"]
	if id == "" {
		writeError(w, codes.InvalidArgument, errEventIDNotProvided, nil)
		return
	}
	ok, err := h.app.DeleteEvent(r.Context(), id)
	if err != nil {
		writeError(w, codes.Internal, errStorage, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Success: ok})
}

func (h handlers) eventsOnDay(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	day, err := util.ParseDateKey(pathParams["date"], h.app.Location())
	if err != nil {
		writeError(w, codes.InvalidArgument, errIncorrectDate, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.EventsOn(r.Context(), day))
}

func (h handlers) agenda(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	day, err := util.ParseDateKey(pathParams["date"], h.app.Location())
	if err != nil {
		writeError(w, codes.InvalidArgument, errIncorrectDate, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Agenda(r.Context(), day))
}

func (h handlers) draft(w http.ResponseWriter, _ *http.Request, pathParams map[string]string) {
	day, err := util.ParseDateKey(pathParams["date"], h.app.Location())
	if err != nil {
		writeError(w, codes.InvalidArgument, errIncorrectDate, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{DayLabel: h.app.DayLabel(day), Event: h.app.NewDraft(day)})
}

// marks accepts optional "selected" (YYYY-MM-DD) and "month" (YYYY-MM) query values.
func (h handlers) marks(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	query := r.URL.Query()
	loc := h.app.Location()

	var selected time.Time
	if s := query.Get("selected"); s != "" {
		var err error
		selected, err = util.ParseDateKey(s, loc)
		if err != nil {
			writeError(w, codes.InvalidArgument, errIncorrectDate, err)
			return
		}
	}

	if m := query.Get("month"); m != "" {
		month, err := time.ParseInLocation(monthLayout, m, loc)
		if err != nil {
			writeError(w, codes.InvalidArgument, errIncorrectMonth, err)
			return
		}
		writeJSON(w, http.StatusOK, h.app.MarksForMonth(r.Context(), month.Year(), month.Month(), selected))
		return
	}
	writeJSON(w, http.StatusOK, h.app.Marks(r.Context(), selected))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

func writeError(w http.ResponseWriter, code codes.Code, msg string, err error) {
	entry := log.WithField("code", code.String())
	if err != nil {
		entry = entry.WithError(err)
	}
	if code == codes.Internal {
		entry.Error(msg)
	} else {
		entry.Debug(msg)
	}
	writeJSON(w, runtime.HTTPStatusFromCode(code), errorResponse{Error: msg})
}
