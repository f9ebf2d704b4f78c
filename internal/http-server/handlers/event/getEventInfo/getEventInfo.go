package getEventInfo

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"stagepass/internal/lib/api/response"
	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/models"
	"stagepass/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
)

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	Event(ctx context.Context, eventID int64) (*models.Event, error)
}

func New(log *slog.Logger, event EventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEventInfo.New"

		log = log.With(slog.String("op", op))

		eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))

			return
		}

		ev, err := event.Event(r.Context(), eventID)
		if errors.Is(err, storage.ErrEventNotFound) {
			log.Info("event not found", slog.Int64("id", eventID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))

			return
		}
		if err != nil {
			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event"))

			return
		}

		responseOK(w, r, ev)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, ev *models.Event) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Event:    ev,
	})
}
