package deleteEvent

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"stagepass/internal/lib/api/response"
	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventDeleter
type EventDeleter interface {
	DeleteEvent(ctx context.Context, eventID int64) error
}

func New(log *slog.Logger, event EventDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.deleteEvent.New"

		log = log.With(slog.String("op", op))

		eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))

			return
		}

		err = event.DeleteEvent(r.Context(), eventID)
		if errors.Is(err, storage.ErrEventNotFound) {
			log.Info("event not found", slog.Int64("id", eventID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))

			return
		}
		if err != nil {
			log.Error("failed to delete event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete event"))

			return
		}

		log.Info("event deleted", slog.Int64("id", eventID))

		render.JSON(w, r, response.OK())
	}
}
