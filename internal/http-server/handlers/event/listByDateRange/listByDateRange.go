package listByDateRange

import (
	"context"
	"net/http"
	"time"

	"stagepass/internal/lib/api/response"
	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/models"

	"github.com/go-chi/render"
	"log/slog"
)

type EventsResponse struct {
	response.Response
	Events []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RangeLister
type RangeLister interface {
	EventsByDateRange(ctx context.Context, from, to time.Time) ([]models.Event, error)
}

func New(log *slog.Logger, event RangeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.listByDateRange.New"

		log = log.With(slog.String("op", op))

		from, err := parseDate(r.URL.Query().Get("startDate"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid startDate"))

			return
		}

		to, err := parseDate(r.URL.Query().Get("endDate"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid endDate"))

			return
		}

		if to.Before(from) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("endDate must not be before startDate"))

			return
		}

		events, err := event.EventsByDateRange(r.Context(), from, to)
		if err != nil {
			log.Error("failed to list events by date range", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list events"))

			return
		}

		log.Info("events listed",
			slog.Time("from", from),
			slog.Time("to", to),
			slog.Int("count", len(events)),
		)

		render.JSON(w, r, EventsResponse{
			Response: response.OK(),
			Events:   events,
		})
	}
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
