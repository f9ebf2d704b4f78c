package getAllEvents

import (
	"context"
	"net/http"

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventLister
type EventLister interface {
	AllEvents(ctx context.Context) ([]models.Event, error)
}

func New(log *slog.Logger, event EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log = log.With(slog.String("op", op))

		events, err := event.AllEvents(r.Context())
		if err != nil {
			log.Error("failed to list events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list events"))

			return
		}

		log.Info("events listed", slog.Int("count", len(events)))

		responseOK(w, r, events)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, events []models.Event) {
	render.JSON(w, r, EventsResponse{
		Response: response.OK(),
		Events:   events,
	})
}
