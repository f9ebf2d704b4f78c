package createEvent

import (
	"context"
	"errors"
	"net/http"
	"time"

	"stagepass/internal/lib/api/response"
	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"log/slog"
)

type SeatRequest struct {
	Section   string          `json:"section" validate:"required,oneof=Front Middle Back"`
	Available int             `json:"available" validate:"min=0"`
	Price     decimal.Decimal `json:"price"`
}

type EventRequest struct {
	EventName  string          `json:"eventName" validate:"required"`
	ArtistName string          `json:"artistName" validate:"required"`
	Date       time.Time       `json:"date" validate:"required"`
	Time       string          `json:"time" validate:"required"`
	Budget     decimal.Decimal `json:"budget"`
	Image      string          `json:"image"`
	Location   string          `json:"location" validate:"required"`
	Seats      []SeatRequest   `json:"seats" validate:"required,len=3,dive"`
}

type EventResponse struct {
	response.Response
	EventID int64 `json:"eventId"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, ev *models.Event) (int64, error)
}

func New(log *slog.Logger, event EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log = log.With(slog.String("op", op))

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		if msg := checkSeats(req.Seats); msg != "" {
			log.Error("invalid seat sections", slog.String("reason", msg))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(msg))

			return
		}

		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if req.Date.Before(today) {
			log.Error("event date is in the past", slog.Time("date", req.Date))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event date cannot be in the past"))

			return
		}

		if req.Budget.IsNegative() {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("budget must be >= 0"))

			return
		}

		seats := make([]models.SeatSection, 0, len(req.Seats))
		for _, s := range req.Seats {
			seats = append(seats, models.SeatSection{
				Section:   s.Section,
				Available: s.Available,
				Price:     s.Price,
			})
		}

		eventID, err := event.CreateEvent(r.Context(), &models.Event{
			EventName:  req.EventName,
			ArtistName: req.ArtistName,
			Date:       req.Date,
			Time:       req.Time,
			Budget:     req.Budget,
			Image:      req.Image,
			Location:   req.Location,
			Status:     models.StatusScheduled,
			Seats:      seats,
		})
		if err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.Int64("id", eventID))

		responseOK(w, r, eventID)
	}
}

// checkSeats enforces the one-of-each rule on top of the per-item tags:
// exactly one Front, one Middle and one Back section, each priced >= 0.
func checkSeats(seats []SeatRequest) string {
	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		if seen[s.Section] {
			return "duplicate seat section: " + s.Section
		}
		seen[s.Section] = true

		if s.Price.IsNegative() {
			return "price for " + s.Section + " section must be >= 0"
		}
	}
	for _, name := range models.SectionNames {
		if !seen[name] {
			return "missing seat section: " + name
		}
	}
	return ""
}

func responseOK(w http.ResponseWriter, r *http.Request, eventID int64) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		EventID:  eventID,
	})
}
