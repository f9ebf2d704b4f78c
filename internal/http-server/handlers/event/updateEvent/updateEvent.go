package updateEvent

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stagepass/internal/lib/api/response"
	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/models"
	"stagepass/internal/storage"

	"github.com/go-chi/chi/v5"
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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	UpdateEvent(ctx context.Context, ev *models.Event) error
}

func New(log *slog.Logger, event EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

		log = log.With(slog.String("op", op))

		eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))

			return
		}

		var req EventRequest

		err = render.DecodeJSON(r.Body, &req)
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

		seats := make([]models.SeatSection, 0, len(req.Seats))
		for _, s := range req.Seats {
			if s.Price.IsNegative() {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("price for "+s.Section+" section must be >= 0"))

				return
			}
			seats = append(seats, models.SeatSection{
				Section:   s.Section,
				Available: s.Available,
				Price:     s.Price,
			})
		}

		err = event.UpdateEvent(r.Context(), &models.Event{
			ID:         eventID,
			EventName:  req.EventName,
			ArtistName: req.ArtistName,
			Date:       req.Date,
			Time:       req.Time,
			Budget:     req.Budget,
			Image:      req.Image,
			Location:   req.Location,
			Seats:      seats,
		})
		if errors.Is(err, storage.ErrEventNotFound) {
			log.Info("event not found", slog.Int64("id", eventID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))

			return
		}
		if err != nil {
			log.Error("failed to update event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update event"))

			return
		}

		log.Info("event updated", slog.Int64("id", eventID))

		render.JSON(w, r, response.OK())
	}
}
