package cancelBooking

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

type CancelResponse struct {
	response.Response
	Booking         *models.Booking `json:"booking"`
	AlreadyCanceled bool            `json:"alreadyCanceled"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AdminCanceler
type AdminCanceler interface {
	AdminCancel(ctx context.Context, bookingID int64) (*models.Booking, bool, error)
}

func New(log *slog.Logger, canceler AdminCanceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.cancelBooking.New"

		log = log.With(slog.String("op", op))

		bookingID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid booking id"))

			return
		}

		b, alreadyCanceled, err := canceler.AdminCancel(r.Context(), bookingID)
		if errors.Is(err, storage.ErrBookingNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("booking not found"))

			return
		}
		if err != nil {
			log.Error("failed to cancel booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to cancel booking"))

			return
		}

		log.Info("booking canceled by admin",
			slog.Int64("booking_id", bookingID),
			slog.Bool("already_canceled", alreadyCanceled),
		)

		render.JSON(w, r, CancelResponse{
			Response:        response.OK(),
			Booking:         b,
			AlreadyCanceled: alreadyCanceled,
		})
	}
}
