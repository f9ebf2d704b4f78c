package cancelBooking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"stagepass/internal/booking"
	"stagepass/internal/http-server/middleware/auth"
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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Canceler
type Canceler interface {
	Cancel(ctx context.Context, bookingID int64, requester models.User) (*models.Booking, bool, error)
}

func New(log *slog.Logger, canceler Canceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.cancelBooking.New"

		log = log.With(slog.String("op", op))

		bookingID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid booking id"))

			return
		}

		user, _ := auth.UserFromContext(r.Context())

		b, alreadyCanceled, err := canceler.Cancel(r.Context(), bookingID, user)
		switch {
		case errors.Is(err, booking.ErrNoIdentity):
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization token is required"))

			return
		case errors.Is(err, booking.ErrNotAllowed):
			log.Info("cancellation forbidden",
				slog.Int64("booking_id", bookingID),
				slog.String("user_id", user.ID),
			)
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("you can only cancel your own bookings"))

			return
		case errors.Is(err, storage.ErrBookingNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("booking not found"))

			return
		case err != nil:
			log.Error("failed to cancel booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to cancel booking"))

			return
		}

		log.Info("booking canceled",
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
