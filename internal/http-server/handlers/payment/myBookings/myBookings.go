package myBookings

import (
	"context"
	"net/http"

	"stagepass/internal/http-server/middleware/auth"
	"stagepass/internal/lib/api/response"
	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/models"

	"github.com/go-chi/render"
	"log/slog"
)

type BookingsResponse struct {
	response.Response
	Bookings []models.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingLister
type BookingLister interface {
	BookingsForUser(ctx context.Context, userID, email string) ([]models.Booking, error)
}

func New(log *slog.Logger, bookings BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.myBookings.New"

		log = log.With(slog.String("op", op))

		user, ok := auth.UserFromContext(r.Context())
		if !ok || user.Anonymous() {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization token is required"))

			return
		}

		list, err := bookings.BookingsForUser(r.Context(), user.ID, user.Email)
		if err != nil {
			log.Error("failed to list bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list bookings"))

			return
		}

		log.Info("bookings listed",
			slog.String("user_id", user.ID),
			slog.Int("count", len(list)),
		)

		render.JSON(w, r, BookingsResponse{
			Response: response.OK(),
			Bookings: list,
		})
	}
}
