package confirmPayment

import (
	"context"
	"errors"
	"net/http"

	"stagepass/internal/booking"
	"stagepass/internal/http-server/middleware/auth"
	"stagepass/internal/lib/api/response"
	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/models"
	"stagepass/internal/payments/stripegw"
	"stagepass/internal/storage"

	"github.com/go-chi/render"
	"log/slog"
)

type ConfirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

type ConfirmResponse struct {
	response.Response
	Booking   *models.Booking `json:"booking"`
	Duplicate bool            `json:"duplicate"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Confirmer
type Confirmer interface {
	Confirm(ctx context.Context, paymentIntentID string, user models.User) (*models.Booking, bool, error)
}

func New(log *slog.Logger, confirmer Confirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.confirmPayment.New"

		log = log.With(slog.String("op", op))

		var req ConfirmRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		user, _ := auth.UserFromContext(r.Context())

		b, duplicate, err := confirmer.Confirm(r.Context(), req.PaymentIntentID, user)
		if err != nil {
			writeError(w, r, log, err)

			return
		}

		log.Info("payment confirmed",
			slog.String("payment_intent_id", req.PaymentIntentID),
			slog.Int64("booking_id", b.ID),
			slog.Bool("duplicate", duplicate),
		)

		status := http.StatusCreated
		if duplicate {
			status = http.StatusOK
		}
		render.Status(r, status)
		render.JSON(w, r, ConfirmResponse{
			Response:  response.OK(),
			Booking:   b,
			Duplicate: duplicate,
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var notSucceeded *booking.PaymentNotSucceededError

	switch {
	case errors.Is(err, booking.ErrMissingPaymentIntent):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("paymentIntentId is required"))
	case errors.Is(err, booking.ErrMissingMetadata):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("payment intent is missing booking metadata"))
	case errors.Is(err, storage.ErrSectionNotFound):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown seat section"))
	case errors.Is(err, stripegw.ErrIntentNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("payment intent not found"))
	case errors.Is(err, storage.ErrEventNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("event not found"))
	case errors.As(err, &notSucceeded):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(notSucceeded.Error()))
	case errors.Is(err, storage.ErrInsufficientSeats):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("not enough seats available"))
	default:
		log.Error("failed to confirm payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to confirm payment"))
	}
}
