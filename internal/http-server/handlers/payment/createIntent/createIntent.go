package createIntent

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"stagepass/internal/booking"
	"stagepass/internal/lib/api/response"
	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/payments/stripegw"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
)

const defaultCurrency = "inr"

type IntentRequest struct {
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	Currency     string `json:"currency"`
	EventID      int64  `json:"eventId" validate:"required,gt=0"`
	Section      string `json:"section" validate:"required,oneof=Front Middle Back"`
	Quantity     int    `json:"qty" validate:"required,gt=0"`
	CustomerName string `json:"customerName"`
}

type IntentResponse struct {
	response.Response
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=IntentCreator
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*stripegw.Intent, error)
}

func New(log *slog.Logger, gateway IntentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.createIntent.New"

		log = log.With(slog.String("op", op))

		var req IntentRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		currency := req.Currency
		if currency == "" {
			currency = defaultCurrency
		}

		metadata := map[string]string{
			booking.MetaEventID:      strconv.FormatInt(req.EventID, 10),
			booking.MetaSection:      req.Section,
			booking.MetaQuantity:     strconv.Itoa(req.Quantity),
			booking.MetaCustomerName: req.CustomerName,
		}

		intent, err := gateway.CreateIntent(r.Context(), req.Amount, currency, metadata)
		if err != nil {
			log.Error("failed to create payment intent", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("payment initialization failed"))

			return
		}

		log.Info("payment intent created",
			slog.String("payment_intent_id", intent.ID),
			slog.Int64("amount", req.Amount),
		)

		responseOK(w, r, intent)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, intent *stripegw.Intent) {
	render.JSON(w, r, IntentResponse{
		Response:        response.OK(),
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}
