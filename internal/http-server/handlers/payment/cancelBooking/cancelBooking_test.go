package cancelBooking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stagepass/internal/booking"
	"stagepass/internal/http-server/handlers/payment/cancelBooking"
	"stagepass/internal/http-server/handlers/payment/cancelBooking/mocks"
	"stagepass/internal/http-server/middleware/auth"
	"stagepass/internal/lib/logger/handlers/slogdiscard"
	"stagepass/internal/models"
	"stagepass/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelBookingHandler(t *testing.T) {
	user := models.User{ID: "u1", Email: "me@example.com"}

	cases := []struct {
		name            string
		mockResp        *models.Booking
		alreadyCanceled bool
		mockError       error
		wantStatus      int
		respError       string
	}{
		{
			name:       "Canceled",
			mockResp:   &models.Booking{ID: 42, PaymentStatus: models.PaymentCanceled},
			wantStatus: http.StatusOK,
		},
		{
			name:            "Already canceled",
			mockResp:        &models.Booking{ID: 42, PaymentStatus: models.PaymentCanceled},
			alreadyCanceled: true,
			wantStatus:      http.StatusOK,
		},
		{
			name:       "No identity",
			mockError:  booking.ErrNoIdentity,
			wantStatus: http.StatusUnauthorized,
			respError:  "authorization token is required",
		},
		{
			name:       "Not owner",
			mockError:  booking.ErrNotAllowed,
			wantStatus: http.StatusForbidden,
			respError:  "you can only cancel your own bookings",
		},
		{
			name:       "Not found",
			mockError:  storage.ErrBookingNotFound,
			wantStatus: http.StatusNotFound,
			respError:  "booking not found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cancelerMock := mocks.NewCanceler(t)
			cancelerMock.On("Cancel", mock.Anything, int64(42), user).
				Return(tc.mockResp, tc.alreadyCanceled, tc.mockError).Once()

			router := chi.NewRouter()
			router.Patch("/payments/{id}/cancel",
				cancelBooking.New(slogdiscard.NewDiscardLogger(), cancelerMock))

			req := httptest.NewRequest(http.MethodPatch, "/payments/42/cancel", nil)
			req = req.WithContext(auth.WithUser(req.Context(), user))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)

			var resp cancelBooking.CancelResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tc.respError != "" {
				assert.Equal(t, tc.respError, resp.Error)
				return
			}

			assert.Equal(t, tc.alreadyCanceled, resp.AlreadyCanceled)
			require.NotNil(t, resp.Booking)
			assert.Equal(t, models.PaymentCanceled, resp.Booking.PaymentStatus)
		})
	}
}

func TestCancelBookingHandler_BadID(t *testing.T) {
	router := chi.NewRouter()
	router.Patch("/payments/{id}/cancel",
		cancelBooking.New(slogdiscard.NewDiscardLogger(), mocks.NewCanceler(t)))

	req := httptest.NewRequest(http.MethodPatch, "/payments/abc/cancel", nil)
	req = req.WithContext(auth.WithUser(req.Context(), models.User{ID: "u1"}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
