package createIntent_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stagepass/internal/http-server/handlers/payment/createIntent"
	"stagepass/internal/http-server/handlers/payment/createIntent/mocks"
	"stagepass/internal/lib/logger/handlers/slogdiscard"
	"stagepass/internal/payments/stripegw"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateIntentHandler(t *testing.T) {
	cases := []struct {
		name         string
		req          createIntent.IntentRequest
		wantCurrency string
		mockResp     *stripegw.Intent
		mockError    error
		skipMock     bool
		wantStatus   int
		respError    string
	}{
		{
			name: "Success",
			req: createIntent.IntentRequest{
				Amount:       150000,
				EventID:      7,
				Section:      "Front",
				Quantity:     2,
				CustomerName: "Alice",
			},
			wantCurrency: "inr",
			mockResp: &stripegw.Intent{
				ID:           "pi_123",
				ClientSecret: "pi_123_secret_abc",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Explicit currency",
			req: createIntent.IntentRequest{
				Amount:   150000,
				Currency: "usd",
				EventID:  7,
				Section:  "Front",
				Quantity: 2,
			},
			wantCurrency: "usd",
			mockResp: &stripegw.Intent{
				ID:           "pi_456",
				ClientSecret: "pi_456_secret_def",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Zero amount",
			req: createIntent.IntentRequest{
				EventID:  7,
				Section:  "Front",
				Quantity: 2,
			},
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "field Amount is a required field",
		},
		{
			name: "Unknown section",
			req: createIntent.IntentRequest{
				Amount:   150000,
				EventID:  7,
				Section:  "Balcony",
				Quantity: 2,
			},
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "field Section must be one of [Front Middle Back]",
		},
		{
			name: "Gateway failure",
			req: createIntent.IntentRequest{
				Amount:   150000,
				EventID:  7,
				Section:  "Front",
				Quantity: 2,
			},
			wantCurrency: "inr",
			mockError:    errors.New("stripe is down"),
			wantStatus:   http.StatusInternalServerError,
			respError:    "payment initialization failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gatewayMock := mocks.NewIntentCreator(t)
			if !tc.skipMock {
				gatewayMock.On("CreateIntent",
					mock.Anything, tc.req.Amount, tc.wantCurrency,
					map[string]string{
						"eventId":      "7",
						"section":      tc.req.Section,
						"qty":          "2",
						"customerName": tc.req.CustomerName,
					},
				).Return(tc.mockResp, tc.mockError).Once()
			}

			handler := createIntent.New(slogdiscard.NewDiscardLogger(), gatewayMock)

			body, err := json.Marshal(tc.req)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/payments/create-intent", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)

			var resp createIntent.IntentResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tc.respError != "" {
				assert.Equal(t, tc.respError, resp.Error)
				return
			}

			assert.Equal(t, tc.mockResp.ClientSecret, resp.ClientSecret)
			assert.Equal(t, tc.mockResp.ID, resp.PaymentIntentID)
		})
	}
}
