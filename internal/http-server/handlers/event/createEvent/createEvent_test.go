package createEvent_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stagepass/internal/http-server/handlers/event/createEvent"
	"stagepass/internal/http-server/handlers/event/createEvent/mocks"
	"stagepass/internal/lib/logger/handlers/slogdiscard"
	"stagepass/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validSeats() []createEvent.SeatRequest {
	return []createEvent.SeatRequest{
		{Section: "Front", Available: 100, Price: decimal.NewFromInt(1500)},
		{Section: "Middle", Available: 200, Price: decimal.NewFromInt(1000)},
		{Section: "Back", Available: 300, Price: decimal.NewFromInt(500)},
	}
}

func validRequest() createEvent.EventRequest {
	return createEvent.EventRequest{
		EventName:  "Arijit Live",
		ArtistName: "Arijit Singh",
		Date:       time.Now().AddDate(0, 1, 0),
		Time:       "19:00",
		Budget:     decimal.NewFromInt(500000),
		Location:   "Mumbai",
		Seats:      validSeats(),
	}
}

func TestCreateEventHandler(t *testing.T) {
	cases := []struct {
		name       string
		mutate     func(r *createEvent.EventRequest)
		mockID     int64
		mockError  error
		skipMock   bool
		wantStatus int
		respError  string
	}{
		{
			name:       "Success",
			mutate:     func(r *createEvent.EventRequest) {},
			mockID:     7,
			wantStatus: http.StatusCreated,
		},
		{
			name: "Missing name",
			mutate: func(r *createEvent.EventRequest) {
				r.EventName = ""
			},
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "field EventName is a required field",
		},
		{
			name: "Two sections only",
			mutate: func(r *createEvent.EventRequest) {
				r.Seats = r.Seats[:2]
			},
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "field Seats is not valid",
		},
		{
			name: "Duplicate section",
			mutate: func(r *createEvent.EventRequest) {
				r.Seats[1].Section = "Front"
			},
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "duplicate seat section: Front",
		},
		{
			name: "Negative price",
			mutate: func(r *createEvent.EventRequest) {
				r.Seats[2].Price = decimal.NewFromInt(-1)
			},
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "price for Back section must be >= 0",
		},
		{
			name: "Same day",
			mutate: func(r *createEvent.EventRequest) {
				now := time.Now()
				r.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
			},
			mockID:     8,
			wantStatus: http.StatusCreated,
		},
		{
			name: "Past date",
			mutate: func(r *createEvent.EventRequest) {
				r.Date = time.Now().AddDate(0, 0, -2)
			},
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "event date cannot be in the past",
		},
		{
			name:       "Storage failure",
			mutate:     func(r *createEvent.EventRequest) {},
			mockError:  errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			respError:  "failed to add event",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eventMock := mocks.NewEventCreator(t)
			if !tc.skipMock {
				eventMock.On("CreateEvent", mock.Anything, mock.MatchedBy(func(ev *models.Event) bool {
					return ev.Status == models.StatusScheduled && len(ev.Seats) == 3
				})).Return(tc.mockID, tc.mockError).Once()
			}

			handler := createEvent.New(slogdiscard.NewDiscardLogger(), eventMock)

			reqBody := validRequest()
			tc.mutate(&reqBody)

			body, err := json.Marshal(reqBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)

			var resp createEvent.EventResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tc.respError != "" {
				assert.Equal(t, tc.respError, resp.Error)
				return
			}

			assert.Equal(t, tc.mockID, resp.EventID)
		})
	}
}
