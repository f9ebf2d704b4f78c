package getEventInfo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stagepass/internal/http-server/handlers/event/getEventInfo"
	"stagepass/internal/http-server/handlers/event/getEventInfo/mocks"
	"stagepass/internal/lib/logger/handlers/slogdiscard"
	"stagepass/internal/models"
	"stagepass/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetEventInfoHandler(t *testing.T) {
	event := &models.Event{
		ID:        7,
		EventName: "Arijit Live",
		Seats: []models.SeatSection{
			{Section: "Front", Available: 100, Price: decimal.NewFromInt(1500)},
			{Section: "Middle", Available: 200, Price: decimal.NewFromInt(1000)},
			{Section: "Back", Available: 300, Price: decimal.NewFromInt(500)},
		},
	}

	cases := []struct {
		name       string
		url        string
		mockResp   *models.Event
		mockError  error
		skipMock   bool
		wantStatus int
		respError  string
	}{
		{
			name:       "Success",
			url:        "/events/7",
			mockResp:   event,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Not found",
			url:        "/events/404",
			mockError:  storage.ErrEventNotFound,
			wantStatus: http.StatusNotFound,
			respError:  "event not found",
		},
		{
			name:       "Bad id",
			url:        "/events/abc",
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "invalid event id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eventMock := mocks.NewEventGetter(t)
			if !tc.skipMock {
				eventMock.On("Event", mock.Anything, mock.AnythingOfType("int64")).
					Return(tc.mockResp, tc.mockError).Once()
			}

			router := chi.NewRouter()
			router.Get("/events/{id}", getEventInfo.New(slogdiscard.NewDiscardLogger(), eventMock))

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)

			var resp getEventInfo.EventResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tc.respError != "" {
				assert.Equal(t, tc.respError, resp.Error)
				return
			}

			require.NotNil(t, resp.Event)
			assert.Equal(t, event.ID, resp.Event.ID)
			assert.Len(t, resp.Event.Seats, 3)
		})
	}
}
