package getAllEvents_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stagepass/internal/http-server/handlers/event/getAllEvents"
	"stagepass/internal/http-server/handlers/event/getAllEvents/mocks"
	"stagepass/internal/lib/logger/handlers/slogdiscard"
	"stagepass/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAllEventsHandler(t *testing.T) {
	cases := []struct {
		name       string
		mockResp   []models.Event
		mockError  error
		wantStatus int
		respError  string
	}{
		{
			name: "Success",
			mockResp: []models.Event{
				{ID: 1, EventName: "Arijit Live"},
				{ID: 2, EventName: "Coldplay"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Empty",
			mockResp:   []models.Event{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Storage failure",
			mockError:  errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			respError:  "failed to list events",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eventMock := mocks.NewEventLister(t)
			eventMock.On("AllEvents", mock.Anything).
				Return(tc.mockResp, tc.mockError).Once()

			handler := getAllEvents.New(slogdiscard.NewDiscardLogger(), eventMock)

			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)

			var resp getAllEvents.EventsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tc.respError != "" {
				assert.Equal(t, tc.respError, resp.Error)
				return
			}

			assert.Len(t, resp.Events, len(tc.mockResp))
		})
	}
}
