package updateEventStatus_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stagepass/internal/http-server/handlers/event/updateEventStatus"
	"stagepass/internal/http-server/handlers/event/updateEventStatus/mocks"
	"stagepass/internal/lib/logger/handlers/slogdiscard"
	"stagepass/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateEventStatusHandler(t *testing.T) {
	cases := []struct {
		name       string
		status     string
		mockError  error
		skipMock   bool
		wantStatus int
		respError  string
	}{
		{
			name:       "Completed",
			status:     "Completed",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Cancelled",
			status:     "Cancelled",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Unknown status",
			status:     "Postponed",
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "field Status must be one of [Scheduled Completed Cancelled]",
		},
		{
			name:       "Event not found",
			status:     "Completed",
			mockError:  storage.ErrEventNotFound,
			wantStatus: http.StatusNotFound,
			respError:  "event not found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eventMock := mocks.NewStatusUpdater(t)
			if !tc.skipMock {
				eventMock.On("UpdateEventStatus", mock.Anything, int64(7), tc.status).
					Return(tc.mockError).Once()
			}

			router := chi.NewRouter()
			router.Patch("/events/{id}/status",
				updateEventStatus.New(slogdiscard.NewDiscardLogger(), eventMock))

			body, err := json.Marshal(updateEventStatus.StatusRequest{Status: tc.status})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPatch, "/events/7/status", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)

			if tc.respError != "" {
				var resp struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tc.respError, resp.Error)
			}
		})
	}
}
