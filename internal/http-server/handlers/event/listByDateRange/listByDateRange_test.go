package listByDateRange_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stagepass/internal/http-server/handlers/event/listByDateRange"
	"stagepass/internal/http-server/handlers/event/listByDateRange/mocks"
	"stagepass/internal/lib/logger/handlers/slogdiscard"
	"stagepass/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListByDateRangeHandler(t *testing.T) {
	cases := []struct {
		name       string
		url        string
		mockResp   []models.Event
		skipMock   bool
		wantStatus int
		respError  string
	}{
		{
			name: "Success",
			url:  "/events/date-range?startDate=2026-09-01&endDate=2026-09-30",
			mockResp: []models.Event{
				{ID: 1, EventName: "Arijit Live"},
				{ID: 2, EventName: "Coldplay"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "RFC3339 bounds",
			url:        "/events/date-range?startDate=2026-09-01T00:00:00Z&endDate=2026-09-30T23:59:59Z",
			mockResp:   []models.Event{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing startDate",
			url:        "/events/date-range?endDate=2026-09-30",
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "invalid startDate",
		},
		{
			name:       "Garbage endDate",
			url:        "/events/date-range?startDate=2026-09-01&endDate=soon",
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "invalid endDate",
		},
		{
			name:       "Inverted range",
			url:        "/events/date-range?startDate=2026-09-30&endDate=2026-09-01",
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
			respError:  "endDate must not be before startDate",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eventMock := mocks.NewRangeLister(t)
			if !tc.skipMock {
				eventMock.On("EventsByDateRange",
					mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"),
				).Return(tc.mockResp, nil).Once()
			}

			handler := listByDateRange.New(slogdiscard.NewDiscardLogger(), eventMock)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)

			var resp listByDateRange.EventsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tc.respError != "" {
				assert.Equal(t, tc.respError, resp.Error)
				return
			}

			assert.Len(t, resp.Events, len(tc.mockResp))
		})
	}
}

func TestListByDateRangeHandler_PassesParsedBounds(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	eventMock := mocks.NewRangeLister(t)
	eventMock.On("EventsByDateRange", mock.Anything, from, to).
		Return([]models.Event{}, nil).Once()

	handler := listByDateRange.New(slogdiscard.NewDiscardLogger(), eventMock)

	req := httptest.NewRequest(http.MethodGet,
		"/events/date-range?startDate=2026-09-01&endDate=2026-09-30", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
