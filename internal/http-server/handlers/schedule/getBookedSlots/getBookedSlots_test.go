package getBookedSlots

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"courtBooker/internal/http-server/handlers/schedule/getBookedSlots/mocks"
	"courtBooker/internal/lib/logger/handlers/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBookedSlotsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		mockSetup      func(mock *mocks.SlotsGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Confirmed slots grouped by date",
			mockSetup: func(mock *mocks.SlotsGetter) {
				mock.On("BookedSlots").Return(map[string][]string{
					"2025-08-30": {"18:30", "20:00"},
					"2025-08-31": {"09:00"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","schedules":{"2025-08-30":["18:30","20:00"],"2025-08-31":["09:00"]}}`,
		},
		{
			name: "No confirmed bookings",
			mockSetup: func(mock *mocks.SlotsGetter) {
				mock.On("BookedSlots").Return(map[string][]string{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","schedules":{}}`,
		},
		{
			name: "Nil map normalized to empty object",
			mockSetup: func(mock *mocks.SlotsGetter) {
				mock.On("BookedSlots").Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","schedules":{}}`,
		},
		{
			name: "Internal server error",
			mockSetup: func(mock *mocks.SlotsGetter) {
				mock.On("BookedSlots").Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get booked slots"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewSlotsGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(logger, mockGetter)

			req, err := http.NewRequest("GET", "/schedules", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")

			mockGetter.AssertExpectations(t)
		})
	}
}
