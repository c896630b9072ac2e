package get_time_grid

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/interview-slots/pkg/logger"
	"github.com/m04kA/interview-slots/pkg/types"
)

func TestHandle(t *testing.T) {
	l, err := logger.NewWithWriter(io.Discard, "debug")
	require.NoError(t, err)
	hours, err := types.NewWindow("08:00", "22:00")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewHandler(hours, l).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/time-grid?date=2026-11-03", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.StepMinutes)
	require.Len(t, resp.Windows, 144)

	first := resp.Windows[0]
	assert.Equal(t, "00:00", first.StartTime)
	assert.Equal(t, "12:00 AM", first.StartTime12h)
	assert.False(t, first.Bookable)

	bookable := 0
	for _, w := range resp.Windows {
		if w.Bookable {
			bookable++
		}
	}
	assert.Equal(t, 84, bookable)
	assert.True(t, resp.Windows[48].Bookable)
	assert.Equal(t, "08:00", resp.Windows[48].StartTime)
}

func TestHandle_InvalidDate(t *testing.T) {
	l, err := logger.NewWithWriter(io.Discard, "debug")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewHandler(types.Window{}, l).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/time-grid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
