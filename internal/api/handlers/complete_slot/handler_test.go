package complete_slot

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/interview-slots/internal/api/handlers"
	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/infra/storage/slot"
	"github.com/m04kA/interview-slots/internal/integrations/events"
	"github.com/m04kA/interview-slots/internal/service/booking"
	"github.com/m04kA/interview-slots/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) ObserveBooking(string, string) {}
func (nopMetrics) ObserveConflict(string)        {}

func newRouter(t *testing.T) (*mux.Router, *slot.MemoryRepository, *booking.Coordinator) {
	t.Helper()
	l, err := logger.NewWithWriter(io.Discard, "debug")
	require.NoError(t, err)

	repo := slot.NewMemoryRepository()
	coordinator := booking.NewCoordinator(repo, events.NoopPublisher{}, nopMetrics{}, l, booking.DefaultMaxAttempts)

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/slots/{slotId}/complete", NewHandler(coordinator, l).Handle).Methods(http.MethodPost)
	return r, repo, coordinator
}

func complete(r *mux.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestHandle_CompletedKeepsBookings(t *testing.T) {
	r, repo, coordinator := newRouter(t)
	s, err := repo.Create(context.Background(), &domain.Slot{
		Date:          time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime:     "11:00",
		EndTime:       "11:10",
		InterviewType: domain.InterviewTypeCoding,
		MaxCapacity:   3,
		Scope:         domain.Scope{CompanyID: 1},
	})
	require.NoError(t, err)
	_, err = coordinator.Book(context.Background(), s.ID)
	require.NoError(t, err)

	rec := complete(r, "/api/v1/slots/1/complete")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, 1, resp.CurrentBookings)

	assert.Equal(t, http.StatusOK, complete(r, "/api/v1/slots/1/complete").Code)
}

func TestHandle_CancelledSlot(t *testing.T) {
	r, repo, coordinator := newRouter(t)
	s, err := repo.Create(context.Background(), &domain.Slot{
		Date:          time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime:     "11:00",
		EndTime:       "11:10",
		InterviewType: domain.InterviewTypeCoding,
		MaxCapacity:   1,
		Scope:         domain.Scope{CompanyID: 1},
	})
	require.NoError(t, err)
	_, err = coordinator.Cancel(context.Background(), s.ID)
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, complete(r, "/api/v1/slots/1/complete").Code)
}

func TestHandle_BadRequests(t *testing.T) {
	r, _, _ := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, complete(r, "/api/v1/slots/x/complete").Code)
	assert.Equal(t, http.StatusNotFound, complete(r, "/api/v1/slots/5/complete").Code)
}
