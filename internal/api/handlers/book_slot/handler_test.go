package book_slot

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/interview-slots/internal/api/handlers"
	"github.com/m04kA/interview-slots/internal/api/middleware"
	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/integrations/events"
	"github.com/m04kA/interview-slots/pkg/logger"
)

type fakeBooker struct {
	actor *int64
	err   error
}

func (f *fakeBooker) Book(ctx context.Context, slotID int64) (*domain.Slot, error) {
	f.actor = events.ActorFromContext(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Slot{
		ID:              slotID,
		MaxCapacity:     1,
		CurrentBookings: 1,
		Status:          domain.SlotStatusBooked,
		Version:         2,
	}, nil
}

func newRouter(t *testing.T, booker SlotBooker) *mux.Router {
	t.Helper()
	l, err := logger.NewWithWriter(io.Discard, "debug")
	require.NoError(t, err)

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/slots/{slotId}/book", NewHandler(booker, l).Handle).Methods(http.MethodPost)
	return r
}

func TestHandle_Booked(t *testing.T) {
	booker := &fakeBooker{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/7/book", nil)
	req.Header.Set(middleware.HeaderUserID, "3")
	rec := httptest.NewRecorder()

	newRouter(t, booker).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "BOOKED", resp.Status)
	require.NotNil(t, booker.actor)
	assert.Equal(t, int64(3), *booker.actor)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"bad id", "/api/v1/slots/abc/book", nil, http.StatusBadRequest},
		{"not found", "/api/v1/slots/7/book", domain.ErrSlotNotFound, http.StatusNotFound},
		{"full", "/api/v1/slots/7/book", domain.ErrNotAvailable, http.StatusConflict},
		{"exhausted", "/api/v1/slots/7/book", domain.ErrBookingFailed, http.StatusConflict},
		{"timeout", "/api/v1/slots/7/book", domain.ErrOutcomeUnknown, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.Header.Set(middleware.HeaderUserID, "3")
			rec := httptest.NewRecorder()
			newRouter(t, &fakeBooker{err: tt.err}).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_RequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t, &fakeBooker{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/slots/7/book", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
