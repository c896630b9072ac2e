package matcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/infra/storage/slot"
	"github.com/m04kA/interview-slots/pkg/ptr"
	"github.com/m04kA/interview-slots/pkg/types"
)

var (
	nineTen = types.Window{Start: "09:00", End: "09:10"}
	company = domain.Scope{CompanyID: 1}
)

func mkSlot(id int64, w types.Window, bookings, capacity int, status domain.SlotStatus) *domain.Slot {
	return &domain.Slot{
		ID:              id,
		StartTime:       w.Start,
		EndTime:         w.End,
		MaxCapacity:     capacity,
		CurrentBookings: bookings,
		Status:          status,
		Scope:           company,
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		slots   []*domain.Slot
		want    int64
		wantErr error
	}{
		{
			name:  "single match",
			slots: []*domain.Slot{mkSlot(1, nineTen, 0, 1, domain.SlotStatusAvailable)},
			want:  1,
		},
		{
			name: "prefers remaining capacity",
			slots: []*domain.Slot{
				mkSlot(1, nineTen, 1, 1, domain.SlotStatusBooked),
				mkSlot(2, nineTen, 3, 5, domain.SlotStatusAvailable),
			},
			want: 2,
		},
		{
			name: "then fewer bookings",
			slots: []*domain.Slot{
				mkSlot(1, nineTen, 2, 5, domain.SlotStatusAvailable),
				mkSlot(2, nineTen, 1, 5, domain.SlotStatusAvailable),
			},
			want: 2,
		},
		{
			name: "then creation order",
			slots: []*domain.Slot{
				mkSlot(4, nineTen, 1, 5, domain.SlotStatusAvailable),
				mkSlot(3, nineTen, 1, 2, domain.SlotStatusAvailable),
			},
			want: 3,
		},
		{
			name: "full slot still resolves when nothing else matches",
			slots: []*domain.Slot{
				mkSlot(1, nineTen, 1, 1, domain.SlotStatusBooked),
			},
			want: 1,
		},
		{
			name: "window must match exactly",
			slots: []*domain.Slot{
				mkSlot(1, types.Window{Start: "09:00", End: "09:20"}, 0, 1, domain.SlotStatusAvailable),
				mkSlot(2, types.Window{Start: "09:10", End: "09:20"}, 0, 1, domain.SlotStatusAvailable),
			},
			wantErr: domain.ErrNoMatchingSlot,
		},
		{
			name: "terminal slots never match",
			slots: []*domain.Slot{
				mkSlot(1, nineTen, 0, 1, domain.SlotStatusCancelled),
				mkSlot(2, nineTen, 1, 1, domain.SlotStatusCompleted),
			},
			wantErr: domain.ErrNoMatchingSlot,
		},
		{
			name:    "empty",
			wantErr: domain.ErrNoMatchingSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.slots, nineTen, company)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestSelect_ComparesParsedWindows(t *testing.T) {
	s := mkSlot(1, types.Window{Start: "9:00", End: "09:10"}, 0, 1, domain.SlotStatusAvailable)

	got, err := Select([]*domain.Slot{s}, nineTen, company)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestSelect_Scope(t *testing.T) {
	jobSlot := mkSlot(1, nineTen, 0, 1, domain.SlotStatusAvailable)
	jobSlot.Scope = domain.Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)}

	_, err := Select([]*domain.Slot{jobSlot}, nineTen, domain.Scope{CompanyID: 1, JobID: ptr.Ptr[int64](8)})
	assert.ErrorIs(t, err, domain.ErrNoMatchingSlot)

	_, err = Select([]*domain.Slot{jobSlot}, nineTen, domain.Scope{CompanyID: 2})
	assert.ErrorIs(t, err, domain.ErrNoMatchingSlot)

	got, err := Select([]*domain.Slot{jobSlot}, nineTen, domain.Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestSelect_ScopeWithoutJob(t *testing.T) {
	jobSlot := mkSlot(1, nineTen, 0, 2, domain.SlotStatusAvailable)
	jobSlot.Scope = domain.Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)}
	companySlot := mkSlot(2, nineTen, 1, 2, domain.SlotStatusAvailable)

	// job slot is emptier but belongs to another job
	got, err := Select([]*domain.Slot{jobSlot, companySlot}, nineTen, domain.Scope{CompanyID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)

	_, err = Select([]*domain.Slot{jobSlot}, nineTen, domain.Scope{CompanyID: 1})
	assert.ErrorIs(t, err, domain.ErrNoMatchingSlot)
}

func TestSelect_CompanySlotServesJob(t *testing.T) {
	companySlot := mkSlot(2, nineTen, 0, 2, domain.SlotStatusAvailable)

	got, err := Select([]*domain.Slot{companySlot}, nineTen, domain.Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)

	_, err = Select([]*domain.Slot{companySlot}, nineTen, domain.Scope{CompanyID: 3, JobID: ptr.Ptr[int64](7)})
	assert.ErrorIs(t, err, domain.ErrNoMatchingSlot)
}

type failingRepo struct{}

func (failingRepo) Query(context.Context, domain.SlotFilter) ([]*domain.Slot, error) {
	return nil, errors.New("db down")
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	repo := slot.NewMemoryRepository()

	for _, it := range []domain.InterviewType{domain.InterviewTypeTechnical, domain.InterviewTypeBehavioral} {
		_, err := repo.Create(ctx, &domain.Slot{
			Date: date, StartTime: "09:00", EndTime: "09:10",
			InterviewType: it, MaxCapacity: 2, Scope: company,
		})
		require.NoError(t, err)
	}

	m := New(repo)

	got, err := m.Resolve(ctx, date, nineTen, company)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = m.Resolve(ctx, date, types.Window{Start: "10:00", End: "10:10"}, company)
	assert.ErrorIs(t, err, domain.ErrNoMatchingSlot)

	_, err = m.Resolve(ctx, date, types.Window{Start: "10:00", End: "09:10"}, company)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = New(failingRepo{}).Resolve(ctx, date, nineTen, company)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoMatchingSlot)
}
