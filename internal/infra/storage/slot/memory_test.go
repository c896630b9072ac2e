package slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/pkg/ptr"
	"github.com/m04kA/interview-slots/pkg/types"
)

var testDate = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

func newSlot(start, end string, companyID int64, jobID *int64, it domain.InterviewType) *domain.Slot {
	return &domain.Slot{
		Date:          testDate,
		StartTime:     types.MustTimeString(start),
		EndTime:       types.MustTimeString(end),
		InterviewType: it,
		MaxCapacity:   2,
		Scope:         domain.Scope{CompanyID: companyID, JobID: jobID},
	}
}

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	in := newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeTechnical)
	in.Configuration = json.RawMessage(`{"difficulty":"medium"}`)
	in.CurrentBookings = 5
	in.Status = domain.SlotStatusBooked

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(1), created.Version)
	assert.Equal(t, 0, created.CurrentBookings)
	assert.Equal(t, domain.SlotStatusAvailable, created.Status)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestMemoryRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Create(ctx, newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeTechnical))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeTechnical))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// interview type, job and company are part of the identity
	_, err = repo.Create(ctx, newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeBehavioral))
	assert.NoError(t, err)
	_, err = repo.Create(ctx, newSlot("09:00", "09:10", 1, ptr.Ptr[int64](3), domain.InterviewTypeTechnical))
	assert.NoError(t, err)
	_, err = repo.Create(ctx, newSlot("09:00", "09:10", 2, nil, domain.InterviewTypeTechnical))
	assert.NoError(t, err)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, newSlot("09:00", "09:10", 1, ptr.Ptr[int64](3), domain.InterviewTypeTechnical))
	require.NoError(t, err)

	created.CurrentBookings = 2
	*created.Scope.JobID = 99

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentBookings)
	assert.Equal(t, int64(3), *got.Scope.JobID)
}

func TestMemoryRepository_Query(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	mustCreate := func(s *domain.Slot) *domain.Slot {
		created, err := repo.Create(ctx, s)
		require.NoError(t, err)
		return created
	}

	late := mustCreate(newSlot("10:00", "10:10", 1, nil, domain.InterviewTypeTechnical))
	early := mustCreate(newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeTechnical))
	jobSlot := mustCreate(newSlot("09:00", "09:10", 1, ptr.Ptr[int64](7), domain.InterviewTypeTechnical))
	mustCreate(newSlot("09:00", "09:10", 1, ptr.Ptr[int64](8), domain.InterviewTypeTechnical))
	mustCreate(newSlot("09:00", "09:10", 2, nil, domain.InterviewTypeTechnical))

	other := newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeTechnical)
	other.Date = testDate.AddDate(0, 0, 1)
	mustCreate(other)

	t.Run("company", func(t *testing.T) {
		got, err := repo.Query(ctx, domain.SlotFilter{Date: testDate, CompanyID: 1})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, early.ID, got[0].ID)
		assert.Equal(t, late.ID, got[3].ID)
	})

	t.Run("job includes company wide slots", func(t *testing.T) {
		got, err := repo.Query(ctx, domain.SlotFilter{Date: testDate, CompanyID: 1, JobID: ptr.Ptr[int64](7)})
		require.NoError(t, err)

		ids := make([]int64, 0, len(got))
		for _, s := range got {
			ids = append(ids, s.ID)
		}
		assert.Equal(t, []int64{early.ID, jobSlot.ID, late.ID}, ids)
	})

	t.Run("status", func(t *testing.T) {
		_, err := repo.ConditionalUpdate(ctx, late.ID, late.Version, domain.SlotUpdate{Status: domain.SlotStatusCancelled})
		require.NoError(t, err)

		got, err := repo.Query(ctx, domain.SlotFilter{Date: testDate, CompanyID: 1, Statuses: domain.LiveStatuses})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("interview type", func(t *testing.T) {
		it := domain.InterviewTypeCoding
		got, err := repo.Query(ctx, domain.SlotFilter{Date: testDate, CompanyID: 1, InterviewType: &it})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryRepository_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeTechnical))
	require.NoError(t, err)

	updated, err := repo.ConditionalUpdate(ctx, created.ID, 1, domain.SlotUpdate{CurrentBookings: 1, Status: domain.SlotStatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, 1, updated.CurrentBookings)

	_, err = repo.ConditionalUpdate(ctx, created.ID, 1, domain.SlotUpdate{CurrentBookings: 2, Status: domain.SlotStatusBooked})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.ConditionalUpdate(ctx, created.ID, 2, domain.SlotUpdate{CurrentBookings: 3, Status: domain.SlotStatusBooked})
	assert.ErrorIs(t, err, ErrInvalidUpdate)

	_, err = repo.ConditionalUpdate(ctx, 99, 1, domain.SlotUpdate{})
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestMemoryRepository_ConcurrentUpdatesSerialize(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeTechnical))
	require.NoError(t, err)

	const writers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ConditionalUpdate(ctx, created.ID, created.Version,
				domain.SlotUpdate{CurrentBookings: 1, Status: domain.SlotStatusAvailable})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestMemoryRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeTechnical))
	require.NoError(t, err)

	_, err = repo.ConditionalUpdate(ctx, created.ID, 1, domain.SlotUpdate{CurrentBookings: 1, Status: domain.SlotStatusAvailable})
	require.NoError(t, err)

	err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrSlotHasBookings)

	_, err = repo.ConditionalUpdate(ctx, created.ID, 2, domain.SlotUpdate{CurrentBookings: 0, Status: domain.SlotStatusAvailable})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrSlotNotFound)

	// the unique key is free again
	_, err = repo.Create(ctx, newSlot("09:00", "09:10", 1, nil, domain.InterviewTypeTechnical))
	assert.NoError(t, err)
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.ConditionalUpdate(ctx, 1, 1, domain.SlotUpdate{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23514"}))
	assert.True(t, isCheckViolation(&pq.Error{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
