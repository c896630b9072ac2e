package slot

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/interview-slots/internal/domain"
)

type uniqueKey struct {
	date          string
	start, end    int
	companyID     int64
	jobID         int64
	interviewType domain.InterviewType
}

func keyOf(s *domain.Slot) uniqueKey {
	var job int64
	if s.Scope.JobID != nil {
		job = *s.Scope.JobID
	}
	return uniqueKey{
		date:          s.Date.Format(domain.DateFormat),
		start:         s.StartTime.Minutes(),
		end:           s.EndTime.Minutes(),
		companyID:     s.Scope.CompanyID,
		jobID:         job,
		interviewType: s.InterviewType,
	}
}

// MemoryRepository хранилище слотов в памяти процесса с теми же гарантиями,
// что и PostgreSQL: каждая операция атомарна, наружу отдаются только копии.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	slots  map[int64]*domain.Slot
	keys   map[uniqueKey]int64
	now    func() time.Time
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		slots: make(map[int64]*domain.Slot),
		keys:  make(map[uniqueKey]int64),
		now:   time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(slot)
	if _, ok := r.keys[key]; ok {
		return nil, fmt.Errorf("%w: %s %s for company %d", ErrDuplicate,
			key.date, slot.Window(), slot.Scope.CompanyID)
	}

	r.nextID++
	now := r.now()
	stored := slot.Clone()
	stored.ID = r.nextID
	y, m, d := slot.Date.Date()
	stored.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	stored.CurrentBookings = 0
	stored.Status = domain.SlotStatusAvailable
	stored.Version = 1
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.slots[stored.ID] = stored
	r.keys[key] = stored.ID

	return stored.Clone(), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return slot.Clone(), nil
}

func (r *MemoryRepository) Query(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	date := filter.Date.Format(domain.DateFormat)
	requested := domain.Scope{CompanyID: filter.CompanyID, JobID: filter.JobID}

	r.mu.Lock()
	result := make([]*domain.Slot, 0)
	for _, s := range r.slots {
		if s.Date.Format(domain.DateFormat) != date || !s.Scope.Covers(requested) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, s.Status) {
			continue
		}
		if filter.InterviewType != nil && s.InterviewType != *filter.InterviewType {
			continue
		}
		result = append(result, s.Clone())
	}
	r.mu.Unlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime.Minutes() != b.StartTime.Minutes() {
			return a.StartTime.Minutes() < b.StartTime.Minutes()
		}
		if a.EndTime.Minutes() != b.EndTime.Minutes() {
			return a.EndTime.Minutes() < b.EndTime.Minutes()
		}
		return a.ID < b.ID
	})

	return result, nil
}

func (r *MemoryRepository) ConditionalUpdate(ctx context.Context, id, expectedVersion int64, update domain.SlotUpdate) (*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	if slot.Version != expectedVersion {
		return nil, fmt.Errorf("%w: slot %d expected version %d", ErrVersionConflict, id, expectedVersion)
	}
	if update.CurrentBookings < 0 || update.CurrentBookings > slot.MaxCapacity || !update.Status.IsValid() {
		return nil, fmt.Errorf("%w: slot %d bookings=%d status=%s", ErrInvalidUpdate, id, update.CurrentBookings, update.Status)
	}

	slot.CurrentBookings = update.CurrentBookings
	slot.Status = update.Status
	slot.Version++
	slot.UpdatedAt = r.now()

	return slot.Clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	if slot.CurrentBookings > 0 {
		return fmt.Errorf("%w: slot %d", ErrSlotHasBookings, id)
	}

	delete(r.keys, keyOf(slot))
	delete(r.slots, id)
	return nil
}
