// Package matcher resolves a caller-selected window to the concrete slot
// that should take the booking.
package matcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/pkg/types"
)

type SlotRepository interface {
	Query(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

type Matcher struct {
	repo SlotRepository
}

func New(repo SlotRepository) *Matcher {
	return &Matcher{repo: repo}
}

// Resolve loads the live slots of the date and scope and picks one with Select.
func (m *Matcher) Resolve(ctx context.Context, date time.Time, window types.Window, scope domain.Scope) (*domain.Slot, error) {
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	slots, err := m.repo.Query(ctx, domain.SlotFilter{
		Date:      date,
		CompanyID: scope.CompanyID,
		JobID:     scope.JobID,
		Statuses:  domain.LiveStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("matcher: query slots: %w", err)
	}

	return Select(slots, window, scope)
}

// Select picks among live slots with exactly the given window and scope.
// A caller with a job may also take a company-wide slot. Preference: remaining capacity, then fewer bookings,
// then creation order.
func Select(slots []*domain.Slot, window types.Window, scope domain.Scope) (*domain.Slot, error) {
	candidates := make([]*domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.Status.IsTerminal() || !s.Window().Equal(window) || !inScope(s.Scope, scope) {
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s for company %d", domain.ErrNoMatchingSlot, window, scope.CompanyID)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if aFree, bFree := a.RemainingCapacity() > 0, b.RemainingCapacity() > 0; aFree != bFree {
			return aFree
		}
		if a.CurrentBookings != b.CurrentBookings {
			return a.CurrentBookings < b.CurrentBookings
		}
		return a.ID < b.ID
	})

	return candidates[0], nil
}

func inScope(slot, requested domain.Scope) bool {
	if slot.Equal(requested) {
		return true
	}
	return requested.JobID != nil && slot.JobID == nil && slot.CompanyID == requested.CompanyID
}
