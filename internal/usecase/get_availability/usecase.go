package get_availability

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/timegrid"
	"github.com/m04kA/interview-slots/pkg/types"
)

// UseCase собирает представление доступности на дату
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Execute возвращает окна, предлагаемые на дату, разделённые на свободные и занятые
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	slots, err := uc.slotRepo.Query(ctx, domain.SlotFilter{
		Date:      req.Date,
		CompanyID: req.CompanyID,
		JobID:     req.JobID,
		Statuses:  domain.LiveStatuses,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to query slots company=%d date=%s: %v",
			req.CompanyID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: query slots: %v", ErrInternal, err)
	}

	available, booked := partition(timegrid.Generate(req.Date), slots)

	uc.logger.Info("GetAvailability: company=%d date=%s slots=%d available=%d booked=%d",
		req.CompanyID, req.Date.Format(domain.DateFormat), len(slots), len(available), len(booked))

	return &Response{
		Date:      req.Date,
		Available: available,
		Booked:    booked,
	}, nil
}

type group struct {
	window   types.Window
	slots    []*domain.Slot
	allFull  bool
	capacity int
	bookings int
}

// partition группирует живые слоты по точному окну и раскладывает группы по
// ячейкам сетки, в которых они начинаются
func partition(grid []types.Window, slots []*domain.Slot) (available, booked []DisplayWindow) {
	groups := make(map[types.WindowKey]*group)
	for _, s := range slots {
		if s.Status.IsTerminal() {
			continue
		}
		key := s.Window().Key()
		g, ok := groups[key]
		if !ok {
			g = &group{window: s.Window(), allFull: true}
			groups[key] = g
		}
		g.slots = append(g.slots, s)
		g.capacity += s.MaxCapacity
		g.bookings += s.CurrentBookings
		if s.Status != domain.SlotStatusBooked {
			g.allFull = false
		}
	}

	byCell := make(map[types.WindowKey][]*group, len(groups))
	for _, g := range groups {
		cell, err := timegrid.CellOf(g.window.Start)
		if err != nil {
			continue
		}
		byCell[cell.Key()] = append(byCell[cell.Key()], g)
	}

	available = make([]DisplayWindow, 0)
	booked = make([]DisplayWindow, 0)
	for _, cell := range grid {
		cellGroups := byCell[cell.Key()]
		sort.Slice(cellGroups, func(i, j int) bool {
			a, b := cellGroups[i].window, cellGroups[j].window
			if a.Start.Minutes() != b.Start.Minutes() {
				return a.Start.Minutes() < b.Start.Minutes()
			}
			return a.End.Minutes() < b.End.Minutes()
		})

		for _, g := range cellGroups {
			dw := toDisplayWindow(g)
			if g.bookings >= g.capacity || g.allFull {
				booked = append(booked, dw)
			} else {
				available = append(available, dw)
			}
		}
	}

	return available, booked
}

func toDisplayWindow(g *group) DisplayWindow {
	ids := make([]int64, 0, len(g.slots))
	for _, s := range g.slots {
		ids = append(ids, s.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return DisplayWindow{
		Window:        g.window,
		Label12h:      g.window.Label12h(),
		TotalCapacity: g.capacity,
		TotalBookings: g.bookings,
		SlotIDs:       ids,
	}
}
