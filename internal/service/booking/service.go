package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/integrations/events"
)

// DefaultMaxAttempts попыток conditional update до отказа
const DefaultMaxAttempts = 3

const (
	opBook     = "book"
	opRelease  = "release"
	opCancel   = "cancel"
	opComplete = "complete"

	outcomeSuccess        = "success"
	outcomeNoop           = "noop"
	outcomeRejected       = "rejected"
	outcomeExhausted      = "exhausted"
	outcomeOutcomeUnknown = "outcome_unknown"
	outcomeError          = "error"
)

// Coordinator единственный писатель current_bookings и status.
// Все изменения идут через ConditionalUpdate с проверкой версии;
// при конфликте версия перечитывается, без задержки, не более maxAttempts раз.
type Coordinator struct {
	repo        SlotRepository
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
	maxAttempts int
}

// NewCoordinator создает координатор бронирований
func NewCoordinator(
	repo SlotRepository,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
	maxAttempts int,
) *Coordinator {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Coordinator{
		repo:        repo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// transition вычисляет изменение по свежепрочитанному слоту.
// write=false означает, что слот уже в нужном состоянии.
type transition func(slot *domain.Slot) (update domain.SlotUpdate, write bool, err error)

// Book занимает одно место в слоте. Возвращённый слот единственное
// подтверждение брони.
func (c *Coordinator) Book(ctx context.Context, slotID int64) (*domain.Slot, error) {
	slot, _, err := c.apply(ctx, opBook, slotID, bookTransition, domain.ErrBookingFailed)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, events.TypeSlotBooked, slot)
	return slot, nil
}

// Release освобождает одно место. Освобождение пустого слота успешно и
// ничего не пишет.
func (c *Coordinator) Release(ctx context.Context, slotID int64) (*domain.Slot, error) {
	slot, written, err := c.apply(ctx, opRelease, slotID, releaseTransition, domain.ErrReleaseFailed)
	if err != nil {
		return nil, err
	}
	if written {
		c.publish(ctx, events.TypeSlotReleased, slot)
	}
	return slot, nil
}

// Cancel переводит слот без бронирований в CANCELLED
func (c *Coordinator) Cancel(ctx context.Context, slotID int64) (*domain.Slot, error) {
	slot, written, err := c.apply(ctx, opCancel, slotID, cancelTransition, domain.ErrVersionConflict)
	if err != nil {
		return nil, err
	}
	if written {
		c.publish(ctx, events.TypeSlotCancelled, slot)
	}
	return slot, nil
}

// Complete переводит слот в COMPLETED; бронирования сохраняются
func (c *Coordinator) Complete(ctx context.Context, slotID int64) (*domain.Slot, error) {
	slot, written, err := c.apply(ctx, opComplete, slotID, completeTransition, domain.ErrVersionConflict)
	if err != nil {
		return nil, err
	}
	if written {
		c.publish(ctx, events.TypeSlotCompleted, slot)
	}
	return slot, nil
}

func (c *Coordinator) apply(
	ctx context.Context,
	op string,
	slotID int64,
	fn transition,
	exhausted error,
) (*domain.Slot, bool, error) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		slot, err := c.repo.GetByID(ctx, slotID)
		if err != nil {
			return nil, false, c.readError(op, slotID, err)
		}

		update, write, err := fn(slot)
		if err != nil {
			c.metrics.ObserveBooking(op, outcomeRejected)
			c.logger.Info("%s: slot id=%d rejected: %v", op, slotID, err)
			return nil, false, err
		}
		if !write {
			c.metrics.ObserveBooking(op, outcomeNoop)
			return slot, false, nil
		}

		updated, err := c.repo.ConditionalUpdate(ctx, slotID, slot.Version, update)
		if err == nil {
			c.metrics.ObserveBooking(op, outcomeSuccess)
			c.logger.Info("%s: slot id=%d bookings=%d/%d status=%s version=%d",
				op, slotID, updated.CurrentBookings, updated.MaxCapacity, updated.Status, updated.Version)
			return updated, true, nil
		}

		if errors.Is(err, domain.ErrVersionConflict) {
			c.metrics.ObserveConflict(op)
			c.logger.Debug("%s: slot id=%d version %d conflict, attempt %d/%d",
				op, slotID, slot.Version, attempt, c.maxAttempts)
			continue
		}

		return nil, false, c.writeError(ctx, op, slotID, err)
	}

	c.metrics.ObserveBooking(op, outcomeExhausted)
	c.logger.Warn("%s: slot id=%d gave up after %d conflicting attempts", op, slotID, c.maxAttempts)
	return nil, false, fmt.Errorf("%w: slot %d changed concurrently %d times", exhausted, slotID, c.maxAttempts)
}

// readError ошибка чтения: запись ещё не отправлялась, исход известен
func (c *Coordinator) readError(op string, slotID int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		c.metrics.ObserveBooking(op, outcomeRejected)
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.metrics.ObserveBooking(op, outcomeError)
		return fmt.Errorf("%s: read slot %d: %w", op, slotID, err)
	default:
		c.metrics.ObserveBooking(op, outcomeError)
		c.logger.Error("%s: read slot id=%d: %v", op, slotID, err)
		return fmt.Errorf("%w: %s - read slot %d: %v", ErrInternal, op, slotID, err)
	}
}

// writeError ошибка conditional update. Если истёк контекст, запись могла
// примениться: возвращаем ErrOutcomeUnknown и не повторяем.
func (c *Coordinator) writeError(ctx context.Context, op string, slotID int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		c.metrics.ObserveBooking(op, outcomeRejected)
		return err
	case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.metrics.ObserveBooking(op, outcomeOutcomeUnknown)
		c.logger.Warn("%s: slot id=%d write outcome unknown: %v", op, slotID, err)
		return fmt.Errorf("%w: slot %d: %v", domain.ErrOutcomeUnknown, slotID, err)
	default:
		c.metrics.ObserveBooking(op, outcomeError)
		c.logger.Error("%s: update slot id=%d: %v", op, slotID, err)
		return fmt.Errorf("%w: %s - update slot %d: %v", ErrInternal, op, slotID, err)
	}
}

// publish ошибки публикации не отменяют уже зафиксированное изменение
func (c *Coordinator) publish(ctx context.Context, t events.Type, slot *domain.Slot) {
	event := events.Event{
		Type:    t,
		Slot:    events.NewSlotState(slot),
		ActorID: events.ActorFromContext(ctx),
	}
	if err := c.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		c.logger.Warn("publish %s event for slot id=%d: %v", t, slot.ID, err)
	}
}

func bookTransition(slot *domain.Slot) (domain.SlotUpdate, bool, error) {
	if slot.Status.IsTerminal() {
		return domain.SlotUpdate{}, false, fmt.Errorf("%w: slot %d is %s", domain.ErrNotAvailable, slot.ID, slot.Status)
	}
	if slot.IsFull() {
		return domain.SlotUpdate{}, false, fmt.Errorf("%w: slot %d is full (%d/%d)",
			domain.ErrNotAvailable, slot.ID, slot.CurrentBookings, slot.MaxCapacity)
	}

	bookings := slot.CurrentBookings + 1
	return domain.SlotUpdate{
		CurrentBookings: bookings,
		Status:          deriveStatus(bookings, slot.MaxCapacity, slot.Status),
	}, true, nil
}

func releaseTransition(slot *domain.Slot) (domain.SlotUpdate, bool, error) {
	if slot.Status.IsTerminal() {
		return domain.SlotUpdate{}, false, fmt.Errorf("%w: slot %d is %s", domain.ErrNotAvailable, slot.ID, slot.Status)
	}
	if slot.CurrentBookings <= 0 {
		return domain.SlotUpdate{}, false, nil
	}

	bookings := slot.CurrentBookings - 1
	return domain.SlotUpdate{
		CurrentBookings: bookings,
		Status:          deriveStatus(bookings, slot.MaxCapacity, slot.Status),
	}, true, nil
}

func cancelTransition(slot *domain.Slot) (domain.SlotUpdate, bool, error) {
	switch slot.Status {
	case domain.SlotStatusCancelled:
		return domain.SlotUpdate{}, false, nil
	case domain.SlotStatusCompleted:
		return domain.SlotUpdate{}, false, fmt.Errorf("%w: slot %d is already %s", domain.ErrTerminalState, slot.ID, slot.Status)
	}
	if slot.CurrentBookings > 0 {
		return domain.SlotUpdate{}, false, fmt.Errorf("%w: slot %d has %d", domain.ErrSlotHasBookings, slot.ID, slot.CurrentBookings)
	}
	return domain.SlotUpdate{
		CurrentBookings: slot.CurrentBookings,
		Status:          domain.SlotStatusCancelled,
	}, true, nil
}

func completeTransition(slot *domain.Slot) (domain.SlotUpdate, bool, error) {
	switch slot.Status {
	case domain.SlotStatusCompleted:
		return domain.SlotUpdate{}, false, nil
	case domain.SlotStatusCancelled:
		return domain.SlotUpdate{}, false, fmt.Errorf("%w: slot %d is already %s", domain.ErrTerminalState, slot.ID, slot.Status)
	}
	return domain.SlotUpdate{
		CurrentBookings: slot.CurrentBookings,
		Status:          domain.SlotStatusCompleted,
	}, true, nil
}
