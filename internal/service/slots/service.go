package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/integrations/events"
	"github.com/m04kA/interview-slots/internal/service/slots/models"
	"github.com/m04kA/interview-slots/pkg/types"
)

// Service создание, чтение и удаление слотов. Счётчик бронирований и статус
// здесь не меняются: это делает booking.Coordinator.
type Service struct {
	repo      SlotRepository
	publisher EventPublisher
	logger    Logger
	hours     types.Window
	location  *time.Location
	now       func() time.Time
}

// NewService создает сервис слотов для заданных рабочих часов и часового пояса
func NewService(
	repo SlotRepository,
	publisher EventPublisher,
	logger Logger,
	hours types.Window,
	location *time.Location,
) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		hours:     hours,
		location:  location,
		now:       time.Now,
	}
}

// Create проверяет входные данные до записи и сохраняет слот
func (s *Service) Create(ctx context.Context, in models.CreateSlotInput) (*domain.Slot, error) {
	if err := s.validateCreate(in); err != nil {
		s.logger.Warn("Create: invalid slot %s %s company=%d: %v",
			in.Date.Format(domain.DateFormat), in.Window, in.Scope.CompanyID, err)
		return nil, err
	}

	slot, err := s.repo.Create(ctx, &domain.Slot{
		Date:          in.Date,
		StartTime:     in.Window.Start,
		EndTime:       in.Window.End,
		InterviewType: in.InterviewType,
		MaxCapacity:   in.MaxCapacity,
		Scope:         in.Scope,
		Configuration: in.Configuration,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			s.logger.Warn("Create: duplicate slot: %v", err)
			return nil, err
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: slot id=%d %s %s type=%s capacity=%d company=%d",
		slot.ID, slot.Date.Format(domain.DateFormat), slot.Window(), slot.InterviewType,
		slot.MaxCapacity, slot.Scope.CompanyID)
	s.publish(ctx, events.TypeSlotCreated, slot)

	return slot, nil
}

// Get возвращает слот по ID
func (s *Service) Get(ctx context.Context, id int64) (*domain.Slot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			return nil, err
		}
		s.logger.Error("Get: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return slot, nil
}

// List возвращает слоты на дату в порядке окна
func (s *Service) List(ctx context.Context, in models.ListSlotsInput) ([]*domain.Slot, error) {
	if in.Scope.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: company id is required", domain.ErrValidation)
	}
	for _, st := range in.Statuses {
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, st)
		}
	}
	if in.InterviewType != nil {
		if err := domain.ValidateInterviewType(*in.InterviewType); err != nil {
			return nil, err
		}
	}

	slots, err := s.repo.Query(ctx, domain.SlotFilter{
		Date:          in.Date,
		CompanyID:     in.Scope.CompanyID,
		JobID:         in.Scope.JobID,
		Statuses:      in.Statuses,
		InterviewType: in.InterviewType,
	})
	if err != nil {
		s.logger.Error("List: repository error for company=%d date=%s: %v",
			in.Scope.CompanyID, in.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return slots, nil
}

// Delete удаляет слот без бронирований
func (s *Service) Delete(ctx context.Context, id int64) error {
	slot, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) || errors.Is(err, domain.ErrSlotHasBookings) {
			s.logger.Warn("Delete: slot id=%d: %v", id, err)
			return err
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: slot id=%d deleted", id)
	s.publish(ctx, events.TypeSlotDeleted, slot)
	return nil
}

// Today текущая дата в часовом поясе бизнеса
func (s *Service) Today() time.Time {
	y, m, d := s.now().In(s.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) validateCreate(in models.CreateSlotInput) error {
	if in.Scope.CompanyID <= 0 {
		return fmt.Errorf("%w: company id is required", domain.ErrValidation)
	}
	if in.Scope.JobID != nil && *in.Scope.JobID <= 0 {
		return fmt.Errorf("%w: job id must be positive", domain.ErrValidation)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if in.Date.Before(s.Today()) {
		return fmt.Errorf("%w: date %s is in the past", domain.ErrValidation, in.Date.Format(domain.DateFormat))
	}
	if err := domain.ValidateWindow(in.Window, s.hours); err != nil {
		return err
	}
	if err := domain.ValidateCapacity(in.MaxCapacity); err != nil {
		return err
	}
	if err := domain.ValidateInterviewType(in.InterviewType); err != nil {
		return err
	}
	return domain.ValidateConfiguration(in.Configuration)
}

func (s *Service) publish(ctx context.Context, t events.Type, slot *domain.Slot) {
	event := events.Event{
		Type:    t,
		Slot:    events.NewSlotState(slot),
		ActorID: events.ActorFromContext(ctx),
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("publish %s event for slot id=%d: %v", t, slot.ID, err)
	}
}
