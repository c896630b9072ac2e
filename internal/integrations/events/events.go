// Package events публикует события жизненного цикла слотов для внешних
// потребителей (создание интервью, уведомления). События отправляются только
// после того, как изменение слота зафиксировано в хранилище.
package events

import (
	"context"
	"time"

	"github.com/m04kA/interview-slots/internal/domain"
)

// Type тип события
type Type string

const (
	TypeSlotCreated   Type = "created"
	TypeSlotBooked    Type = "booked"
	TypeSlotReleased  Type = "released"
	TypeSlotCancelled Type = "cancelled"
	TypeSlotCompleted Type = "completed"
	TypeSlotDeleted   Type = "deleted"
)

// Event событие по слоту
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Slot       SlotState `json:"slot"`
	ActorID    *int64    `json:"actor_id,omitempty"`
}

// SlotState снимок слота на момент события
type SlotState struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	InterviewType   string `json:"interview_type"`
	CompanyID       int64  `json:"company_id"`
	JobID           *int64 `json:"job_id,omitempty"`
	MaxCapacity     int    `json:"max_capacity"`
	CurrentBookings int    `json:"current_bookings"`
	Status          string `json:"status"`
	Version         int64  `json:"version"`
}

// NewSlotState снимок доменного слота
func NewSlotState(s *domain.Slot) SlotState {
	return SlotState{
		ID:              s.ID,
		Date:            s.Date.Format(domain.DateFormat),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		InterviewType:   string(s.InterviewType),
		CompanyID:       s.Scope.CompanyID,
		JobID:           s.Scope.JobID,
		MaxCapacity:     s.MaxCapacity,
		CurrentBookings: s.CurrentBookings,
		Status:          string(s.Status),
		Version:         s.Version,
	}
}

// Publisher отправляет события
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type actorKey struct{}

// WithActor кладёт ID пользователя, выполняющего операцию, в контекст
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext ID пользователя из контекста, если есть
func ActorFromContext(ctx context.Context) *int64 {
	if v, ok := ctx.Value(actorKey{}).(int64); ok {
		return &v
	}
	return nil
}

// NoopPublisher используется, когда NATS выключен
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
