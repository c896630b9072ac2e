package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/pkg/psqlbuilder"
)

const (
	tableName = "interview_slots"

	// uniqueViolation код ошибки PostgreSQL unique_violation
	uniqueViolation = "23505"
	// checkViolation код ошибки PostgreSQL check_violation
	checkViolation = "23514"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"interview_type",
	"max_capacity",
	"current_bookings",
	"status",
	"company_id",
	"job_id",
	"configuration",
	"version",
	"created_at",
	"updated_at",
}

// Repository хранилище слотов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый слот. Счётчик бронирований, статус и версия
// выставляются базой: 0, AVAILABLE, 1.
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"slot_date",
			"start_time",
			"end_time",
			"interview_type",
			"max_capacity",
			"company_id",
			"job_id",
			"configuration",
		).
		Values(
			slot.Date.Format(domain.DateFormat),
			slot.StartTime,
			slot.EndTime,
			slot.InterviewType,
			slot.MaxCapacity,
			slot.Scope.CompanyID,
			slot.Scope.JobID,
			nullableJSON(slot.Configuration),
		).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanSlot(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s %s for company %d", ErrDuplicate,
				slot.Date.Format(domain.DateFormat), slot.Window(), slot.Scope.CompanyID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// Query возвращает слоты компании на дату, упорядоченные по окну и ID.
// Если указан JobID, в выборку попадают слоты этой вакансии и слоты без вакансии.
func (r *Repository) Query(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	builder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"slot_date":  filter.Date.Format(domain.DateFormat),
			"company_id": filter.CompanyID,
		}).
		OrderBy("slot_date", "start_time", "end_time", "id")

	if filter.JobID != nil {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"job_id": nil},
			squirrel.Eq{"job_id": *filter.JobID},
		})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}
	if filter.InterviewType != nil {
		builder = builder.Where(squirrel.Eq{"interview_type": string(*filter.InterviewType)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Query - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Query - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Query - scan slot: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Query - iterate rows: %w", ErrScanRow, err)
	}

	return slots, nil
}

// ConditionalUpdate записывает счётчик и статус одним UPDATE, только если
// версия в базе совпадает с expectedVersion. Версия увеличивается на 1.
func (r *Repository) ConditionalUpdate(ctx context.Context, id, expectedVersion int64, update domain.SlotUpdate) (*domain.Slot, error) {
	query, args, err := psqlbuilder.Update(tableName).
		Set("current_bookings", update.CurrentBookings).
		Set("status", string(update.Status)).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ConditionalUpdate - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(r.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return slot, nil
	}
	if isCheckViolation(err) {
		return nil, fmt.Errorf("%w: slot %d: %v", ErrInvalidUpdate, id, err)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: ConditionalUpdate - execute update: %w", ErrExecQuery, err)
	}

	// Ни одна строка не обновлена: слот удалён или версия ушла вперёд
	exists, err := r.exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSlotNotFound
	}
	return nil, fmt.Errorf("%w: slot %d expected version %d", ErrVersionConflict, id, expectedVersion)
}

// Delete удаляет слот без бронирований
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "current_bookings": 0}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSlotNotFound
	}
	return fmt.Errorf("%w: slot %d", ErrSlotHasBookings, id)
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - execute query: %w", ErrExecQuery, err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		slot                 domain.Slot
		date                 time.Time
		jobID                sql.NullInt64
		configuration        []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.InterviewType,
		&slot.MaxCapacity,
		&slot.CurrentBookings,
		&slot.Status,
		&slot.Scope.CompanyID,
		&jobID,
		&configuration,
		&slot.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if jobID.Valid {
		job := jobID.Int64
		slot.Scope.JobID = &job
	}
	if len(configuration) > 0 {
		slot.Configuration = append([]byte(nil), configuration...)
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func columnList() string {
	return strings.Join(slotColumns, ", ")
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == checkViolation
}
