package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingService/pkg/psqlbuilder"
)

// Repository репозиторий бизнесов, их услуг и часов работы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бизнес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_user_id",
		"name",
		"email",
		"phone",
		"timezone",
		"calendar_id",
		"home_address",
		"booking_url",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Business
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.OwnerUserID,
		&b.Name,
		&b.Email,
		&b.Phone,
		&b.Timezone,
		&b.CalendarID,
		&b.HomeAddress,
		&b.BookingURL,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan business: %w", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// LockForBooking блокирует строку бизнеса до конца транзакции
// Сериализует создание бронирований одного бизнеса. Вне транзакции просто проверяет существование
func (r *Repository) LockForBooking(ctx context.Context, businessID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("businesses").
		Where(squirrel.Eq{"id": businessID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockForBooking - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBusinessNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: LockForBooking - scan id: %w", ErrScanRow, err)
	}

	return nil
}

// GetService получает услугу бизнеса
func (r *Repository) GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns()...).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	svc, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return svc, nil
}

// GetActiveServices получает активные услуги бизнеса
func (r *Repository) GetActiveServices(ctx context.Context, businessID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns()...).
		From("services").
		Where(squirrel.Eq{"business_id": businessID, "active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveServices - scan row: %w", ErrScanRow, err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// GetHours получает часы работы на день недели
// Возвращает ErrHoursNotFound, если записи нет
func (r *Repository) GetHours(ctx context.Context, businessID int64, day time.Weekday) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_closed",
	).
		From("business_hours").
		Where(squirrel.Eq{"business_id": businessID, "day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHours - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.BusinessHours
	var dayOfWeek int

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.BusinessID,
		&dayOfWeek,
		&hours.StartTime,
		&hours.EndTime,
		&hours.IsClosed,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHours - scan hours: %w", ErrScanRow, err)
	}

	hours.DayOfWeek = time.Weekday(dayOfWeek)

	return &hours, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func serviceColumns() []string {
	return []string{
		"id",
		"business_id",
		"name",
		"description",
		"duration_minutes",
		"price_cents",
		"active",
	}
}

func scanService(row rowScanner) (*domain.Service, error) {
	var svc domain.Service
	err := row.Scan(
		&svc.ID,
		&svc.BusinessID,
		&svc.Name,
		&svc.Description,
		&svc.DurationMinutes,
		&svc.PriceCents,
		&svc.Active,
	)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}
