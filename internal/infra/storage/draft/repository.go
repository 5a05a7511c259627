package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingService/pkg/psqlbuilder"
)

// Repository хранилище черновиков оформления между созданием платежа и подтверждением
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория черновиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save сохраняет черновик
func (r *Repository) Save(ctx context.Context, d *domain.CheckoutDraft) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("checkout_drafts").
		Columns(
			"session_id",
			"business_id",
			"service_id",
			"booking_date",
			"start_time",
			"name",
			"email",
			"phone",
			"address",
			"unit",
			"vehicle",
			"notes",
		).
		Values(
			d.SessionID,
			d.BusinessID,
			d.ServiceID,
			d.Date,
			d.Time,
			d.Name,
			d.Email,
			d.Phone,
			d.Address,
			d.Unit,
			d.Vehicle,
			d.Notes,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return fmt.Errorf("%w: Save - execute insert: %w", ErrExecQuery, err)
	}
	d.CreatedAt = createdAt.Time

	return nil
}

// AttachPaymentSession сохраняет ID сессии платежного провайдера
func (r *Repository) AttachPaymentSession(ctx context.Context, sessionID, paymentSessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("checkout_drafts").
		Set("payment_session_id", paymentSessionID).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AttachPaymentSession - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AttachPaymentSession - execute update: %w", ErrExecQuery, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrDraftNotFound
	}

	return nil
}

// Get читает черновик без удаления
func (r *Repository) Get(ctx context.Context, sessionID string) (*domain.CheckoutDraft, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(draftColumns()...).
		From("checkout_drafts").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDraft(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan draft: %w", ErrScanRow, err)
	}

	return d, nil
}

// Take удаляет черновик и возвращает его
// Повторный вызов для той же сессии вернёт ErrDraftNotFound
func (r *Repository) Take(ctx context.Context, sessionID string) (*domain.CheckoutDraft, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("checkout_drafts").
		Where(squirrel.Eq{"session_id": sessionID}).
		Suffix("RETURNING " + strings.Join(draftColumns(), ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Take - build delete query: %v", ErrBuildQuery, err)
	}

	d, err := scanDraft(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Take - scan draft: %w", ErrScanRow, err)
	}

	return d, nil
}

// Delete удаляет черновик. Отсутствие черновика не считается ошибкой
func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("checkout_drafts").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

func draftColumns() []string {
	return []string{
		"session_id",
		"business_id",
		"service_id",
		"to_char(booking_date, 'YYYY-MM-DD')",
		"start_time",
		"name",
		"email",
		"phone",
		"address",
		"unit",
		"vehicle",
		"notes",
		"payment_session_id",
		"created_at",
	}
}

func scanDraft(row *sql.Row) (*domain.CheckoutDraft, error) {
	var d domain.CheckoutDraft
	var createdAt sql.NullTime

	err := row.Scan(
		&d.SessionID,
		&d.BusinessID,
		&d.ServiceID,
		&d.Date,
		&d.Time,
		&d.Name,
		&d.Email,
		&d.Phone,
		&d.Address,
		&d.Unit,
		&d.Vehicle,
		&d.Notes,
		&d.PaymentSessionID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	d.CreatedAt = createdAt.Time

	return &d, nil
}
