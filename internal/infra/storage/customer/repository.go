package customer

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

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOrCreateByEmail находит клиента по email или создает нового
// Имя и телефон существующего клиента обновляются последними введёнными
func (r *Repository) GetOrCreateByEmail(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("user_id", "name", "email", "phone").
		Values(c.UserID, c.Name, strings.ToLower(strings.TrimSpace(c.Email)), c.Phone).
		Suffix("ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone " +
			"RETURNING id, user_id, name, email, phone, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreateByEmail - build upsert query: %v", ErrBuildQuery, err)
	}

	customer, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreateByEmail - scan customer: %w", ErrScanRow, err)
	}

	return customer, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "name", "email", "phone", "created_at").
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	customer, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %w", ErrScanRow, err)
	}

	return customer, nil
}

func scanCustomer(row *sql.Row) (*domain.Customer, error) {
	var c domain.Customer
	var createdAt sql.NullTime

	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &createdAt); err != nil {
		return nil, err
	}
	c.CreatedAt = createdAt.Time

	return &c, nil
}
