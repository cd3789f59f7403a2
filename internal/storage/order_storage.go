package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderStorage определяет интерфейс для работы с заказами.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, pdfPath *string) error
	SetArtworkPath(ctx context.Context, id uuid.UUID, path string) error
	GetPendingFulfilment(ctx context.Context) ([]*models.Order, error)
}

// PostgresOrderStorage реализует OrderStorage для PostgreSQL.
type PostgresOrderStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStorage создаёт новый экземпляр PostgresOrderStorage.
func NewPostgresOrderStorage(pool *pgxpool.Pool) *PostgresOrderStorage {
	return &PostgresOrderStorage{pool: pool}
}

// Create создаёт черновик заказа и заполняет сгенерированные поля.
func (s *PostgresOrderStorage) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (status, cup_type, currency, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	amountVal := sql.NullString{}
	if order.Amount != nil {
		amountVal = sql.NullString{Valid: true, String: order.Amount.String()}
	}

	err := s.pool.QueryRow(ctx, query,
		order.Status,
		order.CupType,
		order.Currency,
		amountVal,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID возвращает заказ по идентификатору.
func (s *PostgresOrderStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT id, status, cup_type, currency, amount, artwork_path, pdf_path, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	return scanOrder(s.pool.QueryRow(ctx, query, id))
}

// UpdateStatus обновляет статус заказа и, опционально, ссылку на PDF.
func (s *PostgresOrderStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, pdfPath *string) error {
	query := `
		UPDATE orders
		SET status = $1, pdf_path = COALESCE($2, pdf_path), updated_at = NOW()
		WHERE id = $3
	`

	pdfVal := sql.NullString{}
	if pdfPath != nil {
		pdfVal = sql.NullString{Valid: true, String: *pdfPath}
	}

	result, err := s.pool.Exec(ctx, query, status, pdfVal, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// SetArtworkPath записывает ссылку на загруженный макет.
func (s *PostgresOrderStorage) SetArtworkPath(ctx context.Context, id uuid.UUID, path string) error {
	query := `
		UPDATE orders
		SET artwork_path = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.pool.Exec(ctx, query, path, id)
	if err != nil {
		return fmt.Errorf("failed to set artwork path: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// GetPendingFulfilment возвращает оплаченные заказы, ожидающие PDF и уведомления.
func (s *PostgresOrderStorage) GetPendingFulfilment(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT id, status, cup_type, currency, amount, artwork_path, pdf_path, created_at, updated_at
		FROM orders
		WHERE status IN ('paid', 'pdf_requested')
		ORDER BY updated_at ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return orders, nil
}

// scanOrder помогает читать заказ из строки результата.
func scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		order     models.Order
		amountStr sql.NullString
		artwork   sql.NullString
		pdfPath   sql.NullString
	)

	err := row.Scan(
		&order.ID,
		&order.Status,
		&order.CupType,
		&order.Currency,
		&amountStr,
		&artwork,
		&pdfPath,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	if amountStr.Valid {
		if dec, derr := decimal.NewFromString(amountStr.String); derr == nil {
			order.Amount = &dec
		}
	}
	if artwork.Valid {
		order.ArtworkPath = &artwork.String
	}
	if pdfPath.Valid {
		order.PdfPath = &pdfPath.String
	}

	return &order, nil
}
