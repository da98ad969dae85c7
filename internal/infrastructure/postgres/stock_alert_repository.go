package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo implementación de alertas de stock sobre PostgreSQL (usable con pool o tx).
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

// Create persiste una alerta nueva (activa).
func (r *StockAlertRepo) Create(alert *entity.StockAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_alerts (id, company_id, product_id, alert_type, current_stock, threshold, is_active, resolved_at, resolved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	resolvedBy := (*string)(nil)
	if alert.ResolvedBy != "" {
		resolvedBy = &alert.ResolvedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.CompanyID, alert.ProductID, alert.AlertType,
		alert.CurrentStock, alert.Threshold, alert.IsActive,
		alert.ResolvedAt, resolvedBy, alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// Update actualiza una alerta existente (en sitio o resolución).
func (r *StockAlertRepo) Update(alert *entity.StockAlert) error {
	query := `
		UPDATE stock_alerts
		SET current_stock = $2, threshold = $3, is_active = $4, resolved_at = $5, resolved_by = $6, updated_at = $7
		WHERE id = $1`
	resolvedBy := (*string)(nil)
	if alert.ResolvedBy != "" {
		resolvedBy = &alert.ResolvedBy
	}
	tag, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.CurrentStock, alert.Threshold, alert.IsActive,
		alert.ResolvedAt, resolvedBy, alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update alert: no existe %s", alert.ID)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *StockAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	query := `
		SELECT id, company_id, product_id, alert_type, current_stock, threshold, is_active, resolved_at, resolved_by, created_at, updated_at
		FROM stock_alerts WHERE id = $1`
	a, err := scanAlert(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// GetActiveByProduct devuelve la alerta activa del producto, o nil si no hay.
// El índice único parcial sobre (product_id) WHERE is_active respalda el invariante
// de una sola alerta activa.
func (r *StockAlertRepo) GetActiveByProduct(productID string) (*entity.StockAlert, error) {
	query := `
		SELECT id, company_id, product_id, alert_type, current_stock, threshold, is_active, resolved_at, resolved_by, created_at, updated_at
		FROM stock_alerts WHERE product_id = $1 AND is_active
		LIMIT 1`
	a, err := scanAlert(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active alert: %w", err)
	}
	return a, nil
}

// ListByCompany lista alertas de la empresa, activas o todas, más recientes primero.
func (r *StockAlertRepo) ListByCompany(companyID string, activeOnly bool, limit, offset int) ([]*entity.StockAlert, error) {
	query := `
		SELECT id, company_id, product_id, alert_type, current_stock, threshold, is_active, resolved_at, resolved_by, created_at, updated_at
		FROM stock_alerts WHERE company_id = $1`
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"

	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAlert(row pgx.Row) (*entity.StockAlert, error) {
	var a entity.StockAlert
	var resolvedBy *string
	if err := row.Scan(&a.ID, &a.CompanyID, &a.ProductID, &a.AlertType,
		&a.CurrentStock, &a.Threshold, &a.IsActive,
		&a.ResolvedAt, &resolvedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if resolvedBy != nil {
		a.ResolvedBy = *resolvedBy
	}
	return &a, nil
}
