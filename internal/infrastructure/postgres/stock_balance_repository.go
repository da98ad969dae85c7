package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación del balance materializado sobre PostgreSQL (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el balance actual de un producto. Si no hay fila aún, devuelve cero.
func (r *StockBalanceRepo) Get(productID string) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, company_id, quantity, reserved_quantity, updated_at
		FROM stock_balances WHERE product_id = $1`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&b.ProductID, &b.CompanyID, &b.Quantity, &b.ReservedQuantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate asegura la fila del balance y la bloquea (SELECT ... FOR UPDATE) por la
// duración de la transacción. El INSERT previo cubre el primer movimiento del producto:
// sin fila no habría nada que bloquear y dos primeras salidas podrían cruzarse.
func (r *StockBalanceRepo) GetForUpdate(productID string) (*entity.StockBalance, error) {
	ensure := `
		INSERT INTO stock_balances (product_id, company_id, quantity, reserved_quantity, updated_at)
		VALUES ($1, '', 0, 0, now())
		ON CONFLICT (product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), ensure, productID); err != nil {
		return nil, fmt.Errorf("ensure balance row: %w", err)
	}
	query := `
		SELECT product_id, company_id, quantity, reserved_quantity, updated_at
		FROM stock_balances WHERE product_id = $1
		FOR UPDATE`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&b.ProductID, &b.CompanyID, &b.Quantity, &b.ReservedQuantity, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el balance del producto.
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (product_id, company_id, quantity, reserved_quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id)
		DO UPDATE SET company_id = EXCLUDED.company_id, quantity = EXCLUDED.quantity,
		              reserved_quantity = EXCLUDED.reserved_quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ProductID, balance.CompanyID, balance.Quantity, balance.ReservedQuantity)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// ListByCompany lista los balances de la empresa (lectura masiva para reportes).
func (r *StockBalanceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockBalance, error) {
	query := `
		SELECT product_id, company_id, quantity, reserved_quantity, updated_at
		FROM stock_balances WHERE company_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(&b.ProductID, &b.CompanyID, &b.Quantity, &b.ReservedQuantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
