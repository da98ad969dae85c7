package repository

import "github.com/invorya/stock-ledger/internal/domain/entity"

// StockBalanceRepository define el puerto del balance materializado por producto.
// Usado dentro de transacciones para garantizar consistencia con el ledger.
type StockBalanceRepository interface {
	Get(productID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	// GetForUpdate bloquea la fila del balance (SELECT FOR UPDATE) por la duración
	// de la transacción: serializa los movimientos concurrentes del mismo producto.
	GetForUpdate(productID string) (*entity.StockBalance, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.StockBalance, error)
}
