package repository

import (
	"time"

	"github.com/invorya/stock-ledger/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger append-only.
// SumByProduct es la re-suma autoritativa: se usa tanto para recalcular el balance
// materializado como para verificarlo de forma independiente.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// Delete elimina un movimiento (solo corrección administrativa).
	Delete(id string) error
	// SumByProduct suma los deltas de todos los movimientos restantes del producto.
	SumByProduct(productID string) (int64, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
