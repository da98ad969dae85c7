package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// El ledger de stock solo LEE TracksStock, MinStock y MaxStock; nunca los modifica.
// Quantity vive en StockBalance y se deriva de los movimientos.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	TracksStock bool
	MinStock    int64 // umbral LOW_STOCK: q <= MinStock
	MaxStock    int64 // umbral OVERSTOCK: q > MaxStock (MinStock < MaxStock si TracksStock)
	CostPrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
