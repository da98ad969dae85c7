package entity

import "time"

// StockBalance es la cantidad materializada por producto. Valor derivado, NO fuente
// de verdad: debe ser siempre igual a la suma de los movimientos del ledger y se
// recalcula con una re-suma completa en cada Append/Delete (nunca con += incremental),
// de modo que cualquier desvío previo se corrige solo.
type StockBalance struct {
	ProductID        string
	CompanyID        string
	Quantity         int64
	ReservedQuantity int64 // retenido contra pedidos salientes sin confirmar
	UpdatedAt        time.Time
}

// Available devuelve la cantidad disponible para salidas (Quantity - ReservedQuantity).
func (b *StockBalance) Available() int64 {
	return b.Quantity - b.ReservedQuantity
}
