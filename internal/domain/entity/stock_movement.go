package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger.
const (
	MovementTypeRECEIPT     = "RECEIPT"      // entrada por compra/producción
	MovementTypeISSUE       = "ISSUE"        // salida por venta/consumo
	MovementTypeADJUSTMENT  = "ADJUSTMENT"   // ajuste, admite ambos signos
	MovementTypeTRANSFERIN  = "TRANSFER_IN"  // entrada por traslado
	MovementTypeTRANSFEROUT = "TRANSFER_OUT" // salida por traslado
	MovementTypeRETURN      = "RETURN"       // devolución de cliente
)

// Motivos categóricos de movimiento.
const (
	ReasonPURCHASE   = "PURCHASE"
	ReasonSALE       = "SALE"
	ReasonDAMAGED    = "DAMAGED"
	ReasonINITIAL    = "INITIAL"
	ReasonTRANSFER   = "TRANSFER"
	ReasonCORRECTION = "CORRECTION"
	ReasonRETURN     = "RETURN"
	ReasonOTHER      = "OTHER"
)

// StockMovement es un evento del ledger append-only: la fuente de verdad de la cantidad.
// Inmutable una vez creado; solo se elimina como corrección administrativa.
// Quantity es el delta firmado: positivo sube el balance, negativo lo baja. Nunca cero.
type StockMovement struct {
	ID        string
	CompanyID string
	ProductID string
	Type      string
	Reason    string
	Quantity  int64
	UnitCost  *decimal.Decimal // opcional, costo unitario del movimiento
	Reference string           // documento de referencia (factura, orden, nota)
	Notes     string
	CreatedAt time.Time
	CreatedBy string // UserID o actor de sistema
}

// IsOutboundType indica si el tipo descuenta stock y exige chequeo de disponibilidad.
func IsOutboundType(movementType string) bool {
	return movementType == MovementTypeISSUE || movementType == MovementTypeTRANSFEROUT
}

// IsInboundType indica si el tipo suma stock.
func IsInboundType(movementType string) bool {
	switch movementType {
	case MovementTypeRECEIPT, MovementTypeTRANSFERIN, MovementTypeRETURN:
		return true
	}
	return false
}

// ValidMovementType valida el tipo contra el conjunto cerrado del ledger.
func ValidMovementType(movementType string) bool {
	return IsInboundType(movementType) || IsOutboundType(movementType) ||
		movementType == MovementTypeADJUSTMENT
}
