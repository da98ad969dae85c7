package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores propios del ledger de stock.
	ErrProductNotTracked    = errors.New("el producto no maneja stock")
	ErrInvalidQuantity      = errors.New("la cantidad del movimiento debe ser distinta de cero")
	ErrAlertNotFound        = errors.New("alerta no encontrada")
	ErrAlertAlreadyResolved = errors.New("la alerta ya fue resuelta")

	// ErrLedgerUnavailable envuelve fallas de persistencia. La operación es atómica,
	// así que el caller puede reintentar sin riesgo de aplicar dos veces el movimiento.
	ErrLedgerUnavailable = errors.New("almacenamiento del ledger no disponible")
)

// InsufficientStockError salida (ISSUE/TRANSFER_OUT) rechazada por falta de stock disponible.
// Lleva ambas cantidades para que el caller decida (rechazar la venta, ofrecer backorder).
// Nunca se recorta la cantidad en silencio.
type InsufficientStockError struct {
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}
