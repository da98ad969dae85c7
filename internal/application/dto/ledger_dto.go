package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest entrada para registrar un movimiento de stock.
// Quantity es la magnitud (positiva) para todos los tipos salvo ADJUSTMENT,
// donde se admite con signo; el caso de uso normaliza el delta según el tipo.
type RecordMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Type      string           `json:"type" validate:"required"`
	Reason    string           `json:"reason"`
	Quantity  int64            `json:"quantity" validate:"required"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
	Reference string           `json:"reference"`
	Notes     string           `json:"notes"`
}

// AlertTransitionDTO cambio de severidad producido por un movimiento.
type AlertTransitionDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MovementResponse resultado de registrar un movimiento: balance resultante
// y la transición de alerta si la severidad cambió.
type MovementResponse struct {
	MovementID string              `json:"movement_id"`
	ProductID  string              `json:"product_id"`
	Balance    int64               `json:"balance"`
	Transition *AlertTransitionDTO `json:"alert_transition,omitempty"`
}

// MovementDTO un movimiento del ledger en listados.
type MovementDTO struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`
	Reason    string           `json:"reason"`
	Quantity  int64            `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference string           `json:"reference,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	CreatedBy string           `json:"created_by"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}

// BalanceResponse balance actual de un producto. Tracked=false cuando el producto
// no maneja stock: en ese caso las cantidades no son significativas.
type BalanceResponse struct {
	ProductID string    `json:"product_id"`
	Tracked   bool      `json:"tracked"`
	Quantity  int64     `json:"quantity"`
	Reserved  int64     `json:"reserved_quantity"`
	Available int64     `json:"available_quantity"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// BalanceListResponse balances de la empresa para el consumidor de reportes.
type BalanceListResponse struct {
	Items []BalanceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AlertDTO una alerta de stock.
type AlertDTO struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	AlertType    string     `json:"alert_type"`
	CurrentStock int64      `json:"current_stock"`
	Threshold    int64      `json:"threshold"`
	IsActive     bool       `json:"is_active"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy   string     `json:"resolved_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AlertListResponse lista de alertas.
type AlertListResponse struct {
	Items []AlertDTO   `json:"items"`
	Page  PageResponse `json:"page"`
}
