package ledger

import (
	"context"
	"time"

	"github.com/invorya/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Es la unidad atómica del ledger: append, re-suma del balance y
// evaluación de alertas se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		alertRepo repository.StockAlertRepository,
	) error) error
}

// MovementEvent evento de movimiento confirmado, para los consumidores downstream
// (auditoría, reportes). Se emite después del Commit.
type MovementEvent struct {
	MovementID string
	CompanyID  string
	ProductID  string
	Type       string
	Reason     string
	Quantity   int64
	Balance    int64 // balance resultante tras el movimiento
	ActorID    string
	Correction bool // true cuando el evento proviene de CorrectMovement
	OccurredAt time.Time
}

// AlertEvent transición de severidad confirmada, para el notificador de alertas.
type AlertEvent struct {
	AlertID      string
	CompanyID    string
	ProductID    string
	From         string // severidad anterior (NORMAL si no había alerta activa)
	To           string // severidad nueva (NORMAL cuando solo se resuelve)
	CurrentStock int64
	Threshold    int64
	OccurredAt   time.Time
}

// EventPublisher puerto de publicación fire-and-forget. Las implementaciones no
// deben bloquear ni fallar el registro del movimiento.
type EventPublisher interface {
	MovementRecorded(ev MovementEvent)
	AlertChanged(ev AlertEvent)
}
