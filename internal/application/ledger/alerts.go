package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
	"github.com/invorya/stock-ledger/internal/domain/stock"
)

// AlertTransition cambio de severidad producido por un cambio de balance.
type AlertTransition struct {
	From string
	To   string
}

// evaluateAlerts aplica la máquina de estados de severidad tras un cambio de balance.
// Reglas:
//   - misma severidad que la alerta activa: actualiza CurrentStock/Threshold en la
//     misma fila, sin duplicar (re-evaluar dos veces el mismo balance es idempotente);
//   - severidad distinta: resuelve la alerta activa (actor de sistema) y crea la nueva,
//     de modo que nunca queda más de una alerta activa por producto;
//   - NORMAL: resuelve la alerta activa si la hay.
//
// Devuelve la transición (nil si la severidad no cambió) y la alerta activa resultante
// (nil en zona normal).
func evaluateAlerts(
	alertRepo repository.StockAlertRepository,
	product *entity.Product,
	q int64,
	now time.Time,
) (*AlertTransition, *entity.StockAlert, error) {
	severity, threshold := stock.Severity(q, product.MinStock, product.MaxStock)

	active, err := alertRepo.GetActiveByProduct(product.ID)
	if err != nil {
		return nil, nil, err
	}

	from := stock.SeverityNormal
	if active != nil {
		from = active.AlertType
	}

	if severity == stock.SeverityNormal {
		if active == nil {
			return nil, nil, nil
		}
		if err := resolveAlert(alertRepo, active, entity.SystemActor, now); err != nil {
			return nil, nil, err
		}
		return &AlertTransition{From: from, To: stock.SeverityNormal}, nil, nil
	}

	if active != nil && active.AlertType == severity {
		// Misma zona: actualización en sitio, sin transición ni fila nueva.
		active.CurrentStock = q
		active.Threshold = threshold
		active.UpdatedAt = now
		if err := alertRepo.Update(active); err != nil {
			return nil, nil, err
		}
		return nil, active, nil
	}

	if active != nil {
		if err := resolveAlert(alertRepo, active, entity.SystemActor, now); err != nil {
			return nil, nil, err
		}
	}

	alert := &entity.StockAlert{
		ID:           uuid.New().String(),
		CompanyID:    product.CompanyID,
		ProductID:    product.ID,
		AlertType:    severity,
		CurrentStock: q,
		Threshold:    threshold,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := alertRepo.Create(alert); err != nil {
		return nil, nil, err
	}
	return &AlertTransition{From: from, To: severity}, alert, nil
}

func resolveAlert(alertRepo repository.StockAlertRepository, alert *entity.StockAlert, actorID string, now time.Time) error {
	resolvedAt := now
	alert.IsActive = false
	alert.ResolvedAt = &resolvedAt
	alert.ResolvedBy = actorID
	alert.UpdatedAt = now
	return alertRepo.Update(alert)
}
