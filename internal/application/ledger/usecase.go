package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/stock-ledger/internal/domain"
	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

// LedgerUseCase orquesta el ledger de stock: registra y corrige movimientos de forma
// transaccional con bloqueo de fila por producto, mantiene el balance materializado
// igual a la suma del ledger y aplica la máquina de estados de alertas.
// Es el único punto de entrada de los callers; no hay hooks implícitos: la cadena
// append -> re-suma -> evaluación de alertas es explícita y ocurre en una transacción.
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	balanceRepo  repository.StockBalanceRepository
	alertRepo    repository.StockAlertRepository
	publisher    EventPublisher
}

// NewLedgerUseCase construye el caso de uso. Los repos sueltos se usan para lecturas
// fuera de transacción; las escrituras pasan siempre por txRunner.
// publisher puede ser nil (sin consumidores downstream).
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	alertRepo repository.StockAlertRepository,
	publisher EventPublisher,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		balanceRepo:  balanceRepo,
		alertRepo:    alertRepo,
		publisher:    publisher,
	}
}

// MovementInput entrada para registrar un movimiento.
// Quantity es la magnitud (> 0) para todos los tipos salvo ADJUSTMENT, que admite
// ambos signos; el delta firmado se normaliza según el tipo.
type MovementInput struct {
	CompanyID string
	UserID    string
	ProductID string
	Type      string
	Reason    string
	Quantity  int64
	UnitCost  *decimal.Decimal
	Reference string
	Notes     string
}

// MovementResult balance resultante y transición de alerta (nil si la severidad no cambió).
type MovementResult struct {
	MovementID string
	ProductID  string
	Balance    int64
	Transition *AlertTransition
}

// RecordMovement registra un movimiento: valida, normaliza el signo, y dentro de una
// transacción bloquea la fila del balance (serializa movimientos concurrentes del
// mismo producto), verifica disponibilidad para salidas, apendea al ledger, recalcula
// el balance con una re-suma completa y re-evalúa las alertas. Todo confirma junto;
// un timeout antes del Commit no deja estado parcial.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity == 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if input.Type != entity.MovementTypeADJUSTMENT && input.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	reason := input.Reason
	if reason == "" {
		reason = entity.ReasonOTHER
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, classify(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}
	if !product.TracksStock {
		return nil, domain.ErrProductNotTracked
	}

	delta := normalizeDelta(input.Type, input.Quantity)
	now := time.Now()

	var (
		result  MovementResult
		alertEv *AlertEvent
	)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		alertRepo repository.StockAlertRepository,
	) error {
		// Bloquea la fila del balance por la duración de la transacción: dos salidas
		// concurrentes del mismo producto no pueden pasar ambas el chequeo y sobrevender.
		balance, err := balanceRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if entity.IsOutboundType(input.Type) {
			requested := -delta
			if available := balance.Available(); available < requested {
				return &domain.InsufficientStockError{Available: available, Requested: requested}
			}
		}

		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			CompanyID: input.CompanyID,
			ProductID: input.ProductID,
			Type:      input.Type,
			Reason:    reason,
			Quantity:  delta,
			UnitCost:  input.UnitCost,
			Reference: input.Reference,
			Notes:     input.Notes,
			CreatedAt: now,
			CreatedBy: input.UserID,
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}

		// Re-suma completa, no incremental: el balance es función pura del ledger
		// y cualquier desvío previo se corrige aquí.
		sum, err := movRepo.SumByProduct(input.ProductID)
		if err != nil {
			return err
		}
		balance.CompanyID = input.CompanyID
		balance.Quantity = sum
		balance.UpdatedAt = now
		if err := balanceRepo.Upsert(balance); err != nil {
			return err
		}

		transition, active, err := evaluateAlerts(alertRepo, product, sum, now)
		if err != nil {
			return err
		}
		result = MovementResult{
			MovementID: movement.ID,
			ProductID:  input.ProductID,
			Balance:    sum,
			Transition: transition,
		}
		alertEv = buildAlertEvent(product, transition, active, sum, now)
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	uc.publishMovement(MovementEvent{
		MovementID: result.MovementID,
		CompanyID:  input.CompanyID,
		ProductID:  input.ProductID,
		Type:       input.Type,
		Reason:     reason,
		Quantity:   delta,
		Balance:    result.Balance,
		ActorID:    input.UserID,
		OccurredAt: now,
	})
	uc.publishAlert(alertEv)
	return &result, nil
}

// CorrectMovement elimina un movimiento (corrección administrativa, no flujo de negocio)
// y re-deriva balance y alertas de los registros restantes. No pasa por el chequeo de
// disponibilidad: la re-suma posterior siempre refleja el ledger restante.
func (uc *LedgerUseCase) CorrectMovement(ctx context.Context, companyID, movementID, actorID string) error {
	movement, err := uc.movementRepo.GetByID(movementID)
	if err != nil {
		return classify(err)
	}
	if movement == nil {
		return domain.ErrNotFound
	}
	if movement.CompanyID != companyID {
		return domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(movement.ProductID)
	if err != nil {
		return classify(err)
	}
	if product == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	var (
		newBalance int64
		alertEv    *AlertEvent
	)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		alertRepo repository.StockAlertRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(movement.ProductID)
		if err != nil {
			return err
		}
		if err := movRepo.Delete(movementID); err != nil {
			return err
		}
		sum, err := movRepo.SumByProduct(movement.ProductID)
		if err != nil {
			return err
		}
		balance.CompanyID = movement.CompanyID
		balance.Quantity = sum
		balance.UpdatedAt = now
		if err := balanceRepo.Upsert(balance); err != nil {
			return err
		}
		transition, active, err := evaluateAlerts(alertRepo, product, sum, now)
		if err != nil {
			return err
		}
		newBalance = sum
		alertEv = buildAlertEvent(product, transition, active, sum, now)
		return nil
	})
	if err != nil {
		return classify(err)
	}

	uc.publishMovement(MovementEvent{
		MovementID: movementID,
		CompanyID:  companyID,
		ProductID:  movement.ProductID,
		Type:       movement.Type,
		Reason:     entity.ReasonCORRECTION,
		Quantity:   -movement.Quantity,
		Balance:    newBalance,
		ActorID:    actorID,
		Correction: true,
		OccurredAt: now,
	})
	uc.publishAlert(alertEv)
	return nil
}

// normalizeDelta convierte la cantidad de entrada en el delta firmado del ledger.
// Entradas (RECEIPT, TRANSFER_IN, RETURN) suman; salidas (ISSUE, TRANSFER_OUT) restan;
// ADJUSTMENT conserva el signo recibido.
func normalizeDelta(movementType string, quantity int64) int64 {
	if entity.IsOutboundType(movementType) {
		return -quantity
	}
	return quantity
}

func buildAlertEvent(product *entity.Product, transition *AlertTransition, active *entity.StockAlert, balance int64, now time.Time) *AlertEvent {
	if transition == nil {
		return nil
	}
	ev := &AlertEvent{
		CompanyID:    product.CompanyID,
		ProductID:    product.ID,
		From:         transition.From,
		To:           transition.To,
		CurrentStock: balance,
		OccurredAt:   now,
	}
	if active != nil {
		ev.AlertID = active.ID
		ev.Threshold = active.Threshold
	}
	return ev
}

func (uc *LedgerUseCase) publishMovement(ev MovementEvent) {
	if uc.publisher != nil {
		uc.publisher.MovementRecorded(ev)
	}
}

func (uc *LedgerUseCase) publishAlert(ev *AlertEvent) {
	if uc.publisher != nil && ev != nil {
		uc.publisher.AlertChanged(*ev)
	}
}

// classify deja pasar los errores de dominio tal cual y envuelve las fallas de
// persistencia en ErrLedgerUnavailable (seguras de reintentar: la operación es atómica).
func classify(err error) error {
	if err == nil {
		return nil
	}
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return err
	}
	for _, known := range []error{
		domain.ErrNotFound,
		domain.ErrForbidden,
		domain.ErrInvalidInput,
		domain.ErrInvalidQuantity,
		domain.ErrProductNotTracked,
		domain.ErrAlertNotFound,
		domain.ErrAlertAlreadyResolved,
		domain.ErrConflict,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
}
