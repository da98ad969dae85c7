package ledger

import (
	"time"

	"github.com/invorya/stock-ledger/internal/application/dto"
	"github.com/invorya/stock-ledger/internal/domain"
	"github.com/invorya/stock-ledger/internal/domain/entity"
)

// CurrentStock devuelve el balance actual de un producto. Para productos que no
// manejan stock responde Tracked=false en vez de una cantidad.
func (uc *LedgerUseCase) CurrentStock(companyID, productID string) (*dto.BalanceResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, classify(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !product.TracksStock {
		return &dto.BalanceResponse{ProductID: productID, Tracked: false}, nil
	}
	balance, err := uc.balanceRepo.Get(productID)
	if err != nil {
		return nil, classify(err)
	}
	return &dto.BalanceResponse{
		ProductID: productID,
		Tracked:   true,
		Quantity:  balance.Quantity,
		Reserved:  balance.ReservedQuantity,
		Available: balance.Available(),
		UpdatedAt: balance.UpdatedAt,
	}, nil
}

// ListBalances lista los balances materializados de la empresa (lectura masiva para reportes).
func (uc *LedgerUseCase) ListBalances(companyID string, limit, offset int) (*dto.BalanceListResponse, error) {
	list, err := uc.balanceRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, classify(err)
	}
	items := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		items = append(items, dto.BalanceResponse{
			ProductID: b.ProductID,
			Tracked:   true,
			Quantity:  b.Quantity,
			Reserved:  b.ReservedQuantity,
			Available: b.Available(),
			UpdatedAt: b.UpdatedAt,
		})
	}
	return &dto.BalanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListMovements lista los movimientos de un producto con rango de fechas y paginación.
func (uc *LedgerUseCase) ListMovements(companyID, productID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, classify(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.movementRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, classify(err)
	}
	items := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementDTO{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Reason:    m.Reason,
			Quantity:  m.Quantity,
			UnitCost:  m.UnitCost,
			Reference: m.Reference,
			Notes:     m.Notes,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListAlerts lista alertas de la empresa; activeOnly filtra a las activas.
func (uc *LedgerUseCase) ListAlerts(companyID string, activeOnly bool, limit, offset int) (*dto.AlertListResponse, error) {
	list, err := uc.alertRepo.ListByCompany(companyID, activeOnly, limit, offset)
	if err != nil {
		return nil, classify(err)
	}
	items := make([]dto.AlertDTO, 0, len(list))
	for _, a := range list {
		items = append(items, toAlertDTO(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ResolveAlert resolución manual por un operador. No impide que el motor vuelva a
// levantar la misma alerta en el próximo movimiento si la condición persiste.
func (uc *LedgerUseCase) ResolveAlert(companyID, alertID, actorID string) error {
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return classify(err)
	}
	if alert == nil {
		return domain.ErrAlertNotFound
	}
	if alert.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if !alert.IsActive {
		return domain.ErrAlertAlreadyResolved
	}
	if err := resolveAlert(uc.alertRepo, alert, actorID, time.Now()); err != nil {
		return classify(err)
	}
	return nil
}

func toAlertDTO(a *entity.StockAlert) dto.AlertDTO {
	return dto.AlertDTO{
		ID:           a.ID,
		ProductID:    a.ProductID,
		AlertType:    a.AlertType,
		CurrentStock: a.CurrentStock,
		Threshold:    a.Threshold,
		IsActive:     a.IsActive,
		ResolvedAt:   a.ResolvedAt,
		ResolvedBy:   a.ResolvedBy,
		CreatedAt:    a.CreatedAt,
	}
}
