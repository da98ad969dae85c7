package repository

import "github.com/invorya/stock-ledger/internal/domain/entity"

// StockAlertRepository define el puerto de persistencia de alertas de stock.
type StockAlertRepository interface {
	Create(alert *entity.StockAlert) error
	Update(alert *entity.StockAlert) error
	GetByID(id string) (*entity.StockAlert, error)
	// GetActiveByProduct devuelve la alerta activa del producto, o nil si está en zona normal.
	GetActiveByProduct(productID string) (*entity.StockAlert, error)
	ListByCompany(companyID string, activeOnly bool, limit, offset int) ([]*entity.StockAlert, error)
}
