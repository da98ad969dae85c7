package repository

import "github.com/invorya/stock-ledger/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
// El ledger solo usa GetByID (lectura de umbrales); el resto lo usa el catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
}
