package memory

import (
	"sort"

	"github.com/invorya/stock-ledger/internal/domain"
	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador sobre el store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create guarda una copia del producto; SKU único por empresa.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.CompanyID == product.CompanyID && p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	r.store.products[product.ID] = *product
	return nil
}

// Update reemplaza el producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.products[product.ID] = *product
	return nil
}

// GetByID devuelve una copia del producto o nil.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	copied := p
	return &copied, nil
}

// GetByCompanyAndSKU busca por SKU dentro de la empresa.
func (r *ProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.products {
		if p.CompanyID == companyID && p.SKU == sku {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

// ListByCompany lista productos de la empresa ordenados por nombre.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	r.store.mu.RLock()
	list := make([]*entity.Product, 0)
	for _, p := range r.store.products {
		if p.CompanyID == companyID {
			copied := p
			list = append(list, &copied)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}
