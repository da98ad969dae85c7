package memory

import (
	"sort"

	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	store *Store
}

// NewCompanyRepository construye el adaptador sobre el store.
func NewCompanyRepository(store *Store) *CompanyRepo {
	return &CompanyRepo{store: store}
}

// Create guarda una copia de la empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.companies[company.ID] = *company
	return nil
}

// GetByID devuelve una copia de la empresa o nil.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.companies[id]
	if !ok {
		return nil, nil
	}
	copied := c
	return &copied, nil
}

// List lista empresas ordenadas por nombre.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	r.store.mu.RLock()
	list := make([]*entity.Company, 0, len(r.store.companies))
	for _, c := range r.store.companies {
		copied := c
		list = append(list, &copied)
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
