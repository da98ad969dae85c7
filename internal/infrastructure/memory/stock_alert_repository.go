package memory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo alertas de stock en memoria.
type StockAlertRepo struct {
	store *Store
}

// NewStockAlertRepository construye el adaptador sobre el store.
func NewStockAlertRepository(store *Store) *StockAlertRepo {
	return &StockAlertRepo{store: store}
}

// Create guarda una copia de la alerta.
func (r *StockAlertRepo) Create(alert *entity.StockAlert) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	r.store.alerts[alert.ID] = *alert
	return nil
}

// Update reemplaza la alerta existente.
func (r *StockAlertRepo) Update(alert *entity.StockAlert) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.alerts[alert.ID]; !ok {
		return fmt.Errorf("update alert: no existe %s", alert.ID)
	}
	r.store.alerts[alert.ID] = *alert
	return nil
}

// GetByID devuelve una copia de la alerta o nil.
func (r *StockAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	a, ok := r.store.alerts[id]
	if !ok {
		return nil, nil
	}
	copied := a
	return &copied, nil
}

// GetActiveByProduct devuelve la alerta activa del producto, o nil.
func (r *StockAlertRepo) GetActiveByProduct(productID string) (*entity.StockAlert, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, a := range r.store.alerts {
		if a.ProductID == productID && a.IsActive {
			copied := a
			return &copied, nil
		}
	}
	return nil, nil
}

// ListByCompany lista alertas de la empresa, más recientes primero.
func (r *StockAlertRepo) ListByCompany(companyID string, activeOnly bool, limit, offset int) ([]*entity.StockAlert, error) {
	r.store.mu.RLock()
	list := make([]*entity.StockAlert, 0)
	for _, a := range r.store.alerts {
		if a.CompanyID != companyID {
			continue
		}
		if activeOnly && !a.IsActive {
			continue
		}
		copied := a
		list = append(list, &copied)
	}
	r.store.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}
