package memory

import (
	"sort"

	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo balance materializado en memoria. Dentro de una transacción
// (tx != nil) GetForUpdate toma el bloqueo de fila del producto hasta el fin del Run.
type StockBalanceRepo struct {
	store *Store
	tx    *txLocks
}

// NewStockBalanceRepository construye el adaptador sin transacción (solo lecturas).
func NewStockBalanceRepository(store *Store) *StockBalanceRepo {
	return &StockBalanceRepo{store: store}
}

// Get devuelve una copia del balance; cero si el producto aún no tiene fila.
func (r *StockBalanceRepo) Get(productID string) (*entity.StockBalance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.balances[productID]
	if !ok {
		return &entity.StockBalance{ProductID: productID}, nil
	}
	copied := b
	return &copied, nil
}

// GetForUpdate bloquea la fila del producto (si hay transacción) y devuelve el balance.
func (r *StockBalanceRepo) GetForUpdate(productID string) (*entity.StockBalance, error) {
	if r.tx != nil {
		r.tx.acquire(productID)
	}
	return r.Get(productID)
}

// Upsert guarda una copia del balance.
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.balances[balance.ProductID] = *balance
	return nil
}

// ListByCompany lista balances de la empresa ordenados por producto.
func (r *StockBalanceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockBalance, error) {
	r.store.mu.RLock()
	list := make([]*entity.StockBalance, 0)
	for _, b := range r.store.balances {
		if b.CompanyID == companyID {
			copied := b
			list = append(list, &copied)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}
