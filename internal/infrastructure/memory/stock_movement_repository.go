package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/stock-ledger/internal/domain"
	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo ledger append-only en memoria.
type StockMovementRepo struct {
	store *Store
}

// NewStockMovementRepository construye el adaptador sobre el store.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{store: store}
}

// Create guarda una copia del movimiento.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if _, exists := r.store.movements[movement.ID]; exists {
		return fmt.Errorf("movement %s ya existe", movement.ID)
	}
	r.store.movements[movement.ID] = movementRow{StockMovement: *movement, seq: r.store.nextSeq()}
	return nil
}

// GetByID devuelve una copia del movimiento o nil.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	m := row.StockMovement
	return &m, nil
}

// Delete elimina el movimiento (corrección administrativa).
// Si ya no existe retorna ErrNotFound, igual que el adaptador de PostgreSQL.
func (r *StockMovementRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.movements[id]; !ok {
		return fmt.Errorf("delete movement %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.movements, id)
	return nil
}

// SumByProduct re-suma los deltas de los movimientos restantes del producto.
func (r *StockMovementRepo) SumByProduct(productID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var sum int64
	for _, row := range r.store.movements {
		if row.ProductID == productID {
			sum += row.Quantity
		}
	}
	return sum, nil
}

// ListByProduct lista movimientos del producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.store.mu.RLock()
	rows := make([]movementRow, 0)
	for _, row := range r.store.movements {
		if row.ProductID != productID {
			continue
		}
		if from != nil && row.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && row.CreatedAt.After(*to) {
			continue
		}
		rows = append(rows, row)
	}
	r.store.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	list := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		m := row.StockMovement
		list = append(list, &m)
	}
	return list, nil
}
