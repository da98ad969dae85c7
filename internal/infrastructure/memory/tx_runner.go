package memory

import (
	"context"
	"sync"

	"github.com/invorya/stock-ledger/internal/application/ledger"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner versión en memoria del runner transaccional. No hay rollback real (el
// caso de uso valida antes de escribir); lo que sí replica fielmente es la
// serialización por producto: los bloqueos tomados vía GetForUpdate se sostienen
// hasta el final de Run, igual que un FOR UPDATE hasta el Commit.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la "transacción" y libera los bloqueos de fila al salir.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &txLocks{store: r.store, held: make(map[string]*sync.Mutex)}
	defer tx.releaseAll()

	movRepo := NewStockMovementRepository(r.store)
	balanceRepo := &StockBalanceRepo{store: r.store, tx: tx}
	alertRepo := NewStockAlertRepository(r.store)

	return fn(movRepo, balanceRepo, alertRepo)
}

// txLocks bloqueos de fila sostenidos por una transacción en curso.
type txLocks struct {
	store *Store
	held  map[string]*sync.Mutex
}

// acquire toma el bloqueo del producto si la transacción no lo tiene ya.
func (t *txLocks) acquire(productID string) {
	if _, ok := t.held[productID]; ok {
		return
	}
	l := t.store.rowLock(productID)
	l.Lock()
	t.held[productID] = l
}

func (t *txLocks) releaseAll() {
	for _, l := range t.held {
		l.Unlock()
	}
	t.held = nil
}
