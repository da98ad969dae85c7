package memory

import (
	"sync"

	"github.com/invorya/stock-ledger/internal/domain/entity"
)

// Store almacenamiento en memoria para los puertos del dominio. Respaldo de los
// tests de casos de uso y de concurrencia; la persistencia real es la de postgres.
// Todas las operaciones copian los structs al entrar y salir para que ningún caller
// comparta punteros con el estado interno.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	movements map[string]movementRow
	balances  map[string]entity.StockBalance
	alerts    map[string]entity.StockAlert
	users     map[string]entity.User
	companies map[string]entity.Company
	seq       int64 // orden de inserción para listados estables

	lockMu   sync.Mutex
	rowLocks map[string]*sync.Mutex // bloqueo por producto, análogo al FOR UPDATE
}

type movementRow struct {
	entity.StockMovement
	seq int64
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]entity.Product),
		movements: make(map[string]movementRow),
		balances:  make(map[string]entity.StockBalance),
		alerts:    make(map[string]entity.StockAlert),
		users:     make(map[string]entity.User),
		companies: make(map[string]entity.Company),
		rowLocks:  make(map[string]*sync.Mutex),
	}
}

// rowLock devuelve (creándolo si no existe) el mutex de la fila de balance del producto.
func (s *Store) rowLock(productID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	l, ok := s.rowLocks[productID]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[productID] = l
	}
	return l
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}
