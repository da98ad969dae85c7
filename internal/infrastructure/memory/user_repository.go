package memory

import (
	"github.com/invorya/stock-ledger/internal/domain"
	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador sobre el store.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create guarda una copia del usuario; email único por empresa.
func (r *UserRepo) Create(user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.CompanyID == user.CompanyID && u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.store.users[user.ID] = *user
	return nil
}

// GetByID devuelve una copia del usuario o nil.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

// FindByEmail busca el primer usuario con ese email en cualquier empresa.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

// GetByEmailAndCompany busca por email dentro de la empresa.
func (r *UserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.CompanyID == companyID && u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}
