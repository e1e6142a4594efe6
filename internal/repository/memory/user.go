package memory

import (
	"context"
	"sync"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/user"
)

// UserRepository is an in-memory user.Repository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository(seed ...user.User) *UserRepository {
	r := &UserRepository{users: make(map[string]user.User, len(seed))}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

// GetByEmail implements user.Repository.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// GetByID implements user.Repository.
func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}
