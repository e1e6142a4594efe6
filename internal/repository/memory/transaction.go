package memory

import (
	"context"
	"sync"
)

// Transactor is the memory-driver counterpart of the postgres
// transaction wrapper. There are no real transactions to open; a mutex
// gives the wrapped function the same exclusive window.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
