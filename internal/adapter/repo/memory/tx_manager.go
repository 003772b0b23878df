package memory

import (
	"context"
	"sync"
)

// TxManager serializes transactions. Atomicity comes from the store lock
// held across each repo call; the in-memory adapter has no rollback.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (t *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
