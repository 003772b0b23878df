package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// TxManager wraps fn in one postgres transaction. ResetAll runs its
// ReplaceAllStates through this so the multi-row restore is all-or-nothing.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

// RunInTx stashes the transaction in the context; repo methods pick it up
// via getDBFromCtx and fall back to the base handle otherwise.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
