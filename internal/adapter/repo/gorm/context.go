package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// An open transaction travels through the context so that repo calls made
// inside TxManager.RunInTx (the fleet reset path) join it transparently.

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// getDBFromCtx returns the transaction carried by ctx, or base when the
// call runs outside any transaction (the per-vessel tick writes).
func getDBFromCtx(ctx context.Context, base *gorm.DB) *gorm.DB {
	if v := ctx.Value(txKey); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx
		}
	}
	return base
}
