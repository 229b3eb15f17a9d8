package database

import "context"

type txKey struct{}

// txInfo is what a unit of work leaves in the context. owned is false for
// nested units that joined an outer transaction.
type txInfo struct {
	tx    Transaction
	owned bool
}

func withTx(ctx context.Context, tx Transaction, owned bool) context.Context {
	return context.WithValue(ctx, txKey{}, txInfo{tx: tx, owned: owned})
}

func txFromContext(ctx context.Context) (txInfo, bool) {
	info, ok := ctx.Value(txKey{}).(txInfo)
	return info, ok && info.tx != nil
}

// ExecutorFromContext returns the transaction a unit of work opened on ctx,
// or conn when the call runs outside one. Gateway tables use it so the
// same code serves both seeding and single writes.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if info, ok := txFromContext(ctx); ok {
		return info.tx
	}
	return conn
}
