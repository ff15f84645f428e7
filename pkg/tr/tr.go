// Package tr передаёт транзакцию pgx через контекст от usecase к
// репозиториям, не протаскивая её в сигнатуры.
package tr

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/robosite/storefront/pkg/e"
)

type ctxKey struct{}

// CtxWithTx кладёт транзакцию в контекст.
func CtxWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// TxFromCtx достаёт транзакцию из контекста. Вызов вне транзакции
// возвращает e.ErrTransactionNotFound.
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(ctxKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}

	return tx, nil
}
