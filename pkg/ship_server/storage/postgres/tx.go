package postgres

import (
	"context"

	"github.com/impressdesigns/kassistant/pkg/ship_server/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

// _TxWrapper adapts a pgx transaction to storage.Tx. Commit and Rollback come from the
// embedded pgx.Tx; pgx rows already satisfy storage.Rows and storage.Row.
type _TxWrapper struct {
	pgx.Tx
}

type _CommandTag struct {
	pgconn.CommandTag
}

func (t _CommandTag) RowsAffected() (int64, error) {
	return t.CommandTag.RowsAffected(), nil
}

func (tx *_TxWrapper) Exec(ctx context.Context, sql string, args ...any) (storage.Result, error) {
	tag, err := tx.Tx.Exec(ctx, sql, args...)
	if err != nil {
		logrus.Errorf("Fail to exec. %v", err)
		return nil, err
	}
	return _CommandTag{tag}, nil
}

func (tx *_TxWrapper) Query(ctx context.Context, sql string, args ...any) (storage.Rows, error) {
	rows, err := tx.Tx.Query(ctx, sql, args...)
	if err != nil {
		logrus.Errorf("Fail to query. %v", err)
		return nil, err
	}
	return rows, nil
}

func (tx *_TxWrapper) QueryRow(ctx context.Context, sql string, args ...any) storage.Row {
	return tx.Tx.QueryRow(ctx, sql, args...)
}
