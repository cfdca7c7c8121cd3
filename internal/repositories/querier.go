// Package repositories 实现 library schema 的数据访问层，基于 pgx 手写 SQL。
package repositories

import (
	"context"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier 是 pgxpool.Pool 与 pgx.Tx 的公共子集。
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pick 在事务会话存在时使用事务，否则回落到连接池。
func pick(db *pgxpool.Pool, sess txmanager.Session) querier {
	if sess != nil {
		if tx := sess.Tx(); tx != nil {
			return tx
		}
	}
	return db
}
