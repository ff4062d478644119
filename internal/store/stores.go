package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so every
// store works identically inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Stores is the pool-backed StoreProvider and TxRunner.
type Stores struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Stores {
	return &Stores{pool: pool}
}

var (
	_ StoreProvider = (*Stores)(nil)
	_ TxRunner      = (*Stores)(nil)
)

func (s *Stores) Users() UserStore           { return &userStore{db: s.pool} }
func (s *Stores) Projects() ProjectStore     { return &projectStore{db: s.pool} }
func (s *Stores) Issues() IssueStore         { return &issueStore{db: s.pool} }
func (s *Stores) Comments() CommentStore     { return &commentStore{db: s.pool} }
func (s *Stores) Embeddings() EmbeddingStore { return &embeddingStore{db: s.pool} }
func (s *Stores) Reports() ReportStore       { return &reportStore{db: s.pool} }

// WithTx runs fn with stores bound to a single transaction, committing on
// nil and rolling back on error or panic.
func (s *Stores) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(&txStores{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

type txStores struct {
	tx pgx.Tx
}

var _ StoreProvider = (*txStores)(nil)

func (s *txStores) Users() UserStore           { return &userStore{db: s.tx} }
func (s *txStores) Projects() ProjectStore     { return &projectStore{db: s.tx} }
func (s *txStores) Issues() IssueStore         { return &issueStore{db: s.tx} }
func (s *txStores) Comments() CommentStore     { return &commentStore{db: s.tx} }
func (s *txStores) Embeddings() EmbeddingStore { return &embeddingStore{db: s.tx} }
func (s *txStores) Reports() ReportStore       { return &reportStore{db: s.tx} }
