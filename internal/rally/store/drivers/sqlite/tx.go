package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/rally/internal/rally/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the caller commits or rolls back; the DB stays open

// Ping is a no-op: the transaction already holds a live connection.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) Tokens() store.Tokens               { return &tokensRepo{q: t.tx} }
func (t *txStore) Memberships() store.Memberships     { return &membershipsRepo{q: t.tx} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{q: t.tx} }
func (t *txStore) Events() store.Events               { return &eventsRepo{q: t.tx} }
func (t *txStore) Lists() store.Lists                 { return &listsRepo{q: t.tx} }
func (t *txStore) Signups() store.Signups             { return &signupsRepo{q: t.tx} }
func (t *txStore) SMSMessages() store.SMSMessages     { return &smsMessagesRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
