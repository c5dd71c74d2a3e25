package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/practica/internal/history"
)

// LedgerRepo implements history.Persister. Each ledger key owns one row
// whose data column holds the whole serialized state.
type LedgerRepo struct {
	db *sql.DB
}

var _ history.Persister = (*LedgerRepo)(nil)

func (r *LedgerRepo) LoadLedger(ctx context.Context, key string) (*history.State, error) {
	b := builder()
	query, args := b.Select("data").
		From(b.Table(tableLedgerStates)).
		Where(entsql.EQ("ledger_key", key)).
		Query()

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query ledger %q: %w", key, err)
	}

	var state history.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal ledger %q: %w", key, err)
	}
	return &state, nil
}

func (r *LedgerRepo) SaveLedger(ctx context.Context, key string, state history.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal ledger %q: %w", key, err)
	}

	query, args := builder().Insert(tableLedgerStates).
		Columns("ledger_key", "data", "updated_at").
		Values(key, data, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("ledger_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save ledger %q: %w", key, err)
	}
	return nil
}
