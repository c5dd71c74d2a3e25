package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/practica/internal/session"
)

// BlockRepo is the practice block audit log. Rows are only ever appended.
type BlockRepo struct {
	db *sql.DB
}

var _ session.BlockLog = (*BlockRepo)(nil)

func (r *BlockRepo) AppendBlock(ctx context.Context, block session.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("marshal block: %w", err)
	}

	query, args := builder().Insert(tablePracticeBlocks).
		Columns("block_id", "created_at", "total_minutes", "completed", "data").
		Values(block.ID, block.CreatedAt.UTC(), block.TotalMinutes, block.Completed, data).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append block %s: %w", block.ID, err)
	}
	return nil
}

// Recent returns the most recent blocks, newest first. limit <= 0 returns
// all of them.
func (r *BlockRepo) Recent(ctx context.Context, limit int) ([]session.Block, error) {
	b := builder()
	sel := b.Select("data").
		From(b.Table(tablePracticeBlocks)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}
	defer rows.Close()

	var out []session.Block
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		var block session.Block
		if err := json.Unmarshal(raw, &block); err != nil {
			return nil, fmt.Errorf("unmarshal block: %w", err)
		}
		out = append(out, block)
	}
	return out, rows.Err()
}
