package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableLedgerStates   = "ledger_states"
	tablePracticeBlocks = "practice_blocks"
	tableSkills         = "skills"
	tableLLMRequests    = "llm_requests"
)

var (
	// ledgerStatesColumns holds one JSON document per ledger key.
	ledgerStatesColumns = []*schema.Column{
		{Name: "ledger_key", Type: field.TypeString},
		{Name: "data", Type: field.TypeJSON},
		{Name: "updated_at", Type: field.TypeTime},
	}
	ledgerStatesTable = &schema.Table{
		Name:       tableLedgerStates,
		Columns:    ledgerStatesColumns,
		PrimaryKey: []*schema.Column{ledgerStatesColumns[0]},
	}

	// practiceBlocksColumns is the append-only audit log of built blocks.
	practiceBlocksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "block_id", Type: field.TypeString, Unique: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "total_minutes", Type: field.TypeInt},
		{Name: "completed", Type: field.TypeBool, Default: false},
		{Name: "data", Type: field.TypeJSON},
	}
	practiceBlocksTable = &schema.Table{
		Name:       tablePracticeBlocks,
		Columns:    practiceBlocksColumns,
		PrimaryKey: []*schema.Column{practiceBlocksColumns[0]},
		Indexes: []*schema.Index{
			{Name: "practiceblock_created_at", Columns: []*schema.Column{practiceBlocksColumns[2]}},
		},
	}

	skillsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "external_id", Type: field.TypeString, Default: ""},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "lectures", Type: field.TypeFloat64, Default: 0},
		{Name: "practice_hours", Type: field.TypeFloat64, Default: 0},
		{Name: "videos", Type: field.TypeFloat64, Default: 0},
		{Name: "films", Type: field.TypeFloat64, Default: 0},
		{Name: "expert_talks", Type: field.TypeFloat64, Default: 0},
		{Name: "updated_at", Type: field.TypeTime},
	}
	skillsTable = &schema.Table{
		Name:       tableSkills,
		Columns:    skillsColumns,
		PrimaryKey: []*schema.Column{skillsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "skill_category", Columns: []*schema.Column{skillsColumns[3]}},
		},
	}

	llmRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	llmRequestsTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    llmRequestsColumns,
		PrimaryKey: []*schema.Column{llmRequestsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequest_purpose", Columns: []*schema.Column{llmRequestsColumns[4]}},
		},
	}

	// tables lists every table managed by migrate.
	tables = []*schema.Table{
		ledgerStatesTable,
		practiceBlocksTable,
		skillsTable,
		llmRequestsTable,
	}
)

// migrate creates missing tables and columns. It never drops anything.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// builder returns an SQLite statement builder.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
