package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/practica/internal/skills"
)

// skillColumns is the select list shared by every skill query.
var skillColumns = []string{
	"name", "external_id", "category",
	"lectures", "practice_hours", "videos", "films", "expert_talks",
}

// SkillRepo stores skill progress counters. It is a skills.Source.
type SkillRepo struct {
	db *sql.DB
}

var _ skills.Source = (*SkillRepo)(nil)

// Fetch returns every stored skill ordered by name.
func (r *SkillRepo) Fetch(ctx context.Context) ([]skills.Skill, error) {
	return r.List(ctx)
}

// List returns every stored skill ordered by name.
func (r *SkillRepo) List(ctx context.Context) ([]skills.Skill, error) {
	b := builder()
	query, args := b.Select(skillColumns...).
		From(b.Table(tableSkills)).
		OrderBy(entsql.Asc("name")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	defer rows.Close()

	var out []skills.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns a skill by name, or skills.ErrSkillNotFound.
func (r *SkillRepo) Get(ctx context.Context, name string) (skills.Skill, error) {
	b := builder()
	query, args := b.Select(skillColumns...).
		From(b.Table(tableSkills)).
		Where(entsql.EQ("name", name)).
		Query()

	s, err := scanSkill(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return skills.Skill{}, fmt.Errorf("%w: %s", skills.ErrSkillNotFound, name)
	}
	return s, err
}

// Upsert inserts a skill or replaces the stored row with the same name.
func (r *SkillRepo) Upsert(ctx context.Context, s skills.Skill) error {
	return upsertSkill(ctx, r.db, s)
}

// Import upserts every skill in one transaction.
func (r *SkillRepo) Import(ctx context.Context, all []skills.Skill) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, s := range all {
		if err := upsertSkill(ctx, tx, s); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertSkill(ctx context.Context, db execer, s skills.Skill) error {
	if err := s.Validate(); err != nil {
		return err
	}
	externalID := s.ID
	if externalID == "" {
		externalID = s.Name
	}

	columns := append(append([]string{}, skillColumns...), "updated_at")
	query, args := builder().Insert(tableSkills).
		Columns(columns...).
		Values(s.Name, externalID, s.Category,
			s.Lectures, s.PracticeHours, s.Videos, s.Films, s.ExpertTalks,
			time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert skill %q: %w", s.Name, err)
	}
	return nil
}

// AddProgress increments one counter of a skill. Negative amounts are
// rejected; overshooting the dimension maximum is allowed.
func (r *SkillRepo) AddProgress(ctx context.Context, name string, dim skills.Dimension, amount float64) (skills.Skill, error) {
	if !dim.Valid() {
		return skills.Skill{}, fmt.Errorf("unknown dimension %q", dim)
	}
	if amount < 0 {
		return skills.Skill{}, fmt.Errorf("progress amount must not be negative: %v", amount)
	}

	query, args := builder().Update(tableSkills).
		Add(string(dim), amount).
		Set("updated_at", time.Now().UTC()).
		Where(entsql.EQ("name", name)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return skills.Skill{}, fmt.Errorf("add progress to %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return skills.Skill{}, fmt.Errorf("%w: %s", skills.ErrSkillNotFound, name)
	}
	return r.Get(ctx, name)
}

// Delete removes a skill by name.
func (r *SkillRepo) Delete(ctx context.Context, name string) error {
	query, args := builder().Delete(tableSkills).
		Where(entsql.EQ("name", name)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete skill %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", skills.ErrSkillNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSkill(row rowScanner) (skills.Skill, error) {
	var s skills.Skill
	err := row.Scan(&s.Name, &s.ID, &s.Category,
		&s.Lectures, &s.PracticeHours, &s.Videos, &s.Films, &s.ExpertTalks)
	if errors.Is(err, sql.ErrNoRows) {
		return s, err
	}
	if err != nil {
		return s, fmt.Errorf("scan skill: %w", err)
	}
	return s, nil
}
