package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/practica/internal/app"
	"github.com/abhisek/practica/internal/coach"
	"github.com/abhisek/practica/internal/config"
	"github.com/abhisek/practica/internal/history"
	"github.com/abhisek/practica/internal/llm"
	"github.com/abhisek/practica/internal/logging"
	"github.com/abhisek/practica/internal/recommend"
	"github.com/abhisek/practica/internal/session"
	"github.com/abhisek/practica/internal/skills"
	"github.com/abhisek/practica/internal/store"
)

// deps is everything a practice command needs, wired from config.
type deps struct {
	store   *store.Store
	daily   *history.Ledger
	mix     *history.Ledger
	service *app.Service
}

func (d *deps) Close() error {
	return d.store.Close()
}

// openStore opens the database named by flags and config.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Database.Timeout)
	defer cancel()
	s, err := store.OpenContext(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// buildDeps opens the store, loads both ledgers and assembles the service.
// A ledger that fails to load starts empty; the failure is logged.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}

	ledgerOpts := []history.Option{history.WithRetention(cfg.Retention())}
	daily, err := history.Open(ctx, history.KeyDaily, st.LedgerRepo(), ledgerOpts...)
	if err != nil {
		logging.Warn().Err(err).Msg("starting with an empty daily ledger")
	}
	mix, err := history.Open(ctx, history.KeyInterleave, st.LedgerRepo(), ledgerOpts...)
	if err != nil {
		logging.Warn().Err(err).Msg("starting with an empty interleave ledger")
	}

	src := skillSource(st)
	planner := session.NewPlanner(mix)
	svc := app.NewService(app.Options{
		Source:       src,
		Categories:   categoryMap(src),
		Engine:       recommend.New(daily, recommend.WithCooldown(cfg.Cooldown())),
		Planner:      planner,
		Builder:      session.NewBlockBuilder(planner, st.BlockRepo()),
		Formatter:    formatter(ctx, st),
		FetchTimeout: cfg.Skills.FetchTimeout,
		MediumScale:  cfg.Energy.MediumScale,
	})

	return &deps{store: st, daily: daily, mix: mix, service: svc}, nil
}

func skillSource(st *store.Store) skills.Source {
	if cfg.Skills.Source == config.SourceFile {
		return skills.NewFileSource(cfg.Skills.File)
	}
	return st.SkillRepo()
}

// categoryMap prefers topics from the config file, then a categories
// block in the skills file, then each skill's own category.
func categoryMap(src skills.Source) func([]skills.Skill) skills.CategoryMap {
	if fs, ok := src.(*skills.FileSource); ok && len(cfg.Categories) == 0 {
		return fs.CategoryMap
	}
	return cfg.CategoryMap
}

// formatter returns the LLM coach when it is enabled and a provider is
// configured, and the plain templates otherwise.
func formatter(ctx context.Context, st *store.Store) coach.Formatter {
	if !cfg.Coach.LLM {
		return coach.TemplateFormatter{}
	}
	llmCfg, ok := llm.Resolve()
	if !ok {
		logging.Warn().Msg("coach.llm is enabled but no LLM provider is configured; using templates")
		return coach.TemplateFormatter{}
	}
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
	if err != nil {
		logging.Warn().Err(err).Msg("LLM provider unavailable; using templates")
		return coach.TemplateFormatter{}
	}
	logging.Debug().Str("provider", llmCfg.Provider).Str("model", llmCfg.ModelID()).Msg("coach messages via LLM")
	return coach.NewLLMFormatter(provider, coach.DefaultConfig())
}
