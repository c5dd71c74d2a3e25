package app

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/practica/internal/coach"
	"github.com/abhisek/practica/internal/energy"
	"github.com/abhisek/practica/internal/logging"
	"github.com/abhisek/practica/internal/recommend"
	"github.com/abhisek/practica/internal/session"
	"github.com/abhisek/practica/internal/skills"
)

// RestDayMessage is shown instead of practice when energy is low.
const RestDayMessage = "Energy is low today. Rest up, no practice suggested."

// Options wires the practice service.
type Options struct {
	Source skills.Source

	// Categories maps a snapshot to topics; defaults to each skill's own
	// category.
	Categories func(all []skills.Skill) skills.CategoryMap

	Engine    *recommend.Engine
	Planner   session.Planner
	Builder   *session.BlockBuilder
	Formatter coach.Formatter

	FetchTimeout time.Duration
	MediumScale  float64
}

// Result is one answered practice request.
type Result struct {
	Text           string
	Suppressed     bool
	Recommendation *recommend.Recommendation
	Plan           *session.Plan
	Block          *session.Block
}

// Service answers the three practice questions over a fresh snapshot each
// time. The CLI and the dashboard both go through it.
type Service struct {
	opts Options
}

func NewService(opts Options) *Service {
	if opts.Categories == nil {
		opts.Categories = skills.CategoriesFromSkills
	}
	if opts.Formatter == nil {
		opts.Formatter = coach.TemplateFormatter{}
	}
	return &Service{opts: opts}
}

// Skills fetches the current snapshot.
func (s *Service) Skills(ctx context.Context) ([]skills.Skill, error) {
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}
	all, err := s.opts.Source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch skills: %w", err)
	}
	return all, nil
}

// Today recommends a single task.
func (s *Service) Today(ctx context.Context, level energy.Level) (*Result, error) {
	if !level.Allow() {
		return &Result{Text: RestDayMessage, Suppressed: true}, nil
	}
	all, err := s.Skills(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.opts.Engine.Recommend(ctx, skills.Incomplete(all))
	if err != nil {
		return nil, err
	}
	text := s.format("today", func(f coach.Formatter) (string, error) {
		return f.Recommendation(ctx, rec)
	})
	return &Result{Text: text, Recommendation: rec}, nil
}

// Mix plans an interleaved session across count categories.
func (s *Service) Mix(ctx context.Context, count int, level energy.Level) (*Result, error) {
	if !level.Allow() {
		return &Result{Text: RestDayMessage, Suppressed: true}, nil
	}
	all, err := s.Skills(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.opts.Planner.Plan(ctx, all, s.opts.Categories(all), count)
	if err != nil {
		return nil, err
	}
	text := s.format("mix", func(f coach.Formatter) (string, error) {
		return f.Plan(ctx, plan)
	})
	return &Result{Text: text, Plan: plan}, nil
}

// Block builds a deep-practice block. Medium energy shortens it; the
// builder rejects non-positive minutes.
func (s *Service) Block(ctx context.Context, minutes int, level energy.Level) (*Result, error) {
	if !level.Allow() {
		return &Result{Text: RestDayMessage, Suppressed: true}, nil
	}
	all, err := s.Skills(ctx)
	if err != nil {
		return nil, err
	}

	block, err := s.opts.Builder.Build(ctx, all, s.opts.Categories(all), level.ScaleMinutes(minutes, s.opts.MediumScale))
	if err != nil {
		return nil, err
	}
	text := s.format("block", func(f coach.Formatter) (string, error) {
		return f.Block(ctx, block)
	})
	return &Result{Text: text, Block: block}, nil
}

// format renders a result that is already recorded. A formatter failure,
// including a cancelled context, falls back to the templates so the caller
// always gets the decision that was written.
func (s *Service) format(kind string, render func(coach.Formatter) (string, error)) string {
	text, err := render(s.opts.Formatter)
	if err == nil {
		return text
	}
	logging.Warn().Err(err).Str("result", kind).Msg("formatting failed, using template text")
	text, _ = render(coach.TemplateFormatter{})
	return text
}
