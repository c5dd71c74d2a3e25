package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/practica/internal/coach"
	"github.com/abhisek/practica/internal/energy"
	"github.com/abhisek/practica/internal/history"
	"github.com/abhisek/practica/internal/recommend"
	"github.com/abhisek/practica/internal/session"
	"github.com/abhisek/practica/internal/skills"
)

var testNow = time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func sampleSkills() []skills.Skill {
	return []skills.Skill{
		{ID: "1", Name: "Go", Category: "code", Lectures: 4},
		{ID: "2", Name: "Rust", Category: "code", Videos: 2},
		{ID: "3", Name: "Piano", Category: "music", PracticeHours: 6},
		{ID: "4", Name: "Chess", Category: "games", Films: 1},
		{
			ID: "5", Name: "Done", Category: "games",
			Lectures: 10, PracticeHours: 20, Videos: 5, Films: 3, ExpertTalks: 5,
		},
	}
}

type fixture struct {
	svc    *Service
	daily  *history.Ledger
	mix    *history.Ledger
	blocks *session.MemoryBlockLog
}

func newFixture(src skills.Source) fixture {
	rng := rand.New(rand.NewPCG(3, 5))
	daily := history.New(history.KeyDaily, nil, history.WithClock(clock))
	mix := history.New(history.KeyInterleave, nil, history.WithClock(clock))
	planner := session.NewPlanner(mix, session.WithRand(rng), session.WithClock(clock), session.WithLogger(zerolog.Nop()))
	blocks := session.NewMemoryBlockLog()

	svc := NewService(Options{
		Source:       src,
		Engine:       recommend.New(daily, recommend.WithRand(rng), recommend.WithClock(clock), recommend.WithLogger(zerolog.Nop())),
		Planner:      planner,
		Builder:      session.NewBlockBuilder(planner, blocks, session.WithBuilderClock(clock), session.WithBuilderLogger(zerolog.Nop())),
		FetchTimeout: time.Second,
		MediumScale:  0.5,
	})
	return fixture{svc: svc, daily: daily, mix: mix, blocks: blocks}
}

func TestService_Today(t *testing.T) {
	f := newFixture(skills.StaticSource(sampleSkills()))

	res, err := f.svc.Today(context.Background(), energy.High)
	require.NoError(t, err)
	require.NotNil(t, res.Recommendation)
	assert.NotEqual(t, "Done", res.Recommendation.SkillName)
	assert.Contains(t, res.Text, res.Recommendation.SkillName)
	assert.Len(t, f.daily.Entries(), 1)
}

func TestService_LowEnergySuppresses(t *testing.T) {
	calls := 0
	src := skills.SourceFunc(func(context.Context) ([]skills.Skill, error) {
		calls++
		return sampleSkills(), nil
	})
	f := newFixture(src)
	ctx := context.Background()

	for _, run := range []func() (*Result, error){
		func() (*Result, error) { return f.svc.Today(ctx, energy.Low) },
		func() (*Result, error) { return f.svc.Mix(ctx, 3, energy.Low) },
		func() (*Result, error) { return f.svc.Block(ctx, 60, energy.Low) },
	} {
		res, err := run()
		require.NoError(t, err)
		assert.True(t, res.Suppressed)
		assert.Equal(t, RestDayMessage, res.Text)
	}

	assert.Zero(t, calls, "the source is never consulted")
	assert.Empty(t, f.daily.Entries())
	assert.Empty(t, f.blocks.Blocks())
}

func TestService_Mix(t *testing.T) {
	f := newFixture(skills.StaticSource(sampleSkills()))

	res, err := f.svc.Mix(context.Background(), 3, energy.High)
	require.NoError(t, err)
	require.NotNil(t, res.Plan)
	assert.Len(t, res.Plan.Items, 3)

	seen := map[string]bool{}
	for _, it := range res.Plan.Items {
		assert.False(t, seen[it.Category], "one skill per category")
		seen[it.Category] = true
		assert.NotEqual(t, "Done", it.Skill.Name)
	}
	assert.Len(t, f.mix.Entries(), 3)
}

func TestService_BlockMediumEnergyScales(t *testing.T) {
	f := newFixture(skills.StaticSource(sampleSkills()))

	res, err := f.svc.Block(context.Background(), 90, energy.Medium)
	require.NoError(t, err)
	require.NotNil(t, res.Block)
	assert.Equal(t, 45, res.Block.TotalMinutes)
	for _, it := range res.Block.Items {
		assert.Equal(t, 15, it.Minutes)
	}
	assert.Len(t, f.blocks.Blocks(), 1)
}

func TestService_BlockRejectsNonPositiveMinutes(t *testing.T) {
	f := newFixture(skills.StaticSource(sampleSkills()))

	for _, minutes := range []int{0, -30} {
		_, err := f.svc.Block(context.Background(), minutes, energy.Medium)
		assert.ErrorIs(t, err, session.ErrInvalidMinutes)
	}
	assert.Empty(t, f.blocks.Blocks())
	assert.Empty(t, f.mix.Entries())
}

// cancelingFormatter cancels the caller's context mid-render, as an
// interrupt during LLM phrasing would.
type cancelingFormatter struct {
	cancel context.CancelFunc
}

func (c cancelingFormatter) fail(ctx context.Context) (string, error) {
	c.cancel()
	return "", ctx.Err()
}

func (c cancelingFormatter) Recommendation(ctx context.Context, _ *recommend.Recommendation) (string, error) {
	return c.fail(ctx)
}

func (c cancelingFormatter) Plan(ctx context.Context, _ *session.Plan) (string, error) {
	return c.fail(ctx)
}

func (c cancelingFormatter) Block(ctx context.Context, _ *session.Block) (string, error) {
	return c.fail(ctx)
}

func TestService_FormatterFailureKeepsRecordedDecision(t *testing.T) {
	tests := []struct {
		name    string
		run     func(context.Context, *Service) (*Result, error)
		want    func(t *testing.T, res *Result)
		written func(f fixture) int
	}{
		{
			name: "today",
			run: func(ctx context.Context, s *Service) (*Result, error) {
				return s.Today(ctx, energy.High)
			},
			want: func(t *testing.T, res *Result) {
				text, _ := coach.TemplateFormatter{}.Recommendation(context.Background(), res.Recommendation)
				assert.Equal(t, text, res.Text)
			},
			written: func(f fixture) int { return len(f.daily.Entries()) },
		},
		{
			name: "mix",
			run: func(ctx context.Context, s *Service) (*Result, error) {
				return s.Mix(ctx, 2, energy.High)
			},
			want: func(t *testing.T, res *Result) {
				text, _ := coach.TemplateFormatter{}.Plan(context.Background(), res.Plan)
				assert.Equal(t, text, res.Text)
			},
			written: func(f fixture) int { return len(f.mix.Entries()) },
		},
		{
			name: "block",
			run: func(ctx context.Context, s *Service) (*Result, error) {
				return s.Block(ctx, 60, energy.High)
			},
			want: func(t *testing.T, res *Result) {
				text, _ := coach.TemplateFormatter{}.Block(context.Background(), res.Block)
				assert.Equal(t, text, res.Text)
			},
			written: func(f fixture) int { return len(f.blocks.Blocks()) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(skills.StaticSource(sampleSkills()))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			f.svc.opts.Formatter = cancelingFormatter{cancel: cancel}

			res, err := tt.run(ctx, f.svc)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.NotEmpty(t, res.Text)
			assert.ErrorIs(t, ctx.Err(), context.Canceled)
			assert.Positive(t, tt.written(f), "the decision stays recorded")
			tt.want(t, res)
		})
	}
}

func TestService_FetchFailure(t *testing.T) {
	boom := errors.New("store offline")
	f := newFixture(skills.SourceFunc(func(context.Context) ([]skills.Skill, error) { return nil, boom }))

	_, err := f.svc.Today(context.Background(), energy.High)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch skills")
	assert.Empty(t, f.daily.Entries(), "nothing written on fetch failure")
}

func TestService_AllComplete(t *testing.T) {
	done := sampleSkills()[4]
	f := newFixture(skills.StaticSource([]skills.Skill{done}))

	res, err := f.svc.Today(context.Background(), energy.High)
	require.NoError(t, err)
	assert.Nil(t, res.Recommendation)
	assert.Contains(t, res.Text, "every skill is complete")
}
