package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/practica/internal/skills"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

type failingPersister struct {
	calls int
}

func (f *failingPersister) LoadLedger(context.Context, string) (*State, error) {
	return nil, errors.New("disk on fire")
}

func (f *failingPersister) SaveLedger(context.Context, string, State) error {
	f.calls++
	return errors.New("read-only filesystem")
}

func TestWasRecommendedWithin_Boundary(t *testing.T) {
	c := newClock()
	l := New(KeyDaily, nil, WithClock(c.Now))
	window := 2 * 24 * time.Hour

	require.NoError(t, l.Record(context.Background(), "Go", skills.DimensionVideos, c.Now()))
	assert.True(t, l.WasRecommendedWithin("Go", skills.DimensionVideos, window))

	c.Advance(window - time.Second)
	assert.True(t, l.WasRecommendedWithin("Go", skills.DimensionVideos, window), "just inside the window")

	c.Advance(time.Second)
	assert.False(t, l.WasRecommendedWithin("Go", skills.DimensionVideos, window), "exactly at the window is outside")

	c.Advance(time.Hour)
	assert.False(t, l.WasRecommendedWithin("Go", skills.DimensionVideos, window))
}

func TestWasRecommendedWithin_MatchesBothFields(t *testing.T) {
	c := newClock()
	l := New(KeyDaily, nil, WithClock(c.Now))
	require.NoError(t, l.Record(context.Background(), "Go", skills.DimensionVideos, c.Now()))

	assert.False(t, l.WasRecommendedWithin("Go", skills.DimensionFilms, time.Hour))
	assert.False(t, l.WasRecommendedWithin("Rust", skills.DimensionVideos, time.Hour))
}

func TestPrune_EightDayOldEntry(t *testing.T) {
	c := newClock()
	p := NewMemoryPersister()
	l := New(KeyDaily, p, WithClock(c.Now))
	ctx := context.Background()

	old := c.Now().Add(-8 * 24 * time.Hour)
	require.NoError(t, l.Record(ctx, "Go", skills.DimensionLectures, old))

	for days := 1; days <= 7; days++ {
		assert.False(t, l.WasRecommendedWithin("Go", skills.DimensionLectures, time.Duration(days)*24*time.Hour))
	}
	assert.Empty(t, l.Entries())

	st, err := p.LoadLedger(ctx, KeyDaily)
	require.NoError(t, err)
	assert.Empty(t, st.Entries, "pruned before persisting")
}

func TestPrune_OnRead(t *testing.T) {
	c := newClock()
	l := New(KeyDaily, nil, WithClock(c.Now))
	require.NoError(t, l.Record(context.Background(), "Go", skills.DimensionLectures, c.Now()))

	c.Advance(8 * 24 * time.Hour)
	// A generous window still cannot see past retention.
	assert.False(t, l.WasRecommendedWithin("Go", skills.DimensionLectures, 30*24*time.Hour))
	assert.Empty(t, l.Entries())
}

func TestRecord_PersistFailureKeepsMemoryState(t *testing.T) {
	c := newClock()
	p := &failingPersister{}
	var hooked []error
	l := New(KeyDaily, p,
		WithClock(c.Now),
		WithLogger(zerolog.Nop()),
		OnPersistError(func(err error) { hooked = append(hooked, err) }),
	)

	err := l.Record(context.Background(), "Go", skills.DimensionFilms, c.Now())
	require.NoError(t, err, "persist failures never surface from Record")
	assert.Equal(t, 1, p.calls)
	assert.Len(t, hooked, 1)
	assert.True(t, l.WasRecommendedWithin("Go", skills.DimensionFilms, time.Hour))
}

func TestRecord_CanceledContextRecordsNothing(t *testing.T) {
	c := newClock()
	p := NewMemoryPersister()
	l := New(KeyDaily, p, WithClock(c.Now))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Record(ctx, "Go", skills.DimensionFilms, c.Now())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, l.Entries())
	assert.Equal(t, 0, p.Saves)
}

func TestRecordSelection_ReplacesRecent(t *testing.T) {
	c := newClock()
	l := New(KeyInterleave, nil, WithClock(c.Now))
	ctx := context.Background()

	require.NoError(t, l.RecordSelection(ctx, []Pick{
		{SkillName: "Go", Dimension: skills.DimensionVideos},
		{SkillName: "Piano", Dimension: skills.DimensionLectures},
	}, c.Now()))
	assert.Equal(t, []string{"Go", "Piano"}, l.RecentSkillNames(0))
	assert.Equal(t, []string{"Go"}, l.RecentSkillNames(1))

	require.NoError(t, l.RecordSelection(ctx, []Pick{
		{SkillName: "Rust", Dimension: skills.DimensionFilms},
	}, c.Now()))
	assert.Equal(t, []string{"Rust"}, l.RecentSkillNames(0), "overwritten, not appended")
	assert.Len(t, l.Entries(), 3)

	// Plain records leave the recent slot alone.
	require.NoError(t, l.Record(ctx, "Chess", skills.DimensionFilms, c.Now()))
	assert.Equal(t, []string{"Rust"}, l.RecentSkillNames(0))
}

func TestOpen_LoadsAndPrunes(t *testing.T) {
	c := newClock()
	p := NewMemoryPersister()
	ctx := context.Background()

	require.NoError(t, p.SaveLedger(ctx, KeyDaily, State{
		Entries: []Entry{
			{SkillName: "Old", Dimension: skills.DimensionFilms, Timestamp: c.Now().Add(-10 * 24 * time.Hour)},
			{SkillName: "Go", Dimension: skills.DimensionFilms, Timestamp: c.Now().Add(-time.Hour)},
		},
		RecentSkills: []string{"Go"},
	}))

	l, err := Open(ctx, KeyDaily, p, WithClock(c.Now))
	require.NoError(t, err)
	assert.Len(t, l.Entries(), 1)
	assert.True(t, l.WasRecommendedWithin("Go", skills.DimensionFilms, 2*time.Hour))
	assert.Equal(t, []string{"Go"}, l.RecentSkillNames(0))
}

func TestOpen_LoadFailureReturnsUsableLedger(t *testing.T) {
	l, err := Open(context.Background(), KeyDaily, &failingPersister{}, WithLogger(zerolog.Nop()))
	require.Error(t, err)
	require.NotNil(t, l)
	assert.Empty(t, l.Entries())
}

func TestEntry_CalendarDate(t *testing.T) {
	c := newClock()
	l := New(KeyDaily, nil, WithClock(c.Now))
	require.NoError(t, l.Record(context.Background(), "Go", skills.DimensionFilms, c.Now()))

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-03-10", entries[0].CalendarDate)
}
