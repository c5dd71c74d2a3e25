package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/practica/internal/logging"
	"github.com/abhisek/practica/internal/skills"
)

// DefaultRetention is how long entries survive before pruning.
const DefaultRetention = 7 * 24 * time.Hour

// Ledger keys used by the CLI.
const (
	KeyDaily      = "daily"
	KeyInterleave = "interleave"
)

// Entry is one immutable recommendation fact.
type Entry struct {
	SkillName    string           `json:"skill_name"`
	Dimension    skills.Dimension `json:"dimension"`
	Timestamp    time.Time        `json:"timestamp"`
	CalendarDate string           `json:"calendar_date"`
}

// Pick is a (skill, dimension) pair handed to RecordSelection.
type Pick struct {
	SkillName string
	Dimension skills.Dimension
}

// State is the serialized form of a ledger.
type State struct {
	Entries      []Entry  `json:"entries"`
	RecentSkills []string `json:"recent_skills,omitempty"`
}

// Persister stores ledger state keyed by ledger identity.
type Persister interface {
	// LoadLedger returns the stored state, or nil if nothing was saved yet.
	LoadLedger(ctx context.Context, key string) (*State, error)

	// SaveLedger replaces the stored state.
	SaveLedger(ctx context.Context, key string, state State) error
}

// Ledger is an append-only, age-pruned log of recommendations plus the
// skill names of the most recent interleaving selection.
//
// Durability is best effort: when a save fails the in-memory state is kept
// and cooldown checks stay correct for the rest of the process.
type Ledger struct {
	mu        sync.Mutex
	key       string
	persister Persister
	entries   []Entry
	recent    []string

	retention      time.Duration
	now            func() time.Time
	log            zerolog.Logger
	onPersistError func(error)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithRetention overrides DefaultRetention.
func WithRetention(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.retention = d
		}
	}
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// OnPersistError registers a hook that observes save failures.
func OnPersistError(fn func(error)) Option {
	return func(l *Ledger) { l.onPersistError = fn }
}

// New creates an empty ledger. persister may be nil for a purely
// in-memory ledger.
func New(key string, persister Persister, opts ...Option) *Ledger {
	l := &Ledger{
		key:       key,
		persister: persister,
		retention: DefaultRetention,
		now:       time.Now,
		log:       logging.Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With().Str("ledger", key).Logger()
	return l
}

// Open creates a ledger and loads its persisted state.
func Open(ctx context.Context, key string, persister Persister, opts ...Option) (*Ledger, error) {
	l := New(key, persister, opts...)
	if persister == nil {
		return l, nil
	}

	state, err := persister.LoadLedger(ctx, key)
	if err != nil {
		return l, fmt.Errorf("load ledger %q: %w", key, err)
	}
	if state != nil {
		l.entries = append(l.entries, state.Entries...)
		l.recent = append(l.recent, state.RecentSkills...)
		l.prune(l.now())
	}
	return l, nil
}

// Key returns the ledger identity.
func (l *Ledger) Key() string {
	return l.key
}

// Record appends an entry, prunes expired ones and persists. A context that
// is already done leaves the ledger untouched and returns its error; save
// failures after the append are logged, not returned.
func (l *Ledger) Record(ctx context.Context, skillName string, dim skills.Dimension, when time.Time) error {
	return l.commit(ctx, []Pick{{SkillName: skillName, Dimension: dim}}, when, false)
}

// RecordSelection appends one entry per pick and overwrites the recent-names
// slot with exactly the picked skill names.
func (l *Ledger) RecordSelection(ctx context.Context, picks []Pick, when time.Time) error {
	return l.commit(ctx, picks, when, true)
}

func (l *Ledger) commit(ctx context.Context, picks []Pick, when time.Time, replaceRecent bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range picks {
		l.entries = append(l.entries, Entry{
			SkillName:    p.SkillName,
			Dimension:    p.Dimension,
			Timestamp:    when,
			CalendarDate: when.Format(time.DateOnly),
		})
	}
	if replaceRecent {
		l.recent = make([]string, len(picks))
		for i, p := range picks {
			l.recent[i] = p.SkillName
		}
	}
	l.prune(l.now())
	l.persist(ctx)
	return nil
}

// WasRecommendedWithin reports whether the pair was recorded less than
// window ago. At exactly window elapsed it returns false.
func (l *Ledger) WasRecommendedWithin(skillName string, dim skills.Dimension, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for _, e := range l.entries {
		if e.SkillName != skillName || e.Dimension != dim {
			continue
		}
		age := now.Sub(e.Timestamp)
		if age > l.retention {
			continue
		}
		if age < window {
			return true
		}
	}
	return false
}

// RecentSkillNames returns the skill names of the last interleaving
// selection. limit <= 0 returns all of them.
func (l *Ledger) RecentSkillNames(limit int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.recent)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]string, n)
	copy(out, l.recent[:n])
	return out
}

// Entries returns the surviving entries, oldest first.
func (l *Ledger) Entries() []Entry {
	return l.EntriesSince(time.Time{})
}

// EntriesSince returns surviving entries recorded at or after since.
func (l *Ledger) EntriesSince(since time.Time) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.retention)
	var out []Entry
	for _, e := range l.entries {
		if e.Timestamp.Before(cutoff) || e.Timestamp.Before(since) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// prune drops entries older than the retention window. Caller holds mu.
func (l *Ledger) prune(now time.Time) {
	cutoff := now.Add(-l.retention)
	kept := l.entries[:0]
	for _, e := range l.entries {
		if !e.Timestamp.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	l.entries = kept
}

// persist saves the current state. Caller holds mu.
func (l *Ledger) persist(ctx context.Context) {
	if l.persister == nil {
		return
	}

	state := State{
		Entries:      make([]Entry, len(l.entries)),
		RecentSkills: make([]string, len(l.recent)),
	}
	copy(state.Entries, l.entries)
	copy(state.RecentSkills, l.recent)

	if err := l.persister.SaveLedger(ctx, l.key, state); err != nil {
		l.log.Warn().Err(err).Int("entries", len(state.Entries)).Msg("persist ledger; keeping in-memory state")
		if l.onPersistError != nil {
			l.onPersistError(err)
		}
	}
}
