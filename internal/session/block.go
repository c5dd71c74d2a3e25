package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/practica/internal/logging"
	"github.com/abhisek/practica/internal/skills"
)

// ErrInvalidMinutes is returned when a block is requested with no time.
var ErrInvalidMinutes = errors.New("total minutes must be positive")

// BlockItem is one skill's share of a deep-practice block. The percentages
// are taken before the session starts.
type BlockItem struct {
	SkillID          string           `json:"skill_id"`
	SkillName        string           `json:"skill_name"`
	Category         string           `json:"category"`
	Dimension        skills.Dimension `json:"dimension"`
	Minutes          int              `json:"minutes"`
	DimensionPercent float64          `json:"dimension_percent"`
	OverallPercent   float64          `json:"overall_percent"`
}

// Block is a focused session spanning a few skills with an equal time split.
type Block struct {
	ID           string      `json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	TotalMinutes int         `json:"total_minutes"`
	Items        []BlockItem `json:"items"`
	Completed    bool        `json:"completed"`
}

// Empty reports whether the block has no items.
func (b *Block) Empty() bool {
	return b == nil || len(b.Items) == 0
}

// AllocatedMinutes sums the item shares. It can be less than TotalMinutes
// because the remainder of the split is not redistributed.
func (b *Block) AllocatedMinutes() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, it := range b.Items {
		total += it.Minutes
	}
	return total
}

// BlockLog is an append-only audit log of built blocks.
type BlockLog interface {
	AppendBlock(ctx context.Context, block Block) error
}

// BlockBuilder turns an interleaved plan into a deep-practice block.
type BlockBuilder struct {
	planner Planner
	log     BlockLog
	now     func() time.Time
	newID   func() string
	logger  zerolog.Logger
}

// BuilderOption configures a BlockBuilder.
type BuilderOption func(*BlockBuilder)

// WithBuilderClock overrides the time source.
func WithBuilderClock(now func() time.Time) BuilderOption {
	return func(b *BlockBuilder) { b.now = now }
}

// WithIDFunc overrides block ID generation.
func WithIDFunc(fn func() string) BuilderOption {
	return func(b *BlockBuilder) { b.newID = fn }
}

// WithBuilderLogger sets the builder logger.
func WithBuilderLogger(log zerolog.Logger) BuilderOption {
	return func(b *BlockBuilder) { b.logger = log }
}

// NewBlockBuilder creates a BlockBuilder. log may be nil to skip auditing.
func NewBlockBuilder(planner Planner, log BlockLog, opts ...BuilderOption) *BlockBuilder {
	b := &BlockBuilder{
		planner: planner,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  logging.Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build plans up to BlockSkillCount skills and splits totalMinutes evenly
// between them, rounding down. An empty plan yields an empty block and no
// audit entry. Audit failures are logged and do not fail the build.
func (b *BlockBuilder) Build(ctx context.Context, all []skills.Skill, categories skills.CategoryMap, totalMinutes int) (*Block, error) {
	if totalMinutes <= 0 {
		return nil, ErrInvalidMinutes
	}

	plan, err := b.planner.Plan(ctx, all, categories, BlockSkillCount)
	if err != nil {
		return nil, fmt.Errorf("plan block: %w", err)
	}

	block := &Block{
		CreatedAt:    b.now(),
		TotalMinutes: totalMinutes,
	}
	if plan.Empty() {
		return block, nil
	}

	share := totalMinutes / len(plan.Items)
	block.ID = b.newID()
	block.Items = make([]BlockItem, len(plan.Items))
	for i, it := range plan.Items {
		block.Items[i] = BlockItem{
			SkillID:          it.Skill.ID,
			SkillName:        it.Skill.Name,
			Category:         it.Category,
			Dimension:        it.Dimension,
			Minutes:          share,
			DimensionPercent: skills.Percent(it.Skill, it.Dimension),
			OverallPercent:   skills.OverallCompletionPercent(it.Skill),
		}
	}

	if b.log != nil {
		if err := b.log.AppendBlock(ctx, *block); err != nil {
			b.logger.Warn().Err(err).Str("block", block.ID).Msg("append practice block to audit log")
		}
	}
	return block, nil
}

// MemoryBlockLog keeps blocks in memory.
type MemoryBlockLog struct {
	mu     sync.Mutex
	blocks []Block
}

// NewMemoryBlockLog creates an empty MemoryBlockLog.
func NewMemoryBlockLog() *MemoryBlockLog {
	return &MemoryBlockLog{}
}

func (m *MemoryBlockLog) AppendBlock(_ context.Context, block Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks = append(m.blocks, block)
	return nil
}

// Blocks returns the logged blocks, oldest first.
func (m *MemoryBlockLog) Blocks() []Block {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Block, len(m.blocks))
	copy(out, m.blocks)
	return out
}
