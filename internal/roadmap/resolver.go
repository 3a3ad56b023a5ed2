package roadmap

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/pathfinder/internal/llm"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single model call when Options.Timeout is zero
const DefaultTimeout = 60 * time.Second

// errNoClient is reported in fallback records when no model is configured
var errNoClient = errors.New("no model client configured")

// Options configures a Resolver
type Options struct {
	// RoadmapTier selects the model used for single-role roadmaps
	RoadmapTier llm.ModelTier
	// CompareTier selects the model used for comparisons
	CompareTier llm.ModelTier
	// Timeout bounds each model call; negative disables the bound
	Timeout time.Duration
	Logger  *zap.Logger
}

// Resolver answers roadmap and comparison requests.
// It is safe for concurrent use: the table is read-only and no lock is held
// while the model is called.
type Resolver struct {
	table  *Table
	client llm.Client
	opts   Options
	logger *zap.Logger
}

// NewResolver creates a Resolver. A nil table behaves as an empty one; a nil
// client makes every miss return a fallback record.
func NewResolver(table *Table, client llm.Client, opts Options) *Resolver {
	if table == nil {
		table = EmptyTable()
	}
	if opts.RoadmapTier == "" {
		opts.RoadmapTier = llm.TierStandard
	}
	if opts.CompareTier == "" {
		opts.CompareTier = llm.TierLite
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		table:  table,
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// Table returns the resolver's roadmap table
func (r *Resolver) Table() *Table {
	return r.table
}

// Cached reports whether Resolve answers role from the table without a model call
func (r *Resolver) Cached(role string) bool {
	return r.table.Contains(role)
}

// Resolve returns the roadmap for role. Table hits carry ai_generated=false
// and the caller's role string exactly as given; misses go to the model.
func (r *Resolver) Resolve(ctx context.Context, role string) Record {
	if rec, ok := r.table.Lookup(role); ok {
		r.logger.Debug("roadmap table hit",
			zap.String("role", role),
			zap.String("key", string(NormalizeKey(role))))
		return stampRecord(rec, false, roleStamp(role))
	}

	r.logger.Debug("roadmap table miss", zap.String("role", role))
	return r.generate(ctx, BuildRoadmapPrompt(role), r.opts.RoadmapTier, roleStamp(role))
}

// Compare asks the model to compare two roles. Comparisons are never cached.
func (r *Resolver) Compare(ctx context.Context, roleA, roleB string) Record {
	return r.generate(ctx, BuildComparePrompt(roleA, roleB), r.opts.CompareTier, compareStamp(roleA, roleB))
}

func (r *Resolver) generate(ctx context.Context, prompt string, tier llm.ModelTier, stamp map[string]string) Record {
	if r.client == nil {
		r.logger.Warn("model call skipped", zap.Error(errNoClient))
		return Fallback("", errNoClient, stamp)
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := r.client.GenerateContent(ctx, prompt, tier)
	latency := time.Since(start)
	if err != nil {
		r.logger.Warn("model call failed",
			zap.String("model", r.client.GetModel(tier)),
			zap.Duration("latency", latency),
			zap.Error(err))
		return Fallback(text, err, stamp)
	}

	rec, parsed := normalize(text, stamp)
	if !parsed {
		r.logger.Info("model output was not a JSON object",
			zap.String("model", r.client.GetModel(tier)),
			zap.Int("bytes", len(text)))
	}
	r.logger.Debug("model call completed",
		zap.String("model", r.client.GetModel(tier)),
		zap.Duration("latency", latency))
	return rec
}
