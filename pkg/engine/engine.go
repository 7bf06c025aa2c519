// Package engine owns the lifecycle of a single game's search state: the
// position under play, the Zobrist table, the transposition table, and
// the configuration find_best_move is driven through.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/tarrasch/chesscore/internal/eval"
	"github.com/tarrasch/chesscore/internal/search"
	"github.com/tarrasch/chesscore/internal/tt"
	"github.com/tarrasch/chesscore/internal/zobrist"
	"github.com/tarrasch/chesscore/pkg/chess"
	"github.com/tarrasch/chesscore/pkg/chess/fen"
)

var version = build.NewVersion(0, 1, 0)

// Options configures a SearchEngine's defaults.
type Options struct {
	// MaxDepth is the default iterative-deepening depth limit.
	MaxDepth uint
	// HashMB is the transposition table size, in megabytes.
	HashMB uint
	// EngineColor, if set, fixes which side the engine plays regardless
	// of who is to move in the position passed to Reset. Left unset,
	// the engine plays whoever is to move.
	EngineColor lang.Optional[chess.Color]
}

func (o Options) String() string {
	if c, ok := o.EngineColor.V(); ok {
		return fmt.Sprintf("{maxDepth=%v, hashMB=%v, engineColor=%v}", o.MaxDepth, o.HashMB, c)
	}
	return fmt.Sprintf("{maxDepth=%v, hashMB=%v}", o.MaxDepth, o.HashMB)
}

const (
	defaultMaxDepth = 4
	// defaultHashMB is sized so tt.New's power-of-two rounding still clears
	// spec §5's 2^20-entry floor at the ~40-byte-per-entry estimate.
	defaultHashMB = 64
	bytesPerMB    = 1 << 20
)

// SearchEngine owns evaluator state, the Zobrist tables (initialized once
// from the fixed seed), the transposition table, and configuration for a
// single game. It is created once per game; FindBestMove may be called
// repeatedly on the same instance, but never concurrently with itself —
// the search it drives is strictly single-threaded.
type SearchEngine struct {
	zt   *zobrist.Table
	seed int64
	opts Options

	mu          sync.Mutex
	pos         *chess.Board
	engineColor chess.Color
	table       *tt.Table
	moveCount   int
}

// Option configures a SearchEngine at construction time.
type Option func(*SearchEngine)

// WithOptions sets the default depth and hash-table size.
func WithOptions(opts Options) Option {
	return func(e *SearchEngine) {
		e.opts = opts
	}
}

// WithZobrist overrides the compiled-in Zobrist seed (2025).
func WithZobrist(seed int64) Option {
	return func(e *SearchEngine) {
		e.seed = seed
	}
}

// WithEngineColor fixes which side the engine plays on every Reset,
// regardless of who is to move in the position given to it.
func WithEngineColor(c chess.Color) Option {
	return func(e *SearchEngine) {
		e.opts.EngineColor = lang.Some(c)
	}
}

// New constructs a SearchEngine positioned at the standard start
// position, with the engine playing the configured EngineColor if set and
// the side to move otherwise.
func New(ctx context.Context, opts ...Option) *SearchEngine {
	e := &SearchEngine{
		seed: zobrist.Seed,
		opts: Options{MaxDepth: defaultMaxDepth, HashMB: defaultHashMB},
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = zobrist.NewTable(e.seed)

	if err := e.Reset(ctx, fen.Initial); err != nil {
		panic(fmt.Sprintf("engine: invalid initial position: %v", err))
	}

	logw.Infof(ctx, "Initialized %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and compiled-in version.
func (e *SearchEngine) Name() string {
	return fmt.Sprintf("chesscore %v", version)
}

func (e *SearchEngine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *SearchEngine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.MaxDepth = depth
}

func (e *SearchEngine) SetHash(sizeMB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.HashMB = sizeMB
	e.table = tt.New(uint64(sizeMB) * bytesPerMB)
}

// Position returns the current position in FEN.
func (e *SearchEngine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fen.Encode(e.pos)
}

// Reset discards the current game state and starts a fresh game over
// position (a FEN string), with the engine playing the configured
// EngineColor if set and the side to move otherwise.
func (e *SearchEngine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, maxDepth=%v, TT=%vMB", position, e.opts.MaxDepth, e.opts.HashMB)

	b, err := fen.Decode(position)
	if err != nil {
		return fmt.Errorf("engine: invalid position %q: %w", position, err)
	}

	e.pos = b
	if c, ok := e.opts.EngineColor.V(); ok {
		e.engineColor = c
	} else {
		e.engineColor = b.SideToMove()
	}
	e.table = tt.New(uint64(e.opts.HashMB) * bytesPerMB)
	e.moveCount = 0

	logw.Infof(ctx, "New board: %v", e.pos)
	return nil
}

// SetEngineColor fixes which side the engine plays, independent of whose
// turn it currently is.
func (e *SearchEngine) SetEngineColor(c chess.Color) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engineColor = c
}

// Move applies an opponent (or forced) move to the engine's position,
// given in pure algebraic notation (e.g. "e7e8q").
func (e *SearchEngine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := chess.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	resolved, err := e.pos.ResolveMove(candidate.From, candidate.To, candidate.Promotion)
	if err != nil {
		return fmt.Errorf("illegal move: %w", err)
	}

	e.pos.MakeMove(resolved)
	e.moveCount++
	logw.Infof(ctx, "Move %v: %v", resolved, e.pos)
	return nil
}

// TakeBack undoes the latest move.
func (e *SearchEngine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.moveCount == 0 {
		return fmt.Errorf("no move to take back")
	}

	e.pos.UnmakeMove()
	e.moveCount--
	logw.Infof(ctx, "Takeback: %v", e.pos)
	return nil
}

// FindBestMove runs iterative deepening to maxDepth (or the engine's
// configured default if maxDepth is zero) from the current position and
// returns the best move found, or nil if there is none.
func (e *SearchEngine) FindBestMove(ctx context.Context, maxDepth int) (*chess.Move, eval.Score) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if maxDepth <= 0 {
		maxDepth = int(e.opts.MaxDepth)
	}

	s := search.NewSearcher(e.pos, e.engineColor, e.zt, e.table, maxDepth+search.MaxQPly+1)
	move, score := s.FindBestMove(maxDepth)

	logw.Debugf(ctx, "FindBestMove depth=%v nodes=%v move=%v score=%v", maxDepth, s.Nodes(), move, score)
	return move, score
}
