// Package tree walks the game trees defined by package games. It provides
// the pieces a search or solver process builds on: depth-first enumeration,
// a node arena with optional deduplication of equal states, and tree
// statistics.
package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/CornellDataScience/PokerBot/sdk/games"
)

var (
	// ErrDepthExceeded is returned when a path is longer than the game's
	// declared MaxDepth.
	ErrDepthExceeded = errors.New("tree depth exceeds game max depth")

	// ErrDeadEnd is returned when a non-terminal state has no legal action.
	ErrDeadEnd = errors.New("non-terminal state has no legal actions")

	// SkipChildren may be returned by a VisitFunc to continue the walk
	// without descending below the current node.
	SkipChildren = errors.New("skip children")
)

// Visit describes one node reached during a walk.
type Visit[S comparable, A ~int] struct {
	State    S
	Depth    int
	Terminal bool
	// Path lists the actions from the root. It is shared with the walker and
	// must be copied if retained.
	Path []A
}

// Action returns the action leading to the node, and false at the root.
func (v Visit[S, A]) Action() (A, bool) {
	if len(v.Path) == 0 {
		var zero A
		return zero, false
	}
	return v.Path[len(v.Path)-1], true
}

// VisitFunc is called for every node in depth-first pre-order. Returning
// SkipChildren prunes the node's subtree; any other error stops the walk and
// is returned from Walk.
type VisitFunc[S comparable, A ~int] func(Visit[S, A]) error

// Walk enumerates every path of g from the root.
func Walk[S comparable, A ~int](ctx context.Context, g games.Game[S, A], fn VisitFunc[S, A]) error {
	return WalkFrom(ctx, g, g.InitialState(), nil, fn)
}

// WalkFrom enumerates the subtree rooted at s, reached from the root by path.
func WalkFrom[S comparable, A ~int](ctx context.Context, g games.Game[S, A], s S, path []A, fn VisitFunc[S, A]) error {
	w := walker[S, A]{g: g, fn: fn, maxDepth: g.MaxDepth()}
	if len(path) > w.maxDepth {
		return fmt.Errorf("%w: start path of %d > %d", ErrDepthExceeded, len(path), w.maxDepth)
	}
	buf := make([]A, len(path), w.maxDepth+1)
	copy(buf, path)
	return w.walk(ctx, s, buf)
}

type walker[S comparable, A ~int] struct {
	g        games.Game[S, A]
	fn       VisitFunc[S, A]
	maxDepth int
}

func (w *walker[S, A]) walk(ctx context.Context, s S, path []A) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	depth := len(path)
	if depth > w.maxDepth {
		return fmt.Errorf("%w: %d > %d at %s", ErrDepthExceeded, depth, w.maxDepth, w.g.StateString(s))
	}

	terminal := w.g.IsTerminal(s)
	err := w.fn(Visit[S, A]{State: s, Depth: depth, Terminal: terminal, Path: path})
	if errors.Is(err, SkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}
	if terminal {
		return nil
	}

	actions := w.g.LegalActions(s)
	if len(actions) == 0 {
		return fmt.Errorf("%w: %s", ErrDeadEnd, w.g.StateString(s))
	}
	for _, a := range actions {
		if err := w.walk(ctx, w.g.Act(s, a), append(path, a)); err != nil {
			return err
		}
	}
	return nil
}
