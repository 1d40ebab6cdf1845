package tree

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/CornellDataScience/PokerBot/sdk/games"
)

// Stats summarises a game tree.
type Stats struct {
	Nodes     int
	Terminals int
	MaxDepth  int
	// States counts distinct public states.
	States  int
	Elapsed time.Duration
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Terminals += o.Terminals
	s.MaxDepth = max(s.MaxDepth, o.MaxDepth)
}

// Collect walks the whole tree of g and reports its size. Each subtree below
// the root is walked on its own goroutine; games are immutable values, so
// they are shared without locking. A nil clock uses the real clock.
func Collect[S comparable, A ~int](ctx context.Context, g games.Game[S, A], clock quartz.Clock) (Stats, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	start := clock.Now()

	root := g.InitialState()
	total := Stats{Nodes: 1, States: 1}
	if g.IsTerminal(root) {
		total.Terminals = 1
		total.Elapsed = clock.Since(start)
		return total, nil
	}

	actions := g.LegalActions(root)
	parts := make([]Stats, len(actions))
	seen := make([]map[S]struct{}, len(actions))

	eg, ctx := errgroup.WithContext(ctx)
	for i, a := range actions {
		eg.Go(func() error {
			states := make(map[S]struct{})
			err := WalkFrom(ctx, g, g.Act(root, a), []A{a}, func(v Visit[S, A]) error {
				parts[i].Nodes++
				if v.Terminal {
					parts[i].Terminals++
				}
				parts[i].MaxDepth = max(parts[i].MaxDepth, v.Depth)
				states[v.State] = struct{}{}
				return nil
			})
			seen[i] = states
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return Stats{}, err
	}

	distinct := map[S]struct{}{root: {}}
	for i := range parts {
		total.add(parts[i])
		for s := range seen[i] {
			distinct[s] = struct{}{}
		}
	}
	total.States = len(distinct)
	total.Elapsed = clock.Since(start)
	return total, nil
}
