// Package strategy loads per-node action distributions produced by a solver
// and samples moves from them.
//
// A strategy file has a free-form header line followed by one line per
// decision node:
//
//	node=3	(pid=0,last=raise,pot=1/2)	| hand=0 1 0 | hand=1 0.5 0.5 | hand=2 0 1
//
// The node is either the arena index printed by the tree command (#3) or the
// comma separated actions leading to it ("check,raise"; empty for the root).
// Text after the node up to the first "|" is ignored. Each hand=h group lists
// one probability per legal action, in LegalActions order. Blank lines and
// lines starting with # are skipped.
package strategy

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/CornellDataScience/PokerBot/internal/randutil"
	"github.com/CornellDataScience/PokerBot/sdk/games"
	"github.com/CornellDataScience/PokerBot/sdk/games/tree"
)

// Tolerance on how far a listed distribution may sum from 1.
const sumTolerance = 1e-3

var (
	// ErrIllegalPath is returned when a node path cannot be played from the
	// root.
	ErrIllegalPath = errors.New("illegal action path")
	// ErrTerminalNode is returned for a node where nobody acts.
	ErrTerminalNode = errors.New("node is terminal")
)

// Policy chooses the action of the player to act in s, holding private
// hand.
type Policy[S comparable, A ~int] interface {
	Choose(r *rand.Rand, s S, hand int) A
}

// Uniform picks every legal action with equal probability.
type Uniform[S comparable, A ~int] struct {
	Game games.Game[S, A]
}

func (u Uniform[S, A]) Choose(r *rand.Rand, s S, _ int) A {
	return randutil.Pick(r, u.Game.LegalActions(s))
}

// Strategy is a loaded strategy table. It is read-only after Load and safe
// for concurrent use. Nodes or hands the file leaves out are played
// uniformly.
type Strategy[S comparable, A ~int] struct {
	game  games.Game[S, A]
	hands int
	nodes map[S][][]float64
}

// Len is the number of nodes with at least one distribution.
func (st *Strategy[S, A]) Len() int { return len(st.nodes) }

// Hands is the number of private hands the table was loaded for.
func (st *Strategy[S, A]) Hands() int { return st.hands }

// Distribution returns the probabilities of LegalActions(s) for hand.
func (st *Strategy[S, A]) Distribution(s S, hand int) ([]float64, bool) {
	rows, ok := st.nodes[s]
	if !ok || hand < 0 || hand >= len(rows) || rows[hand] == nil {
		return nil, false
	}
	return rows[hand], true
}

// Choose samples an action for hand in s.
func (st *Strategy[S, A]) Choose(r *rand.Rand, s S, hand int) A {
	legal := st.game.LegalActions(s)
	dist, ok := st.Distribution(s, hand)
	if !ok {
		return randutil.Pick(r, legal)
	}

	x := r.Float64()
	last := 0
	for i, p := range dist {
		if p == 0 {
			continue
		}
		if x < p {
			return legal[i]
		}
		x -= p
		last = i
	}
	return legal[last]
}

// LoadFile reads a strategy file for g with numHands private hands.
func LoadFile[S comparable, A ~int](ctx context.Context, filename string, g games.Game[S, A], numHands int, parse func(string) (A, error)) (*Strategy[S, A], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open strategy: %w", err)
	}
	defer f.Close()

	st, err := Load(ctx, f, g, numHands, parse)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return st, nil
}

// Load reads a strategy table from r.
func Load[S comparable, A ~int](ctx context.Context, r io.Reader, g games.Game[S, A], numHands int, parse func(string) (A, error)) (*Strategy[S, A], error) {
	if numHands <= 0 {
		return nil, fmt.Errorf("hands must be positive, got %d", numHands)
	}
	l := &loader[S, A]{
		ctx:   ctx,
		parse: parse,
		st:    &Strategy[S, A]{game: g, hands: numHands, nodes: make(map[S][][]float64)},
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if lineNo == 1 && !strings.HasPrefix(line, "node=") {
			continue
		}
		if err := l.line(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read strategy: %w", err)
	}
	return l.st, nil
}

// SplitPath splits a comma separated action list, dropping empty names.
func SplitPath(path string) []string {
	var out []string
	for _, name := range strings.Split(path, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

type loader[S comparable, A ~int] struct {
	ctx   context.Context
	parse func(string) (A, error)
	st    *Strategy[S, A]
	arena *tree.Tree[S, A]
}

func (l *loader[S, A]) line(line string) error {
	groups := strings.Split(line, "|")
	head := strings.Fields(groups[0])
	if len(head) == 0 || !strings.HasPrefix(head[0], "node=") {
		return fmt.Errorf("expected node=, got %q", groups[0])
	}
	key := strings.TrimPrefix(head[0], "node=")

	s, err := l.resolve(key)
	if err != nil {
		return fmt.Errorf("node %q: %w", key, err)
	}
	g := l.st.game
	if g.IsTerminal(s) {
		return fmt.Errorf("node %q: %w", key, ErrTerminalNode)
	}
	if _, dup := l.st.nodes[s]; dup {
		return fmt.Errorf("node %q: duplicate node", key)
	}
	legal := g.LegalActions(s)

	rows := make([][]float64, l.st.hands)
	for _, group := range groups[1:] {
		fields := strings.Fields(group)
		if len(fields) == 0 {
			continue
		}
		hand, dist, err := parseHand(fields, len(legal), l.st.hands)
		if err != nil {
			return fmt.Errorf("node %q: %w", key, err)
		}
		if rows[hand] != nil {
			return fmt.Errorf("node %q: duplicate hand %d", key, hand)
		}
		rows[hand] = dist
	}
	l.st.nodes[s] = rows
	return nil
}

func (l *loader[S, A]) resolve(key string) (S, error) {
	g := l.st.game
	if id, err := strconv.Atoi(key); err == nil {
		if l.arena == nil {
			arena, err := tree.Build(l.ctx, g, tree.Options{})
			if err != nil {
				var zero S
				return zero, fmt.Errorf("build tree: %w", err)
			}
			l.arena = arena
		}
		if id < 0 || id >= l.arena.Len() {
			var zero S
			return zero, fmt.Errorf("node id out of range [0, %d)", l.arena.Len())
		}
		return l.arena.Nodes[id].State, nil
	}

	s := g.InitialState()
	for _, name := range SplitPath(key) {
		a, err := l.parse(name)
		if err != nil {
			return s, err
		}
		if g.IsTerminal(s) || !slices.Contains(g.LegalActions(s), a) {
			return s, fmt.Errorf("%w: %s in %s", ErrIllegalPath, name, g.StateString(s))
		}
		s = g.Act(s, a)
	}
	return s, nil
}

func parseHand(fields []string, numActions, numHands int) (int, []float64, error) {
	name, ok := strings.CutPrefix(fields[0], "hand=")
	if !ok {
		return 0, nil, fmt.Errorf("expected hand=, got %q", fields[0])
	}
	hand, err := strconv.Atoi(name)
	if err != nil {
		return 0, nil, fmt.Errorf("hand %q: %w", name, err)
	}
	if hand < 0 || hand >= numHands {
		return 0, nil, fmt.Errorf("hand %d out of range [0, %d)", hand, numHands)
	}

	probs := fields[1:]
	if len(probs) != numActions {
		return 0, nil, fmt.Errorf("hand %d: %d probabilities for %d legal actions", hand, len(probs), numActions)
	}
	dist := make([]float64, numActions)
	sum := 0.0
	for i, field := range probs {
		p, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return 0, nil, fmt.Errorf("hand %d: bad probability %q", hand, field)
		}
		dist[i] = p
		sum += p
	}
	if math.Abs(sum-1) > sumTolerance {
		return 0, nil, fmt.Errorf("hand %d: probabilities sum to %g", hand, sum)
	}
	for i := range dist {
		dist[i] /= sum
	}
	return hand, dist, nil
}
