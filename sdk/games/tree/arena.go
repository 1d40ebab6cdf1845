package tree

import (
	"context"

	"github.com/CornellDataScience/PokerBot/sdk/games"
)

// NoParent is the Parent of the root node.
const NoParent = -1

// Node is one entry of a Tree arena. Nodes refer to each other by index.
type Node[S comparable, A ~int] struct {
	State  S
	Parent int
	// Action leads from Parent to this node. It is meaningless for the root.
	Action   A
	Depth    int
	Terminal bool
	Children []int
}

// Options controls how Build lays out the arena.
type Options struct {
	// Dedup makes equal states share a single node, turning the tree into a
	// DAG. A shared node keeps the parent, action and depth of the first path
	// that reached it.
	Dedup bool
}

// Tree is a node arena holding a whole game tree. Nodes[0] is the root.
type Tree[S comparable, A ~int] struct {
	Nodes []Node[S, A]
	index map[S]int
}

// Build expands the full tree of g into an arena.
func Build[S comparable, A ~int](ctx context.Context, g games.Game[S, A], opts Options) (*Tree[S, A], error) {
	t := &Tree[S, A]{index: make(map[S]int)}
	var parents []int

	err := Walk(ctx, g, func(v Visit[S, A]) error {
		parents = parents[:v.Depth]
		parent := NoParent
		if v.Depth > 0 {
			parent = parents[v.Depth-1]
		}

		if opts.Dedup {
			if id, ok := t.index[v.State]; ok {
				t.link(parent, id)
				parents = append(parents, id)
				return SkipChildren
			}
		}

		id := len(t.Nodes)
		node := Node[S, A]{State: v.State, Parent: parent, Depth: v.Depth, Terminal: v.Terminal}
		if a, ok := v.Action(); ok {
			node.Action = a
		}
		t.Nodes = append(t.Nodes, node)
		if _, seen := t.index[v.State]; !seen {
			t.index[v.State] = id
		}
		t.link(parent, id)
		parents = append(parents, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree[S, A]) link(parent, child int) {
	if parent == NoParent {
		return
	}
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, child)
}

// Root returns the root node.
func (t *Tree[S, A]) Root() Node[S, A] { return t.Nodes[0] }

// Len is the number of nodes in the arena.
func (t *Tree[S, A]) Len() int { return len(t.Nodes) }

// Lookup returns the index of the first node holding s.
func (t *Tree[S, A]) Lookup(s S) (int, bool) {
	id, ok := t.index[s]
	return id, ok
}

// Terminals counts the terminal nodes in the arena.
func (t *Tree[S, A]) Terminals() int {
	n := 0
	for _, node := range t.Nodes {
		if node.Terminal {
			n++
		}
	}
	return n
}

// Path returns the actions leading from the root to node id.
func (t *Tree[S, A]) Path(id int) []A {
	var path []A
	for id != 0 && id != NoParent {
		path = append(path, t.Nodes[id].Action)
		id = t.Nodes[id].Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
