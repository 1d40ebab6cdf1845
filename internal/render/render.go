// Package render draws game tree arenas as indented text for humans.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/CornellDataScience/PokerBot/sdk/games"
	"github.com/CornellDataScience/PokerBot/sdk/games/tree"
)

// Options controls tree rendering.
type Options struct {
	// Styled colours the output with lipgloss. Colour is forced even when w
	// is not a terminal.
	Styled bool
	// Indent is repeated once per level. Defaults to two spaces.
	Indent string
}

type renderer[S comparable, A ~int] struct {
	w       io.Writer
	g       games.Game[S, A]
	t       *tree.Tree[S, A]
	opts    Options
	lg      *lipgloss.Renderer
	printed []bool
}

// Tree writes one line per node of t, children indented below their parent:
//
//	#0 (pid=0,last=start,pot=1/1)
//	  #1 check (pid=1,last=check,pot=1/1)
//	    #2 check (pid=0,last=check,pot=1/1) terminal
//
// In a deduplicated tree a node reached a second time is printed as a
// reference ("= #7") instead of repeating its subtree.
func Tree[S comparable, A ~int](w io.Writer, g games.Game[S, A], t *tree.Tree[S, A], opts Options) error {
	if t.Len() == 0 {
		return nil
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	r := &renderer[S, A]{w: w, g: g, t: t, opts: opts, printed: make([]bool, t.Len())}
	if opts.Styled {
		r.lg = lipgloss.NewRenderer(w)
		r.lg.SetColorProfile(termenv.ANSI256)
	}
	return r.node(0, 0)
}

func (r *renderer[S, A]) node(id, level int) error {
	indent := strings.Repeat(r.opts.Indent, level)
	if r.printed[id] {
		_, err := fmt.Fprintf(r.w, "%s%s\n", indent, r.style(SharedStyle, fmt.Sprintf("= #%d", id)))
		return err
	}
	r.printed[id] = true

	n := r.t.Nodes[id]
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(r.style(IDStyle, fmt.Sprintf("#%d", id)))
	b.WriteByte(' ')
	if n.Parent != tree.NoParent {
		b.WriteString(r.style(ActionStyle, r.g.ActionString(n.Action)))
		b.WriteByte(' ')
	}
	b.WriteString(r.style(StateStyle, r.g.StateString(n.State)))
	if n.Terminal {
		b.WriteByte(' ')
		b.WriteString(r.style(TerminalStyle, "terminal"))
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return err
	}

	for _, c := range n.Children {
		if err := r.node(c, level+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer[S, A]) style(s lipgloss.Style, text string) string {
	if !r.opts.Styled {
		return text
	}
	return s.Renderer(r.lg).Render(text)
}
