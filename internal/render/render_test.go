package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CornellDataScience/PokerBot/sdk/games/kuhn"
	"github.com/CornellDataScience/PokerBot/sdk/games/leduc"
	"github.com/CornellDataScience/PokerBot/sdk/games/tree"
)

func TestTreeKuhn(t *testing.T) {
	g, err := kuhn.New(3)
	require.NoError(t, err)
	tr, err := tree.Build[kuhn.State, kuhn.Action](context.Background(), g, tree.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Tree[kuhn.State, kuhn.Action](&buf, g, tr, Options{}))

	want := strings.Join([]string{
		"#0 (pid=0,last=start,pot=1/1)",
		"  #1 check (pid=1,last=check,pot=1/1)",
		"    #2 check (pid=0,last=check,pot=1/1) terminal",
		"    #3 raise (pid=0,last=raise,pot=1/2)",
		"      #4 fold (pid=1,last=fold,pot=1/2) terminal",
		"      #5 call (pid=1,last=call,pot=2/2) terminal",
		"  #6 raise (pid=1,last=raise,pot=2/1)",
		"    #7 fold (pid=0,last=fold,pot=2/1) terminal",
		"    #8 call (pid=0,last=call,pot=2/2) terminal",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestTreeSharedNodes(t *testing.T) {
	g, err := leduc.New(leduc.DefaultConfig())
	require.NoError(t, err)
	tr, err := tree.Build[leduc.State, leduc.Action](context.Background(), g, tree.Options{Dedup: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Tree[leduc.State, leduc.Action](&buf, g, tr, Options{Indent: "."}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	refs := 0
	for _, l := range lines {
		if strings.Contains(l, "= #") {
			refs++
		}
	}
	assert.Equal(t, tr.Len(), len(lines)-refs)
	assert.Equal(t, 12, refs)
	assert.True(t, strings.HasPrefix(lines[1], ".#1 check "))
}

func TestTreeEmpty(t *testing.T) {
	var buf bytes.Buffer
	g, err := kuhn.New(3)
	require.NoError(t, err)
	require.NoError(t, Tree[kuhn.State, kuhn.Action](&buf, g, &tree.Tree[kuhn.State, kuhn.Action]{}, Options{Styled: true}))
	assert.Empty(t, buf.String())
}

func TestTreeStyledWritesColourToBuffer(t *testing.T) {
	g, err := kuhn.New(3)
	require.NoError(t, err)
	tr, err := tree.Build[kuhn.State, kuhn.Action](context.Background(), g, tree.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Tree[kuhn.State, kuhn.Action](&buf, g, tr, Options{Styled: true}))

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "terminal")
	assert.Equal(t, tr.Len(), strings.Count(out, "\n"))
}
