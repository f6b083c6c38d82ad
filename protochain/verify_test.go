package protochain

import (
	"bytes"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T, r *Resolver, n int) []*Object {
	t.Helper()
	chain := []*Object{mustCreate(t, r, nil)}
	for i := 1; i < n; i++ {
		chain = append(chain, mustCreate(t, r, chain[i-1]))
	}
	return chain
}

func TestResolver_Verify(t *testing.T) {
	r := newTestResolver(t, WithMaxDepth(3))
	chain := buildChain(t, r, 6)

	require.NoError(t, r.Verify(chain[0]))
	require.NoError(t, r.Verify(chain[3]))
	var depthErr *ChainDepthError
	require.ErrorAs(t, r.Verify(chain[5]), &depthErr)
	assert.Equal(t, chain[5].ID(), depthErr.Object)
	assert.Equal(t, 3, depthErr.MaxDepth)
}

func TestResolver_maxDepth(t *testing.T) {
	for _, mode := range []Mode{Strict, Relaxed} {
		t.Run(mode.String(), func(t *testing.T) {
			r := newTestResolver(t, WithMaxDepth(3), WithMode(mode))
			assert.Equal(t, 3, r.MaxDepth())
			chain := buildChain(t, r, 6)

			_, err := r.Read(chain[3], StringKey(`missing`))
			require.NoError(t, err)
			_, err = r.Read(chain[5], StringKey(`missing`))
			assert.ErrorIs(t, err, ErrChainDepth)
			assert.ErrorIs(t, r.Write(chain[5], StringKey(`x`), 1), ErrChainDepth)
			_, err = r.Has(chain[5], StringKey(`x`))
			assert.ErrorIs(t, err, ErrChainDepth)
			_, err = r.Enumerate(chain[5], Chained)
			assert.ErrorIs(t, err, ErrChainDepth)
			_, err = NewExtensions(r).Read(chain[5], StringKey(`x`))
			assert.ErrorIs(t, err, ErrChainDepth)

			o := mustCreate(t, r, nil)
			assert.ErrorIs(t, r.Link(o, chain[3]), ErrChainDepth)
			require.NoError(t, r.Link(o, chain[2]))
		})
	}
}

func TestResolver_corruptCycle(t *testing.T) {
	var buf bytes.Buffer
	r := newTestResolver(t,
		WithMaxDepth(8),
		WithLogger(stumpy.L.New(
			stumpy.L.WithStumpy(stumpy.WithWriter(&buf), stumpy.WithTimeField(``)),
			stumpy.L.WithLevel(logiface.LevelWarning),
		).Logger()),
	)
	a := mustCreate(t, r, nil)
	b := mustCreate(t, r, a)
	c := mustCreate(t, r, b)
	// bypasses Link, which would never allow this
	a.proto = c

	var cycleErr *CyclicPrototypeError
	require.ErrorAs(t, r.Verify(b), &cycleErr)
	assert.Equal(t, b.ID(), cycleErr.Object)
	assert.Equal(t, a.ID(), cycleErr.Prototype)

	_, err := r.Read(a, StringKey(`missing`))
	assert.ErrorIs(t, err, ErrCyclicPrototype)
	_, err = r.Enumerate(c, Chained)
	assert.ErrorIs(t, err, ErrCyclicPrototype)
	assert.Contains(t, buf.String(), `depth guard tripped`)
	assert.Contains(t, buf.String(), `"lvl":"warning"`)
}
