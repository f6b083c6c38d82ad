package protochain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCache_nil(t *testing.T) {
	var c *lookupCache
	_, ok := c.get(0, nil, StringKey(`x`))
	assert.False(t, ok)
	c.put(0, nil, StringKey(`x`), nil)
	assert.Equal(t, 0, c.len())
}

func TestLookupCache_epoch(t *testing.T) {
	c := newLookupCache()
	o := &Object{}
	c.put(1, o, StringKey(`x`), o)
	holder, ok := c.get(1, o, StringKey(`x`))
	require.True(t, ok)
	assert.Same(t, o, holder)
	c.put(1, o, StringKey(`y`), nil)
	holder, ok = c.get(1, o, StringKey(`y`))
	require.True(t, ok)
	assert.Nil(t, holder)
	assert.Equal(t, 2, c.len())

	_, ok = c.get(2, o, StringKey(`x`))
	assert.False(t, ok)
	assert.Equal(t, 0, c.len())
}

func TestLookupCache_bounded(t *testing.T) {
	c := newLookupCache()
	o := &Object{}
	for i := range maxCacheEntries + 10 {
		c.put(1, o, StringKey(string(rune('a'+i%26))+string(rune(i))), nil)
	}
	assert.LessOrEqual(t, c.len(), maxCacheEntries)
}

func TestResolver_lookupCache(t *testing.T) {
	r := newTestResolver(t, WithLookupCache(true))
	require.NotNil(t, r.cache)
	grand := mustCreate(t, r, nil, Prop(`x`, Plain(`grand`)))
	parent := mustCreate(t, r, grand)
	child := mustCreate(t, r, parent)

	assert.Equal(t, `grand`, mustRead(t, r, child, `x`))
	assert.True(t, IsUndefined(mustRead(t, r, child, `y`)))
	assert.Equal(t, 2, r.cache.len())
	assert.Equal(t, `grand`, mustRead(t, r, child, `x`))

	// value updates don't change the holder
	require.NoError(t, r.Write(grand, StringKey(`x`), `updated`))
	assert.Equal(t, `updated`, mustRead(t, r, child, `x`))

	// additions invalidate
	require.NoError(t, r.Write(parent, StringKey(`x`), `parent`))
	assert.Equal(t, `parent`, mustRead(t, r, child, `x`))
	require.NoError(t, r.Write(grand, StringKey(`y`), `y`))
	assert.Equal(t, `y`, mustRead(t, r, child, `y`))

	// removals invalidate
	_, err := r.Remove(parent, StringKey(`x`))
	require.NoError(t, err)
	assert.Equal(t, `updated`, mustRead(t, r, child, `x`))

	// links invalidate
	other := mustCreate(t, r, nil, Prop(`x`, Plain(`other`)))
	require.NoError(t, r.Link(parent, other))
	assert.Equal(t, `other`, mustRead(t, r, child, `x`))
	assert.True(t, IsUndefined(mustRead(t, r, child, `y`)))

	// failed define operations are rolled back, and invalidate
	r.Seal(other)
	require.Error(t, r.DefineProperties(parent, Prop(`x`, Plain(`p`)), Prop(`z`, Value(1)), Prop(`z`, Value(2))))
	assert.Equal(t, `other`, mustRead(t, r, child, `x`))
}

func TestResolver_lookupCacheDisabled(t *testing.T) {
	r := newTestResolver(t)
	assert.Nil(t, r.cache)
	o := mustCreate(t, r, nil, Prop(`x`, Plain(1)))
	assert.Equal(t, 1, mustRead(t, r, o, `x`))
	assert.Equal(t, 0, r.cache.len())
}
