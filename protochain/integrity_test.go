package protochain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_PreventExtensions(t *testing.T) {
	r := newTestResolver(t)
	proto := r.NewObject()
	o := mustCreate(t, r, nil, Prop(`x`, Plain(1)))
	assert.True(t, r.IsExtensible(o))
	assert.False(t, r.IsSealed(o))
	r.PreventExtensions(o)
	assert.False(t, r.IsExtensible(o))
	assert.False(t, r.IsSealed(o))

	var writeErr *WriteRejectedError
	require.ErrorAs(t, r.Write(o, StringKey(`y`), 2), &writeErr)
	assert.Equal(t, ReasonNotExtensible, writeErr.Reason)

	var confErr *ConfigurationError
	require.ErrorAs(t, r.DefineProperty(o, StringKey(`y`), Plain(2)), &confErr)
	assert.Equal(t, ReasonNotExtensible, confErr.Reason)

	require.ErrorAs(t, r.Link(o, proto), &confErr)
	assert.Equal(t, `link`, confErr.Op)
	assert.Nil(t, o.Prototype())
	// linking to the current prototype is still a no-op
	require.NoError(t, r.Link(o, nil))

	// existing properties may still be updated and removed
	require.NoError(t, r.Write(o, StringKey(`x`), 3))
	assert.Equal(t, 3, mustRead(t, r, o, `x`))
	ok, err := r.Remove(o, StringKey(`x`))
	require.NoError(t, err)
	assert.True(t, ok)

	// with no properties left, the object is trivially frozen
	assert.True(t, r.IsSealed(o))
	assert.True(t, r.IsFrozen(o))
}

func TestResolver_Seal(t *testing.T) {
	r := newTestResolver(t)
	o := mustCreate(t, r, nil, Prop(`x`, Plain(1)))
	r.Seal(o)
	assert.True(t, r.IsSealed(o))
	assert.False(t, r.IsFrozen(o))
	require.NoError(t, r.Write(o, StringKey(`x`), 2))
	assert.Equal(t, 2, mustRead(t, r, o, `x`))
	_, err := r.Remove(o, StringKey(`x`))
	assert.ErrorIs(t, err, ErrConfiguration)
	d, _ := r.GetOwnPropertyDescriptor(o, StringKey(`x`))
	assert.Equal(t, Descriptor{Value: 2, Writable: true, Enumerable: true}, d)
}

func TestResolver_Freeze(t *testing.T) {
	for _, mode := range []Mode{Strict, Relaxed} {
		t.Run(mode.String(), func(t *testing.T) {
			r := newTestResolver(t, WithMode(mode))
			var stored any
			o := mustCreate(t, r, nil,
				Prop(`x`, Plain(1)),
				Prop(`acc`, Accessor(nil, func(_ *Object, v any) error {
					stored = v
					return nil
				}).Configurable(true)),
			)
			r.Freeze(o)
			assert.True(t, r.IsFrozen(o))
			assert.True(t, r.IsSealed(o))

			err := r.Write(o, StringKey(`x`), 2)
			if mode == Strict {
				assert.ErrorIs(t, err, ErrWriteRejected)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, mustRead(t, r, o, `x`))

			// accessors still intercept writes
			require.NoError(t, r.Write(o, StringKey(`acc`), `v`))
			assert.Equal(t, `v`, stored)

			// inheritors may still shadow
			child := mustCreate(t, r, o)
			require.NoError(t, r.Write(child, StringKey(`x`), 5))
			assert.Equal(t, 5, mustRead(t, r, child, `x`))
		})
	}
}
