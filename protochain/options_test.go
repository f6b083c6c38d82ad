package protochain

import (
	"bytes"
	"errors"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level logiface.Level) *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(buf), stumpy.WithTimeField(``)),
		stumpy.L.WithLevel(level),
	).Logger()
}

func TestNew_defaults(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Equal(t, Strict, r.Mode())
	assert.Equal(t, DefaultMaxDepth, r.MaxDepth())
	assert.Nil(t, r.cache)
	assert.Nil(t, r.logger)
	require.NotNil(t, r.Root())
	assert.Nil(t, r.Root().Prototype())

	r, err = New(nil, WithMode(Relaxed), WithMaxDepth(5), WithLookupCache(true))
	require.NoError(t, err)
	assert.Equal(t, Relaxed, r.Mode())
	assert.Equal(t, 5, r.MaxDepth())
	assert.NotNil(t, r.cache)
}

func TestNew_invalidOptions(t *testing.T) {
	for _, tc := range [...]struct {
		name string
		opt  Option
		err  string
	}{
		{`mode zero`, WithMode(0), `protochain: invalid mode: Mode(0)`},
		{`mode unknown`, WithMode(3), `protochain: invalid mode: Mode(3)`},
		{`depth zero`, WithMaxDepth(0), `protochain: max depth must be positive`},
		{`depth negative`, WithMaxDepth(-1), `protochain: max depth must be positive`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New(tc.opt)
			assert.Nil(t, r)
			assert.EqualError(t, err, tc.err)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, `strict`, Strict.String())
	assert.Equal(t, `relaxed`, Relaxed.String())
	assert.Equal(t, `Mode(0)`, Mode(0).String())
}

func TestWithLogger_relaxedRejections(t *testing.T) {
	var buf bytes.Buffer
	r := newTestResolver(t, WithMode(Relaxed), WithLogger(newTestLogger(&buf, logiface.LevelDebug)))
	o := mustCreate(t, r, nil, Prop(`name`, Value(`John`)))

	require.NoError(t, r.Write(o, StringKey(`name`), `Pete`))
	assert.Contains(t, buf.String(), `rejection ignored`)
	assert.Contains(t, buf.String(), `cannot assign to \"name\"`)
	buf.Reset()

	ok, err := r.Remove(o, StringKey(`name`))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), `rejection ignored`)
	buf.Reset()

	require.NoError(t, r.Link(o, r.Root()))
	assert.Contains(t, buf.String(), `prototype linked`)
	assert.Contains(t, buf.String(), `"lvl":"debug"`)
	assert.NotContains(t, buf.String(), `object created`)
}

func TestWithLogger_trace(t *testing.T) {
	var buf bytes.Buffer
	r := newTestResolver(t, WithLogger(newTestLogger(&buf, logiface.LevelTrace)))
	buf.Reset()
	r.NewObject()
	assert.Contains(t, buf.String(), `object created`)
}

func TestErrors(t *testing.T) {
	for _, tc := range [...]struct {
		err    error
		target error
		msg    string
	}{
		{&CyclicPrototypeError{Object: 1, Prototype: 2}, ErrCyclicPrototype, `protochain: cyclic prototype: object 1 cannot link to 2`},
		{&ConfigurationError{Op: `remove`, Reason: ReasonNonConfigurable, Key: StringKey(`x`), Object: 3}, ErrConfiguration, `protochain: cannot remove "x" on object 3: property is not configurable`},
		{&ConfigurationError{Op: `define`, Reason: ReasonNonConfigurable, Detail: `value`, Key: SymbolKey(NewSymbol(`s`)), Object: 3}, ErrConfiguration, `protochain: cannot define "Symbol(s)" on object 3: property is not configurable (value)`},
		{&WriteRejectedError{Reason: ReasonReadOnly, Key: StringKey(`x`), Object: 4}, ErrWriteRejected, `protochain: cannot assign to "x" on object 4: read-only`},
		{&ChainDepthError{Object: 5, MaxDepth: 10}, ErrChainDepth, `protochain: prototype chain of object 5 exceeds max depth 10`},
	} {
		t.Run(tc.msg, func(t *testing.T) {
			assert.EqualError(t, tc.err, tc.msg)
			assert.ErrorIs(t, tc.err, tc.target)
			for _, other := range []error{ErrCyclicPrototype, ErrConfiguration, ErrWriteRejected, ErrChainDepth} {
				if other != tc.target {
					assert.False(t, errors.Is(tc.err, other))
				}
			}
		})
	}
	assert.True(t, isFlagViolation(&ConfigurationError{}))
	assert.True(t, isFlagViolation(&WriteRejectedError{}))
	assert.False(t, isFlagViolation(&CyclicPrototypeError{}))
	assert.False(t, isFlagViolation(ErrInvalidDefinition))
}
