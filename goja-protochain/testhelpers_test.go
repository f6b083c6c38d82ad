package gojaprotochain_test

import (
	"testing"

	"github.com/dop251/goja"
	gojaprotochain "github.com/joeycumines/go-protochain/goja-protochain"
	"github.com/joeycumines/go-protochain/protochain"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	rt *goja.Runtime
	r  *protochain.Resolver
	pc *gojaprotochain.Module
	t  *testing.T
}

func newTestEnv(t *testing.T, opts ...protochain.Option) *testEnv {
	t.Helper()
	r, err := protochain.New(opts...)
	require.NoError(t, err)
	rt := goja.New()
	pc, err := gojaprotochain.New(rt, gojaprotochain.WithResolver(r))
	require.NoError(t, err)
	exports := rt.NewObject()
	pc.SetupExports(exports)
	require.NoError(t, rt.Set("pc", exports))
	return &testEnv{rt: rt, r: r, pc: pc, t: t}
}

func (e *testEnv) run(code string) goja.Value {
	e.t.Helper()
	v, err := e.rt.RunString(code)
	require.NoError(e.t, err)
	return v
}

func (e *testEnv) mustFail(code string) error {
	e.t.Helper()
	_, err := e.rt.RunString(code)
	require.Error(e.t, err)
	return err
}

// record returns the record for the named global.
func (e *testEnv) record(name string) *protochain.Object {
	e.t.Helper()
	o, ok := e.pc.Unwrap(e.rt.Get(name))
	require.True(e.t, ok, "%s is not a record", name)
	return o
}
