package console

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/philipp01105/nconsole/core"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry(Config{})

	consoles := make([]*Console, 5)
	for i := range consoles {
		consoles[i] = New(fmt.Sprintf("con%d", i), &mockConsole{}, allPhases)
		require.NoError(t, reg.Register(consoles[i]))
	}

	for _, c := range consoles {
		assert.True(t, reg.IsRegistered(c), c.Name)
	}
	assert.False(t, reg.IsRegistered(New("stranger", &mockConsole{}, allPhases)))
	assert.Equal(t, 5, reg.Len())
}

func TestRegistry_NewestFirst(t *testing.T) {
	reg := NewRegistry(Config{})
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, reg.Register(New(name, &mockConsole{}, allPhases)))
	}

	var order []string
	reg.Each(func(c *Console) bool {
		order = append(order, c.Name)
		return true
	})
	assert.Equal(t, []string{"c", "b", "a"}, order)
}

func TestRegistry_RegisterRejects(t *testing.T) {
	reg := NewRegistry(Config{})
	c := New("uart0", &mockConsole{}, allPhases)
	require.NoError(t, reg.Register(c))

	assert.ErrorIs(t, reg.Register(c), ErrAlreadyRegistered)
	assert.ErrorIs(t, reg.Register(nil), ErrNilConsole)

	copied := *c
	copied.next = nil
	assert.ErrorIs(t, reg.Register(&copied), ErrRelocated)

	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_DebugPanics(t *testing.T) {
	reg := NewRegistry(Config{Debug: true})
	c := New("uart0", &mockConsole{}, allPhases)
	require.NoError(t, reg.Register(c))

	assert.PanicsWithError(t, ErrAlreadyRegistered.Error(), func() { _ = reg.Register(c) })
	assert.Panics(t, func() { _ = reg.Register(nil) })
	assert.Panics(t, func() { reg.Unregister(nil) })
	assert.Panics(t, func() { reg.IsRegistered(nil) })
	assert.Panics(t, func() { _ = reg.SetScope(c, 0x100) })
}

func TestRegistry_Unregister(t *testing.T) {
	reg := NewRegistry(Config{})
	a := New("a", &mockConsole{}, allPhases)
	b := New("b", &mockConsole{}, allPhases)
	c := New("c", &mockConsole{}, allPhases)
	for _, con := range []*Console{a, b, c} {
		require.NoError(t, reg.Register(con))
	}

	got, ok := reg.Unregister(b)
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.False(t, reg.IsRegistered(b))
	assert.True(t, reg.IsRegistered(a))
	assert.True(t, reg.IsRegistered(c))
	assert.Equal(t, 2, reg.Len())

	got, ok = reg.Unregister(b)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, 2, reg.Len())

	// head and tail removal
	_, ok = reg.Unregister(c)
	assert.True(t, ok)
	_, ok = reg.Unregister(a)
	assert.True(t, ok)
	assert.Equal(t, 0, reg.Len())

	// a removed record can be registered again
	assert.NoError(t, reg.Register(b))
}

func TestRegistry_UnregisterMatchesByIdentity(t *testing.T) {
	reg := NewRegistry(Config{})
	backend := &mockConsole{}
	registered := New("uart0", backend, allPhases)
	lookalike := New("uart0", backend, allPhases)
	require.NoError(t, reg.Register(registered))

	_, ok := reg.Unregister(lookalike)
	assert.False(t, ok)
	assert.True(t, reg.IsRegistered(registered))
}

func TestRegistry_SetScope(t *testing.T) {
	reg := NewRegistry(Config{})
	c := New("uart0", &mockConsole{}, core.ScopeOf(core.PhaseBoot)|core.FlagEarly|core.FlagTranslateCRLF)

	for _, p := range []core.Phase{core.PhaseRuntime, core.PhaseCrash, 0, core.PhaseAll} {
		require.NoError(t, reg.SetScope(c, core.ScopeOf(p)))
		assert.Equal(t, p, c.Scope())
		assert.Equal(t, core.FlagEarly|core.FlagTranslateCRLF, c.Flags()&^core.ScopeMask)
	}

	assert.ErrorIs(t, reg.SetScope(c, core.FlagEarly), ErrInvalidScope)
	assert.Equal(t, core.PhaseAll, c.Scope())
	assert.ErrorIs(t, reg.SetScope(nil, 0), ErrNilConsole)
}

func TestRegistry_SwitchState(t *testing.T) {
	reg := NewRegistry(Config{})
	assert.Equal(t, core.PhaseBoot, reg.State())

	reg.SwitchState(core.PhaseRuntime)
	assert.Equal(t, core.PhaseRuntime, reg.State())

	// not validated
	reg.SwitchState(0x80)
	assert.Equal(t, core.Phase(0x80), reg.State())
}

func TestRegistry_Close(t *testing.T) {
	reg := NewRegistry(Config{})
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	a := &mockConsole{closeFn: func() error { return errA }}
	b := &mockConsole{}
	c := &mockConsole{closeFn: func() error { return errB }}
	for i, m := range []*mockConsole{a, b, c} {
		require.NoError(t, reg.Register(New(fmt.Sprint(i), m, allPhases)))
	}
	// backends without Close are skipped
	require.NoError(t, reg.Register(New("w", writeOnly(&mockConsole{}), allPhases)))

	err := reg.Close()
	require.Error(t, err)
	assert.ElementsMatch(t, []error{errA, errB}, multierr.Errors(err))
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
	assert.Equal(t, 1, c.closed)
	assert.Equal(t, 4, reg.Len())
}

func TestConsole_Capabilities(t *testing.T) {
	m := &mockConsole{}

	full := New("full", m, allPhases)
	assert.True(t, full.CanWrite())
	assert.True(t, full.CanRead())
	assert.True(t, full.CanFlush())
	assert.Same(t, m, full.Backend())

	w := New("w", writeOnly(m), allPhases)
	assert.True(t, w.CanWrite())
	assert.False(t, w.CanRead())
	assert.False(t, w.CanFlush())

	none := New("none", struct{}{}, allPhases)
	assert.False(t, none.CanWrite() || none.CanRead() || none.CanFlush())
}

func TestRegistry_RecordBelongsToOneRegistry(t *testing.T) {
	a := NewRegistry(Config{})
	b := NewRegistry(Config{})
	x := New("x", &mockConsole{}, allPhases)
	shared := New("shared", &mockConsole{}, allPhases)
	y := New("y", &mockConsole{}, allPhases)
	require.NoError(t, a.Register(x))
	require.NoError(t, a.Register(shared))
	require.NoError(t, b.Register(y))

	assert.ErrorIs(t, b.Register(shared), ErrAlreadyRegistered)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())
	assert.False(t, a.IsRegistered(y))
	assert.False(t, b.IsRegistered(shared))

	// unregistering from the wrong registry leaves both lists intact
	_, ok := b.Unregister(shared)
	assert.False(t, ok)
	_, ok = b.Unregister(y)
	require.True(t, ok)
	assert.True(t, a.IsRegistered(x))
	assert.True(t, a.IsRegistered(shared))
	assert.Equal(t, 2, a.Len())

	// once released a record may move to another registry
	_, ok = a.Unregister(shared)
	require.True(t, ok)
	require.NoError(t, b.Register(shared))
	assert.True(t, b.IsRegistered(shared))
	assert.Equal(t, 1, a.Len())
}

func TestRegistry_CrossRegistryPanicsInDebug(t *testing.T) {
	a := NewRegistry(Config{})
	b := NewRegistry(Config{Debug: true})
	c := New("c", &mockConsole{}, allPhases)
	require.NoError(t, a.Register(c))

	assert.PanicsWithError(t, ErrAlreadyRegistered.Error(), func() { _ = b.Register(c) })
}
