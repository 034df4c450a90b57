package command

import (
	"testing"

	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// trace records the order commands ran in.
type trace struct {
	steps []string
}

type worldCmd struct {
	name string
	t    *trace
}

func (c worldCmd) Execute(_ *ecs.World) { c.t.steps = append(c.t.steps, "exec:"+c.name) }

type targetCmd struct {
	name string
	t    *trace
}

func (c targetCmd) Execute(_ *ecs.World, _ ecs.EntityID) {
	c.t.steps = append(c.t.steps, "exec:"+c.name)
}

type routedCmd struct {
	name string
	t    *trace
}

func (c routedCmd) Execute(_ *ecs.World) { c.t.steps = append(c.t.steps, "exec:"+c.name) }

type routedTargetCmd struct {
	name string
	t    *trace
}

func (c routedTargetCmd) Execute(_ *ecs.World, _ ecs.EntityID) {
	c.t.steps = append(c.t.steps, "exec:"+c.name)
}

type panicCmd struct{}

func (panicCmd) Execute(_ *ecs.World) { panic("boom") }

func TestWorldCommandsRunBeforeTargetCommands(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	tr := &trace{}
	b := NewBuffer(zap.NewNop())

	AddTo(b, e, targetCmd{"c1", tr})
	Add(b, worldCmd{"w1", tr})
	AddTo(b, e, targetCmd{"c2", tr})
	Add(b, worldCmd{"w2", tr})

	stats := b.Flush(w)

	assert.Equal(t, []string{"exec:w1", "exec:w2", "exec:c1", "exec:c2"}, tr.steps)
	assert.Equal(t, FlushStats{World: 2, Target: 2, Executed: 4}, stats)
}

func TestMissingTargetIsSkippedAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := ecs.NewWorld()
	gone := w.CreateEntity()
	alive := w.CreateEntity()
	w.Destroy(gone)

	tr := &trace{}
	b := NewBuffer(zap.New(core))
	AddTo(b, gone, targetCmd{"lost", tr})
	AddTo(b, alive, targetCmd{"kept", tr})

	stats := b.Flush(w)

	assert.Equal(t, []string{"exec:kept"}, tr.steps)
	assert.Equal(t, 1, stats.Skipped)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "command target no longer exists", entry.Message)
	assert.Equal(t, gone.String(), entry.ContextMap()["target"])
}

func TestFlushClearsUnconditionally(t *testing.T) {
	w := ecs.NewWorld()
	tr := &trace{}
	b := NewBuffer(zap.NewNop())

	Add(b, worldCmd{"w", tr})
	AddTo(b, ecs.NewEntityID(9, 9), targetCmd{"ghost", tr})
	AddTo(b, 0, targetCmd{"zero", tr})

	b.Flush(w)
	nw, nt := b.Len()
	assert.Zero(t, nw)
	assert.Zero(t, nt)

	tr.steps = nil
	b.Flush(w)
	assert.Empty(t, tr.steps, "nothing replays on the next flush")
}

func TestDispatcherTakesPrecedence(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	tr := &trace{}
	b := NewBuffer(zap.NewNop())

	AddDispatcher(b, WorldDispatcherFunc[routedCmd](func(_ *ecs.World, c routedCmd) {
		tr.steps = append(tr.steps, "dispatch:"+c.name)
	}))
	AddTargetDispatcher(b, TargetDispatcherFunc[routedTargetCmd](func(_ *ecs.World, target ecs.EntityID, c routedTargetCmd) {
		assert.Equal(t, e, target)
		tr.steps = append(tr.steps, "dispatch:"+c.name)
	}))

	Add(b, routedCmd{"r", tr})
	Add(b, worldCmd{"plain", tr})
	AddTo(b, e, routedTargetCmd{"rt", tr})

	stats := b.Flush(w)

	assert.Equal(t, []string{"dispatch:r", "exec:plain", "dispatch:rt"}, tr.steps)
	assert.Equal(t, 2, stats.Dispatched)
	assert.Equal(t, 1, stats.Executed)
}

func TestDispatchUsesDynamicType(t *testing.T) {
	w := ecs.NewWorld()
	tr := &trace{}
	b := NewBuffer(zap.NewNop())
	AddDispatcher(b, WorldDispatcherFunc[routedCmd](func(_ *ecs.World, c routedCmd) {
		tr.steps = append(tr.steps, "dispatch:"+c.name)
	}))

	var cmd WorldCommand = routedCmd{"iface", tr}
	Add(b, cmd)
	b.Flush(w)

	assert.Equal(t, []string{"dispatch:iface"}, tr.steps)
}

func TestDuplicateDispatcherPanics(t *testing.T) {
	b := NewBuffer(zap.NewNop())
	d := WorldDispatcherFunc[routedCmd](func(*ecs.World, routedCmd) {})
	AddDispatcher(b, d)
	assert.Panics(t, func() { AddDispatcher(b, d) })

	td := TargetDispatcherFunc[routedTargetCmd](func(*ecs.World, ecs.EntityID, routedTargetCmd) {})
	AddTargetDispatcher(b, td)
	assert.Panics(t, func() { AddTargetDispatcher(b, td) })
}

func TestClearDiscards(t *testing.T) {
	w := ecs.NewWorld()
	tr := &trace{}
	b := NewBuffer(zap.NewNop())
	Add(b, worldCmd{"w", tr})
	AddTo(b, w.CreateEntity(), targetCmd{"t", tr})

	b.Clear()
	stats := b.Flush(w)
	assert.Empty(t, tr.steps)
	assert.Equal(t, FlushStats{}, stats)
}

func TestCommandsQueuedDuringFlushRunNextFlush(t *testing.T) {
	w := ecs.NewWorld()
	tr := &trace{}
	b := NewBuffer(zap.NewNop())

	Add(b, Func(func(*ecs.World) {
		Add(b, worldCmd{"late", tr})
	}))
	b.Flush(w)
	assert.Empty(t, tr.steps)
	nw, _ := b.Len()
	assert.Equal(t, 1, nw)

	b.Flush(w)
	assert.Equal(t, []string{"exec:late"}, tr.steps)
}

func TestPanicAbandonsRemainingQueue(t *testing.T) {
	w := ecs.NewWorld()
	tr := &trace{}
	b := NewBuffer(zap.NewNop())
	Add(b, worldCmd{"before", tr})
	Add(b, panicCmd{})
	Add(b, worldCmd{"after", tr})

	assert.PanicsWithValue(t, "boom", func() { b.Flush(w) })
	assert.Equal(t, []string{"exec:before"}, tr.steps)

	nw, nt := b.Len()
	assert.Zero(t, nw)
	assert.Zero(t, nt)

	// the buffer stays usable
	Add(b, worldCmd{"next", tr})
	b.Flush(w)
	assert.Equal(t, []string{"exec:before", "exec:next"}, tr.steps)
}

func TestReentrantFlushPanics(t *testing.T) {
	w := ecs.NewWorld()
	b := NewBuffer(zap.NewNop())
	Add(b, Func(func(w *ecs.World) { b.Flush(w) }))

	assert.PanicsWithValue(t, "command: Flush called from inside a command", func() { b.Flush(w) })

	ran := false
	Add(b, Func(func(*ecs.World) { ran = true }))
	b.Flush(w)
	assert.True(t, ran)
}

func TestDestroyCommand(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	b := NewBuffer(zap.NewNop())
	AddTo(b, e, Destroy{})
	b.Flush(w)

	assert.True(t, w.Alive(e), "destruction is deferred to the cleanup system")
	assert.Equal(t, 1, w.FlushDestroyQueue())
	assert.False(t, w.Alive(e))
}
