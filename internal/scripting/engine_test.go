package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/engine/internal/core/command"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(t *testing.T, dir string) (*Engine, *event.Bus, *ecs.World, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	world := ecs.NewWorld()
	bus := event.NewGameLoopBus()
	e, err := NewEngine(dir, world, event.SinkOf[event.ScriptEvent](bus), zap.New(core))
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e, bus, world, logs
}

func TestScriptCommandEmitsEvent(t *testing.T) {
	e, bus, world, _ := newTestEngine(t, "")
	require.NoError(t, e.DoString(`
function announce(who, hp)
  emit("announce", { who = who, hp = hp, alive = entity_count() })
end
`))

	b := command.NewBuffer(zap.NewNop())
	e.Register(b)
	world.CreateEntity()
	command.Add(b, ScriptCommand{Func: "announce", Args: []any{"boss", 40}})
	stats := b.Flush(world)
	assert.Equal(t, 1, stats.Dispatched)

	assert.Empty(t, event.Read[event.ScriptEvent](bus), "emit goes to the write side")
	bus.SwapBuffers()
	got := event.Read[event.ScriptEvent](bus)
	require.Len(t, got, 1)
	assert.Equal(t, "announce", got[0].Name)
	assert.Equal(t, map[string]any{"who": "boss", "hp": 40.0, "alive": 1.0}, got[0].Payload)
}

func TestMissingFunctionIsSkipped(t *testing.T) {
	e, bus, world, logs := newTestEngine(t, "")
	b := command.NewBuffer(zap.NewNop())
	e.Register(b)

	command.Add(b, ScriptCommand{Func: "nope"})
	b.Flush(world)

	assert.Equal(t, 1, logs.FilterMessage("lua function not found").Len())
	bus.SwapBuffers()
	assert.Empty(t, event.Read[event.ScriptEvent](bus))
}

func TestScriptErrorIsLogged(t *testing.T) {
	e, _, world, logs := newTestEngine(t, "")
	require.NoError(t, e.DoString(`function boom() error("bad") end`))
	b := command.NewBuffer(zap.NewNop())
	e.Register(b)

	command.Add(b, ScriptCommand{Func: "boom"})
	command.Add(b, ScriptCommand{Func: "boom"})
	b.Flush(world)

	assert.Equal(t, 2, logs.FilterMessage("lua script error").Len())
}

func TestLoadsScriptDirsInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "core"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "game"), 0o755))
	write := func(rel, src string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(src), 0o644))
	}
	write("core/01_base.lua", `greeting = "hello"`)
	write("game/spawn.lua", `function on_spawned(id, template) emit(greeting, { id = id, template = template }) end`)
	write("game/notes.txt", `not lua`)

	e, bus, _, _ := newTestEngine(t, dir)
	assert.True(t, e.Has("on_spawned"))
	assert.False(t, e.Has("greeting"))

	e.SubscribeSpawned(bus)
	event.Push(bus, event.EntitySpawned{ID: 7, Template: "slime"})
	bus.SwapBuffers()
	bus.DispatchAll()
	bus.SwapBuffers()

	got := event.Read[event.ScriptEvent](bus)
	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Name)
	assert.Equal(t, map[string]any{"id": 7.0, "template": "slime"}, got[0].Payload)
}

func TestBadScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "core"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core", "bad.lua"), []byte(`function (`), 0o644))

	_, err := NewEngine(dir, ecs.NewWorld(), event.SinkOf[event.ScriptEvent](event.NewGameLoopBus()), zap.NewNop())
	assert.Error(t, err)
}
