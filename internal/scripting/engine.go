package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/l1jgo/engine/internal/core/command"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// Engine wraps a single gopher-lua VM. Scripts run only from inside a
// command flush or an event dispatch, both on the game-loop goroutine.
type Engine struct {
	vm     *lua.LState
	world  *ecs.World
	events event.Sink[event.ScriptEvent]
	log    *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under scriptsDir:
// core/ first, then game/, each in file-name order. Missing directories are
// skipped.
func NewEngine(scriptsDir string, world *ecs.World, events event.Sink[event.ScriptEvent], log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	e := &Engine{vm: vm, world: world, events: events, log: log}
	vm.SetGlobal("emit", vm.NewFunction(e.luaEmit))
	vm.SetGlobal("entity_count", vm.NewFunction(e.luaEntityCount))

	if scriptsDir == "" {
		return e, nil
	}
	for _, sub := range []string{"core", "game"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// Has reports whether a global Lua function named fn exists.
func (e *Engine) Has(fn string) bool {
	_, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	return ok
}

func (e *Engine) Close() {
	e.vm.Close()
}

// ScriptCommand calls the Lua global Func with Args when flushed.
type ScriptCommand struct {
	Func string
	Args []any
}

// Execute does nothing on its own; an Engine registered as the dispatcher
// runs the script.
func (ScriptCommand) Execute(*ecs.World) {}

// Register installs e as the ScriptCommand dispatcher on b.
func (e *Engine) Register(b *command.Buffer) {
	command.AddDispatcher[ScriptCommand](b, e)
}

func (e *Engine) Dispatch(_ *ecs.World, cmd ScriptCommand) {
	fn, ok := e.vm.GetGlobal(cmd.Func).(*lua.LFunction)
	if !ok {
		e.log.Warn("lua function not found", zap.String("func", cmd.Func))
		return
	}
	args := make([]lua.LValue, len(cmd.Args))
	for i, a := range cmd.Args {
		args[i] = e.toLua(a)
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		e.log.Error("lua script error", zap.String("func", cmd.Func), zap.Error(err))
	}
}

// SubscribeSpawned calls the Lua global on_spawned(id, template), when the
// scripts define it, for every EntitySpawned dispatched on bus.
func (e *Engine) SubscribeSpawned(bus *event.Bus) {
	event.Subscribe(bus, func(ev event.EntitySpawned) {
		fn, ok := e.vm.GetGlobal("on_spawned").(*lua.LFunction)
		if !ok {
			return
		}
		if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true},
			lua.LNumber(ev.ID), lua.LString(ev.Template)); err != nil {
			e.log.Error("lua on_spawned error", zap.Stringer("id", ev.ID), zap.Error(err))
		}
	})
}

// emit(name, payload) pushes a ScriptEvent. payload is optional.
func (e *Engine) luaEmit(L *lua.LState) int {
	ev := event.ScriptEvent{Name: L.CheckString(1)}
	if t, ok := L.Get(2).(*lua.LTable); ok {
		ev.Payload = tableToMap(t)
	}
	e.events.Push(ev)
	return 0
}

func (e *Engine) luaEntityCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.world.EntityCount()))
	return 1
}

func (e *Engine) toLua(v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case uint64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case ecs.EntityID:
		return lua.LNumber(v)
	case map[string]any:
		t := e.vm.NewTable()
		for k, val := range v {
			t.RawSetString(k, e.toLua(val))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(v))
	}
}

func fromLua(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		return tableToMap(v)
	default:
		return nil
	}
}

// tableToMap converts string-keyed entries; other keys are dropped.
func tableToMap(t *lua.LTable) map[string]any {
	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			m[string(ks)] = fromLua(v)
		}
	})
	return m
}
