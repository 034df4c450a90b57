// Package spawn turns spawn requests into entities at command-flush time.
package spawn

import (
	"github.com/l1jgo/engine/internal/component"
	"github.com/l1jgo/engine/internal/core/command"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
	"github.com/l1jgo/engine/internal/data"
	"go.uber.org/zap"
)

// SpawnCommand asks for one entity. It is world-scoped, so it runs before
// any target command of the same flush and those can already address the
// new entity's neighbours.
type SpawnCommand struct {
	Template string
	X, Y     float64
	VX, VY   float64
	HP       int
	Radius   float64
	Damage   int
}

// Execute is the fallback when no Manager is registered: a bare entity with
// no components.
func (c SpawnCommand) Execute(w *ecs.World) {
	w.CreateEntity()
}

// FromEntry expands a spawn-list entry into commands.
func FromEntry(e data.SpawnEntry) []SpawnCommand {
	out := make([]SpawnCommand, 0, e.Count)
	for i := 0; i < e.Count; i++ {
		out = append(out, SpawnCommand{
			Template: e.Template,
			X:        e.X + float64(i)*e.SpreadX,
			Y:        e.Y,
			VX:       e.VX,
			VY:       e.VY,
			HP:       e.HP,
			Radius:   e.Radius,
			Damage:   e.Damage,
		})
	}
	return out
}

// Manager is the dispatcher for SpawnCommand. It builds the entity's
// components and announces it on the frame bus.
type Manager struct {
	stores  *component.Stores
	spawned event.Sink[event.EntitySpawned]
	log     *zap.Logger
	count   int
}

func NewManager(stores *component.Stores, spawned event.Sink[event.EntitySpawned], log *zap.Logger) *Manager {
	return &Manager{stores: stores, spawned: spawned, log: log}
}

// Register installs m as the SpawnCommand dispatcher on b.
func (m *Manager) Register(b *command.Buffer) {
	command.AddDispatcher[SpawnCommand](b, m)
}

func (m *Manager) Dispatch(w *ecs.World, cmd SpawnCommand) {
	id := w.CreateEntity()
	m.stores.Position.Set(id, &component.Position{X: cmd.X, Y: cmd.Y})
	if cmd.VX != 0 || cmd.VY != 0 {
		m.stores.Velocity.Set(id, &component.Velocity{X: cmd.VX, Y: cmd.VY})
	}
	if cmd.Radius > 0 {
		m.stores.Collider.Set(id, &component.Collider{Radius: cmd.Radius, Damage: cmd.Damage})
	}
	m.stores.Health.Set(id, &component.Health{HP: cmd.HP, MaxHP: cmd.HP})
	m.stores.Template.Set(id, &component.Template{Name: cmd.Template})
	m.count++

	m.spawned.Push(event.EntitySpawned{ID: id, Template: cmd.Template})
	m.log.Debug("entity spawned", zap.Stringer("id", id), zap.String("template", cmd.Template))
}

// Spawned reports how many entities the manager has created.
func (m *Manager) Spawned() int { return m.count }
