package system

import (
	"time"

	"github.com/l1jgo/engine/internal/component"
	"github.com/l1jgo/engine/internal/core/ecs"
	coresys "github.com/l1jgo/engine/internal/core/system"
)

// MovementSystem integrates velocity into position. Phase 2 (Update), pass 0.
type MovementSystem struct {
	stores *component.Stores
}

func NewMovementSystem(stores *component.Stores) *MovementSystem {
	return &MovementSystem{stores: stores}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *MovementSystem) Pass() int            { return 0 }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	ecs.Each2(s.stores.Position, s.stores.Velocity, func(_ ecs.EntityID, p *component.Position, v *component.Velocity) {
		p.X += v.X * sec
		p.Y += v.Y * sec
	})
}
