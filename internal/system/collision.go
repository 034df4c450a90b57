package system

import (
	"math"
	"sort"
	"time"

	"github.com/l1jgo/engine/internal/component"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
	coresys "github.com/l1jgo/engine/internal/core/system"
)

// CollisionSystem pushes one Collision per overlapping collider pair onto
// the pass bus, for DamageSystem in the next pass, and onto the frame bus,
// for anyone interested in last frame's contacts. Phase 2 (Update), pass 0,
// registered after MovementSystem.
type CollisionSystem struct {
	stores  *component.Stores
	pass    event.Sink[event.Collision]
	frame   event.Sink[event.Collision]
	scratch []collider
	grid    *grid
	nearby  []int
}

type collider struct {
	id  ecs.EntityID
	pos *component.Position
	col *component.Collider
}

func NewCollisionSystem(stores *component.Stores, pass, frame event.Sink[event.Collision]) *CollisionSystem {
	return &CollisionSystem{stores: stores, pass: pass, frame: frame, grid: newGrid()}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *CollisionSystem) Pass() int            { return 0 }

func (s *CollisionSystem) Update(_ time.Duration) {
	s.scratch = s.scratch[:0]
	ecs.Each2(s.stores.Collider, s.stores.Position, func(id ecs.EntityID, c *component.Collider, p *component.Position) {
		s.scratch = append(s.scratch, collider{id: id, pos: p, col: c})
	})

	maxR := 0.0
	for _, c := range s.scratch {
		maxR = math.Max(maxR, c.col.Radius)
	}
	s.grid.reset(2 * maxR)
	for i, c := range s.scratch {
		s.grid.add(i, c.pos.X, c.pos.Y)
	}

	// Pairs are emitted in store order: by i, then by j > i.
	for i, a := range s.scratch {
		s.nearby = s.grid.nearby(a.pos.X, a.pos.Y, s.nearby[:0])
		sort.Ints(s.nearby)
		for _, j := range s.nearby {
			if j <= i {
				continue
			}
			b := s.scratch[j]
			dx, dy := a.pos.X-b.pos.X, a.pos.Y-b.pos.Y
			r := a.col.Radius + b.col.Radius
			if dx*dx+dy*dy > r*r {
				continue
			}
			ev := event.Collision{A: a.id, B: b.id}
			s.pass.Push(ev)
			s.frame.Push(ev)
		}
	}
}
