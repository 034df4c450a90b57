package system

import (
	"time"

	"github.com/l1jgo/engine/internal/component"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
	coresys "github.com/l1jgo/engine/internal/core/system"
)

// DamageSystem applies contact damage for this phase's collisions and pushes
// EntityDied onto the phase bus when health crosses zero. Phase 2 (Update),
// pass 1: it reads what CollisionSystem pushed in pass 0.
type DamageSystem struct {
	stores     *component.Stores
	collisions event.Source[event.Collision]
	died       event.Sink[event.EntityDied]
}

func NewDamageSystem(stores *component.Stores, collisions event.Source[event.Collision], died event.Sink[event.EntityDied]) *DamageSystem {
	return &DamageSystem{stores: stores, collisions: collisions, died: died}
}

func (s *DamageSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *DamageSystem) Pass() int            { return 1 }

func (s *DamageSystem) Update(_ time.Duration) {
	for _, c := range s.collisions.Read() {
		s.hit(c.B, c.A)
		s.hit(c.A, c.B)
	}
}

// hit applies attacker's contact damage to victim.
func (s *DamageSystem) hit(victim, attacker ecs.EntityID) {
	col, ok := s.stores.Collider.Get(attacker)
	if !ok || col.Damage <= 0 {
		return
	}
	h, ok := s.stores.Health.Get(victim)
	if !ok || h.Dead() {
		return
	}
	h.HP -= col.Damage
	if h.Dead() {
		s.died.Push(event.EntityDied{ID: victim, Killer: attacker})
	}
}
