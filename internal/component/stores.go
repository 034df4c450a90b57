package component

import "github.com/l1jgo/engine/internal/core/ecs"

// Stores bundles the component stores of one world. All stores are
// registered with the world so destroyed entities are stripped from them.
type Stores struct {
	Position *ecs.Store[Position]
	Velocity *ecs.Store[Velocity]
	Collider *ecs.Store[Collider]
	Health   *ecs.Store[Health]
	Template *ecs.Store[Template]
}

func NewStores(w *ecs.World) *Stores {
	return &Stores{
		Position: ecs.Register[Position](w),
		Velocity: ecs.Register[Velocity](w),
		Collider: ecs.Register[Collider](w),
		Health:   ecs.Register[Health](w),
		Template: ecs.Register[Template](w),
	}
}
