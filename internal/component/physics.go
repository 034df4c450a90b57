package component

// Position is a point in world units.
type Position struct {
	X float64
	Y float64
}

// Velocity is in world units per second.
type Velocity struct {
	X float64
	Y float64
}

// Collider is a circle around Position. Damage is dealt to whatever it
// touches, once per collision event.
type Collider struct {
	Radius float64
	Damage int
}
