package component

// Health stores hit points. Pure data; DamageSystem mutates it.
type Health struct {
	HP    int
	MaxHP int
}

func (h *Health) Dead() bool { return h.HP <= 0 }
