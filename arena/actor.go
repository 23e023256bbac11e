package arena

// Actor is anything in the arena that can take damage.
type Actor interface {
	Damage(amount float64)
}

// Health tracks hit points for an actor.
type Health struct {
	Current float64
	Max     float64
}

func NewHealth(max float64) Health {
	return Health{Current: max, Max: max}
}

// Apply subtracts damage, clamping at zero.
func (h *Health) Apply(amount float64) {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

func (h Health) Dead() bool {
	return h.Current <= 0
}
