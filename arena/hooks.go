package arena

import "time"

// AnimKind selects which per-direction animation set to play.
type AnimKind int

const (
	AnimIdle AnimKind = iota
	AnimWalk
	AnimAttack
)

func (k AnimKind) String() string {
	switch k {
	case AnimIdle:
		return "idle"
	case AnimWalk:
		return "walk"
	case AnimAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Hooks provides controlled access to engine collaborators for the character
// state machine. It intentionally uses callbacks to keep the core independently
// testable without engine dependencies; every callback is optional and a nil
// entry degrades to a no-op.
type Hooks struct {
	// Per-state behavior, run once per tick while the state is active.
	IdleState    func()
	WalkingState func()

	// Progress evaluators for timed actions. They receive the elapsed time
	// since the action's key went down and whether the key is still held,
	// and drive hitbox open/close and completion through the Character's
	// BeginAttack/FinishAttack/FinishAbility methods.
	AttackState  func(elapsed time.Duration, keyDown bool)
	AbilityState func(elapsed time.Duration, keyDown bool)

	// Ability lifecycle side effects.
	AbilityStart func()
	AbilityEnd   func()

	// Engine collaborators: animation player, hitbox toggler, movement.
	PlayAnimation func(kind AnimKind, facing Direction)
	SetHitbox     func(dir Direction, enabled bool)
	SetVelocity   func(speed float64, dir Direction)
}
