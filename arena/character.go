package arena

import (
	"math"
	"time"
)

// State identifies the character's current behavioral state. Exactly one is
// active at a time and transitions happen only inside Update.
type State int

const (
	Idle State = iota
	Walking
	Attacking
	Ability
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Walking:
		return "walking"
	case Attacking:
		return "attacking"
	case Ability:
		return "ability"
	default:
		return "unknown"
	}
}

// Stats holds the tunable numbers for a character, loaded from config.
type Stats struct {
	MoveSpeed       float64
	AttackDamage    float64
	MaxHealth       float64
	AbilityCooldown time.Duration
}

// Character is the finite-state behavioral loop for one arena combatant.
// Input handlers may be called between ticks by an input dispatcher; Update
// runs once per simulation step on the main update thread and performs at
// most one state change per tick.
type Character struct {
	Name  string
	Stats Stats

	State         State
	Facing        Direction
	MoveDirection Direction
	Health        Health

	hooks Hooks
	now   func() time.Time

	// Last-press time per direction. The zero time means released.
	pressTimes [len(Directions)]time.Time
	moving     bool

	attackKeyDown  bool
	attacking      bool
	attackStarted  bool
	attackDownTime time.Time

	abilityKeyDown  bool
	abilityActive   bool
	abilityDownTime time.Time
	abilityLastUsed time.Time
}

func NewCharacter(name string, stats Stats, hooks Hooks) *Character {
	return &Character{
		Name:   name,
		Stats:  stats,
		State:  Idle,
		Facing: North,
		Health: NewHealth(stats.MaxHealth),
		hooks:  hooks,
		now:    time.Now,
	}
}

// Moving reports whether at least one directional key is currently held.
func (c *Character) Moving() bool { return c.moving }

// IsAttacking reports whether an attack is in progress.
func (c *Character) IsAttacking() bool { return c.attacking }

// AbilityActive reports whether the ability is in progress.
func (c *Character) AbilityActive() bool { return c.abilityActive }

// AttackStarted reports whether the current attack has opened its hitbox.
func (c *Character) AttackStarted() bool { return c.attackStarted }

// AbilityCooldownRemaining reports how long until the ability can start again.
func (c *Character) AbilityCooldownRemaining() time.Duration {
	if c.abilityLastUsed.IsZero() {
		return 0
	}
	rem := c.Stats.AbilityCooldown - c.now().Sub(c.abilityLastUsed)
	if rem < 0 {
		return 0
	}
	return rem
}

// Damage applies incoming damage to the character's health.
func (c *Character) Damage(amount float64) {
	c.Health.Apply(amount)
}

// SetDirectionalInput records a press or release for one direction and
// recomputes whether the character is moving.
func (c *Character) SetDirectionalInput(dir Direction, pressed bool) {
	if !dir.Valid() {
		return
	}
	if pressed {
		c.pressTimes[dir] = c.now()
	} else {
		c.pressTimes[dir] = time.Time{}
	}

	c.moving = false
	for _, d := range Directions {
		if !c.pressTimes[d].IsZero() {
			c.moving = true
			break
		}
	}
}

// SetAttackInput updates the attack key state. A press while no attack is in
// progress starts one and records the press time; the attack then runs until
// FinishAttack regardless of key state.
func (c *Character) SetAttackInput(active bool) {
	c.attackKeyDown = active

	if active && !c.attacking {
		c.attacking = true
		c.attackDownTime = c.now()
	}
}

// SetAbilityInput updates the ability key state. A press is dropped while the
// ability is active or still on cooldown; timers stay untouched so a dropped
// request can never delay the next legal one.
func (c *Character) SetAbilityInput(active bool) {
	wasDown := c.abilityKeyDown
	c.abilityKeyDown = active

	if !active || wasDown {
		return
	}
	if c.abilityActive {
		return
	}
	if !c.abilityLastUsed.IsZero() && c.now().Sub(c.abilityLastUsed) < c.Stats.AbilityCooldown {
		return
	}

	if c.hooks.AbilityStart != nil {
		c.hooks.AbilityStart()
	}
	c.abilityActive = true
	now := c.now()
	c.abilityDownTime = now
	c.abilityLastUsed = now
}

// resolveFacing picks the held direction with the most recent press time.
// Ties resolve to the earliest direction in Directions order. Facing and
// MoveDirection only change while the character is moving, so the last facing
// is kept while idle.
func (c *Character) resolveFacing() {
	if !c.moving {
		return
	}

	recent := North
	for _, d := range Directions {
		if c.pressTimes[d].After(c.pressTimes[recent]) {
			recent = d
		}
	}

	c.Facing = recent
	c.MoveDirection = recent
}

// Update evaluates the state machine for one simulation step. Checks run in a
// fixed order and the first match wins, so each tick performs at most one
// state change.
func (c *Character) Update(dt time.Duration) {
	switch c.State {
	case Idle:
		c.resolveFacing()
		if c.hooks.IdleState != nil {
			c.hooks.IdleState()
		}
		c.playAnimation(AnimIdle)
		if c.moving {
			c.State = Walking
			break
		}
		if c.attacking {
			c.State = Attacking
			break
		}
		if c.abilityActive {
			c.State = Ability
		}

	case Walking:
		c.resolveFacing()
		if c.hooks.WalkingState != nil {
			c.hooks.WalkingState()
		} else {
			c.Move()
		}
		c.playAnimation(AnimWalk)
		if c.attacking {
			c.State = Attacking
			break
		}
		if c.abilityActive {
			c.State = Ability
			break
		}
		if !c.moving {
			c.SetVelocity(0, c.Facing)
			c.State = Idle
		}

	case Attacking:
		if !c.attacking && c.moving {
			c.State = Walking
			break
		}
		if !c.attacking {
			c.State = Idle
			break
		}
		if !c.attackStarted && c.hooks.AttackState != nil {
			c.hooks.AttackState(c.now().Sub(c.attackDownTime), c.attackKeyDown)
		}

	case Ability:
		if !c.abilityActive && c.moving {
			if c.hooks.AbilityEnd != nil {
				c.hooks.AbilityEnd()
			}
			c.State = Walking
			break
		}
		if !c.abilityActive {
			if c.hooks.AbilityEnd != nil {
				c.hooks.AbilityEnd()
			}
			c.State = Idle
			break
		}
		if c.hooks.AbilityState != nil {
			c.hooks.AbilityState(c.now().Sub(c.abilityDownTime), c.abilityKeyDown)
		}
	}
}

// Attack damages another actor. Attacking yourself is a no-op. The damage
// modifier doubles the base damage per point, modeling combo/charge
// multipliers.
func (c *Character) Attack(target Actor, damageModifier int) {
	if target == nil || target == Actor(c) {
		return
	}
	target.Damage(c.Stats.AttackDamage * math.Pow(2, float64(damageModifier)))
}

// BeginAttack opens the hitbox for the current facing. Called by the attack
// behavior once its windup elapses.
func (c *Character) BeginAttack() {
	if c.hooks.SetHitbox != nil {
		c.hooks.SetHitbox(c.Facing, true)
	}
	c.attackStarted = true
}

// FinishAttack closes the hitbox and clears the attack timers and flags.
func (c *Character) FinishAttack() {
	c.attacking = false
	c.attackStarted = false
	c.attackDownTime = time.Time{}

	if c.hooks.SetHitbox != nil {
		c.hooks.SetHitbox(c.Facing, false)
	}
}

// FinishAbility clears the ability timers and flags. The AbilityEnd hook runs
// on the next tick when the state machine leaves the Ability state.
func (c *Character) FinishAbility() {
	c.abilityActive = false
	c.abilityDownTime = time.Time{}
}

// Move applies the character's move speed in its current move direction.
func (c *Character) Move() {
	c.SetVelocity(c.Stats.MoveSpeed, c.MoveDirection)
}

// SetVelocity forwards a speed and direction to the movement collaborator.
// Used for walking and for dashes.
func (c *Character) SetVelocity(speed float64, dir Direction) {
	if c.hooks.SetVelocity != nil {
		c.hooks.SetVelocity(speed, dir)
	}
}

// ResetInput re-derives every directional input from a key-state probe and
// releases attack and ability. Used on respawn and on window focus loss,
// where release events may have been missed.
func (c *Character) ResetInput(keyDown func(dir Direction) bool) {
	for _, d := range Directions {
		held := keyDown != nil && keyDown(d)
		c.SetDirectionalInput(d, held)
	}
	c.SetAbilityInput(false)
	c.SetAttackInput(false)
}

// ResetCooldown clears the ability cooldown so the next request is not gated.
func (c *Character) ResetCooldown() {
	c.abilityLastUsed = time.Time{}
}

func (c *Character) playAnimation(kind AnimKind) {
	if c.hooks.PlayAnimation != nil {
		c.hooks.PlayAnimation(kind, c.Facing)
	}
}
