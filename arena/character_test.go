package arena

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func testStats() Stats {
	return Stats{
		MoveSpeed:       160,
		AttackDamage:    10,
		MaxHealth:       100,
		AbilityCooldown: 2 * time.Second,
	}
}

func newTestCharacter(hooks Hooks) (*Character, *fakeClock) {
	clk := newFakeClock()
	c := NewCharacter("test", testStats(), hooks)
	c.now = clk.now
	return c, clk
}

const tick = time.Second / 60

type inputStep struct {
	dir     Direction
	pressed bool
}

func TestMovingTracksHeldDirections(t *testing.T) {
	cases := []struct {
		name   string
		steps  []inputStep
		moving bool
	}{
		{
			name:   "no_input",
			moving: false,
		},
		{
			name:   "single_press",
			steps:  []inputStep{{North, true}},
			moving: true,
		},
		{
			name:   "press_then_release",
			steps:  []inputStep{{North, true}, {North, false}},
			moving: false,
		},
		{
			name:   "two_pressed_one_released",
			steps:  []inputStep{{North, true}, {East, true}, {North, false}},
			moving: true,
		},
		{
			name: "all_pressed_all_released",
			steps: []inputStep{
				{North, true}, {East, true}, {South, true}, {West, true},
				{North, false}, {East, false}, {South, false}, {West, false},
			},
			moving: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, clk := newTestCharacter(Hooks{})
			for _, s := range tc.steps {
				clk.advance(time.Millisecond)
				c.SetDirectionalInput(s.dir, s.pressed)
			}
			if c.Moving() != tc.moving {
				t.Fatalf("moving = %t, want %t", c.Moving(), tc.moving)
			}
		})
	}
}

func TestFacingFollowsMostRecentPress(t *testing.T) {
	c, clk := newTestCharacter(Hooks{})

	c.SetDirectionalInput(East, true)
	clk.advance(50 * time.Millisecond)
	c.SetDirectionalInput(South, true)
	c.Update(tick)

	if c.Facing != South {
		t.Fatalf("facing = %s, want south", c.Facing)
	}
	if c.MoveDirection != South {
		t.Fatalf("move direction = %s, want south", c.MoveDirection)
	}

	// Releasing the most recent key makes the older held key win again.
	clk.advance(50 * time.Millisecond)
	c.SetDirectionalInput(South, false)
	c.Update(tick)
	if c.Facing != East {
		t.Fatalf("facing after release = %s, want east", c.Facing)
	}
}

func TestFacingTieBreakUsesEnumOrder(t *testing.T) {
	cases := []struct {
		name    string
		pressed []Direction
		want    Direction
	}{
		{"west_vs_east", []Direction{West, East}, East},
		{"south_vs_north", []Direction{South, North}, North},
		{"all_four", []Direction{West, South, East, North}, North},
		{"east_vs_south", []Direction{South, East}, East},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCharacter(Hooks{})
			// No clock advance between presses: identical timestamps.
			for _, d := range tc.pressed {
				c.SetDirectionalInput(d, true)
			}
			c.Update(tick)
			if c.Facing != tc.want {
				t.Fatalf("facing = %s, want %s", c.Facing, tc.want)
			}
		})
	}
}

func TestFacingKeptWhileIdle(t *testing.T) {
	c, clk := newTestCharacter(Hooks{})

	c.SetDirectionalInput(West, true)
	c.Update(tick) // Idle -> Walking, facing west
	clk.advance(time.Millisecond)
	c.SetDirectionalInput(West, false)
	c.Update(tick) // Walking -> Idle
	c.Update(tick) // idle tick

	if c.Facing != West {
		t.Fatalf("idle facing = %s, want west", c.Facing)
	}
}

func TestIdleWalkTransitions(t *testing.T) {
	type velocityCall struct {
		speed float64
		dir   Direction
	}
	var velocities []velocityCall
	c, clk := newTestCharacter(Hooks{
		SetVelocity: func(speed float64, dir Direction) {
			velocities = append(velocities, velocityCall{speed, dir})
		},
	})

	if c.State != Idle {
		t.Fatalf("initial state = %s, want idle", c.State)
	}

	c.SetDirectionalInput(North, true)
	c.Update(tick)
	if c.State != Walking {
		t.Fatalf("state after press = %s, want walking", c.State)
	}

	clk.advance(time.Millisecond)
	c.SetDirectionalInput(North, false)
	c.Update(tick)
	if c.State != Idle {
		t.Fatalf("state after release = %s, want idle", c.State)
	}

	if len(velocities) == 0 {
		t.Fatalf("expected velocity calls during walk/stop")
	}
	last := velocities[len(velocities)-1]
	if last.speed != 0 {
		t.Fatalf("velocity on stop = %v, want 0", last.speed)
	}
	if last.dir != North {
		t.Fatalf("stop direction = %s, want north", last.dir)
	}
}

func TestWalkingRunsMoveEachTick(t *testing.T) {
	var speeds []float64
	c, _ := newTestCharacter(Hooks{
		SetVelocity: func(speed float64, dir Direction) {
			speeds = append(speeds, speed)
		},
	})

	c.SetDirectionalInput(East, true)
	c.Update(tick) // Idle -> Walking
	c.Update(tick) // walking tick applies move speed
	c.Update(tick)

	found := false
	for _, s := range speeds {
		if s == c.Stats.MoveSpeed {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected move speed %v applied, got %v", c.Stats.MoveSpeed, speeds)
	}
}

func TestAttackTransitions(t *testing.T) {
	c, clk := newTestCharacter(Hooks{})

	// Walking, press attack -> next tick Attacking.
	c.SetDirectionalInput(East, true)
	c.Update(tick)
	if c.State != Walking {
		t.Fatalf("state = %s, want walking", c.State)
	}

	c.SetAttackInput(true)
	if !c.IsAttacking() {
		t.Fatalf("attack press should set attacking")
	}
	c.Update(tick)
	if c.State != Attacking {
		t.Fatalf("state = %s, want attacking", c.State)
	}

	// Attack completes while still moving -> back to Walking.
	clk.advance(300 * time.Millisecond)
	c.FinishAttack()
	c.Update(tick)
	if c.State != Walking {
		t.Fatalf("state after finish = %s, want walking", c.State)
	}

	// Attack again while stationary -> back to Idle on completion.
	clk.advance(time.Millisecond)
	c.SetDirectionalInput(East, false)
	c.Update(tick) // Walking -> Idle
	c.SetAttackInput(false)
	c.SetAttackInput(true)
	c.Update(tick) // Idle -> Attacking
	if c.State != Attacking {
		t.Fatalf("state = %s, want attacking", c.State)
	}
	c.FinishAttack()
	c.Update(tick)
	if c.State != Idle {
		t.Fatalf("state after finish = %s, want idle", c.State)
	}
}

func TestAttackStateHookStopsAfterHitboxOpens(t *testing.T) {
	calls := 0
	c, clk := newTestCharacter(Hooks{
		AttackState: func(elapsed time.Duration, keyDown bool) {
			calls++
		},
	})

	c.SetAttackInput(true)
	c.Update(tick) // Idle -> Attacking
	c.Update(tick)
	c.Update(tick)
	if calls != 2 {
		t.Fatalf("attack hook calls = %d, want 2", calls)
	}

	clk.advance(150 * time.Millisecond)
	c.BeginAttack()
	c.Update(tick)
	if calls != 2 {
		t.Fatalf("attack hook ran after hitbox opened: calls = %d", calls)
	}
}

func TestAttackHookReceivesElapsedAndKeyState(t *testing.T) {
	var gotElapsed time.Duration
	var gotKeyDown bool
	c, clk := newTestCharacter(Hooks{
		AttackState: func(elapsed time.Duration, keyDown bool) {
			gotElapsed = elapsed
			gotKeyDown = keyDown
		},
	})

	c.SetAttackInput(true)
	c.Update(tick) // Idle -> Attacking
	clk.advance(120 * time.Millisecond)
	c.SetAttackInput(false)
	c.Update(tick)

	if gotElapsed != 120*time.Millisecond {
		t.Fatalf("elapsed = %v, want 120ms", gotElapsed)
	}
	if gotKeyDown {
		t.Fatalf("keyDown = true, want false after release")
	}
}

func TestAttackRisingEdgeOnly(t *testing.T) {
	c, clk := newTestCharacter(Hooks{})

	c.SetAttackInput(true)
	first := c.attackDownTime

	// Holding or re-pressing during an attack must not restart the timer.
	clk.advance(80 * time.Millisecond)
	c.SetAttackInput(true)
	c.SetAttackInput(false)
	c.SetAttackInput(true)
	if !c.attackDownTime.Equal(first) {
		t.Fatalf("attack press time changed while attack in progress")
	}
}

func TestHitboxFollowsAttackLifecycle(t *testing.T) {
	type toggle struct {
		dir     Direction
		enabled bool
	}
	var toggles []toggle
	c, clk := newTestCharacter(Hooks{
		SetHitbox: func(dir Direction, enabled bool) {
			toggles = append(toggles, toggle{dir, enabled})
		},
	})

	c.SetDirectionalInput(South, true)
	c.Update(tick)
	clk.advance(time.Millisecond)

	c.SetAttackInput(true)
	c.Update(tick)
	c.BeginAttack()
	if !c.AttackStarted() {
		t.Fatalf("BeginAttack should mark the hitbox open")
	}
	c.FinishAttack()
	if c.IsAttacking() || c.AttackStarted() {
		t.Fatalf("FinishAttack should clear attack flags")
	}
	if !c.attackDownTime.IsZero() {
		t.Fatalf("FinishAttack should clear the press time")
	}

	want := []toggle{{South, true}, {South, false}}
	if len(toggles) != len(want) {
		t.Fatalf("toggles = %v, want %v", toggles, want)
	}
	for i := range want {
		if toggles[i] != want[i] {
			t.Fatalf("toggle %d = %v, want %v", i, toggles[i], want[i])
		}
	}
}

func TestAbilityCooldownGate(t *testing.T) {
	starts := 0
	c, clk := newTestCharacter(Hooks{
		AbilityStart: func() { starts++ },
	})

	c.SetAbilityInput(true)
	if starts != 1 || !c.AbilityActive() {
		t.Fatalf("first press should start the ability")
	}
	firstUsed := c.abilityLastUsed

	// Finish the ability, then press again inside the cooldown window.
	clk.advance(500 * time.Millisecond)
	c.FinishAbility()
	c.SetAbilityInput(false)
	c.SetAbilityInput(true)
	if starts != 1 {
		t.Fatalf("cooldown-gated press started the ability")
	}
	if c.AbilityActive() {
		t.Fatalf("cooldown-gated press set the active flag")
	}
	if !c.abilityLastUsed.Equal(firstUsed) {
		t.Fatalf("cooldown-gated press mutated the cooldown timer")
	}
	if !c.abilityDownTime.IsZero() {
		t.Fatalf("cooldown-gated press mutated the press timer")
	}

	// Past the cooldown the next press starts normally.
	clk.advance(2 * time.Second)
	c.SetAbilityInput(false)
	c.SetAbilityInput(true)
	if starts != 2 || !c.AbilityActive() {
		t.Fatalf("press after cooldown should start the ability")
	}
}

func TestAbilityIgnoredWhileActive(t *testing.T) {
	starts := 0
	c, clk := newTestCharacter(Hooks{
		AbilityStart: func() { starts++ },
	})
	// No cooldown at all: only the active flag gates.
	c.Stats.AbilityCooldown = 0

	c.SetAbilityInput(true)
	clk.advance(50 * time.Millisecond)
	c.SetAbilityInput(false)
	c.SetAbilityInput(true)
	if starts != 1 {
		t.Fatalf("re-press while active started a second ability")
	}
}

func TestAbilityEndRunsOnExit(t *testing.T) {
	ends := 0
	c, clk := newTestCharacter(Hooks{
		AbilityEnd: func() { ends++ },
	})

	c.SetAbilityInput(true)
	c.Update(tick) // Idle -> Ability
	if c.State != Ability {
		t.Fatalf("state = %s, want ability", c.State)
	}

	clk.advance(200 * time.Millisecond)
	c.FinishAbility()
	c.Update(tick) // Ability -> Idle, runs AbilityEnd
	if c.State != Idle {
		t.Fatalf("state = %s, want idle", c.State)
	}
	if ends != 1 {
		t.Fatalf("ability end calls = %d, want 1", ends)
	}

	// While moving the exit goes to Walking instead.
	c.ResetCooldown()
	c.SetDirectionalInput(West, true)
	c.SetAbilityInput(false)
	c.SetAbilityInput(true)
	c.Update(tick) // Idle? no: Walking check first
	if c.State != Walking {
		t.Fatalf("state = %s, want walking (moving wins over ability from idle)", c.State)
	}
	c.Update(tick) // Walking -> Ability (still active)
	if c.State != Ability {
		t.Fatalf("state = %s, want ability", c.State)
	}
	c.FinishAbility()
	c.Update(tick)
	if c.State != Walking {
		t.Fatalf("state after finish = %s, want walking", c.State)
	}
	if ends != 2 {
		t.Fatalf("ability end calls = %d, want 2", ends)
	}
}

func TestTransitionPriorityFromIdle(t *testing.T) {
	c, _ := newTestCharacter(Hooks{})

	// All three triggers set at once: moving wins, then attacking, then ability.
	c.SetDirectionalInput(North, true)
	c.SetAttackInput(true)
	c.SetAbilityInput(true)
	c.Update(tick)
	if c.State != Walking {
		t.Fatalf("state = %s, want walking (highest priority)", c.State)
	}

	c.Update(tick)
	if c.State != Attacking {
		t.Fatalf("state = %s, want attacking (second priority)", c.State)
	}
}

func TestAttackDamage(t *testing.T) {
	cases := []struct {
		name     string
		modifier int
		want     float64
	}{
		{"no_modifier", 0, 10},
		{"single_combo", 1, 20},
		{"double_combo", 2, 40},
		{"negative_modifier_halves", -1, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCharacter(Hooks{})
			target, _ := newTestCharacter(Hooks{})

			c.Attack(target, tc.modifier)
			got := target.Health.Max - target.Health.Current
			if got != tc.want {
				t.Fatalf("damage = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAttackSelfIsNoOp(t *testing.T) {
	c, _ := newTestCharacter(Hooks{})

	for _, mod := range []int{0, 1, 5, -2} {
		c.Attack(c, mod)
	}
	if c.Health.Current != c.Health.Max {
		t.Fatalf("self attack damaged the character: %v/%v", c.Health.Current, c.Health.Max)
	}

	c.Attack(nil, 3)
	if c.Health.Current != c.Health.Max {
		t.Fatalf("nil target attack should be a no-op")
	}
}

func TestResetInput(t *testing.T) {
	c, clk := newTestCharacter(Hooks{})

	c.SetDirectionalInput(North, true)
	clk.advance(time.Millisecond)
	c.SetDirectionalInput(East, true)
	c.SetAttackInput(true)
	c.SetAbilityInput(true)

	held := map[Direction]bool{East: true}
	c.ResetInput(func(d Direction) bool { return held[d] })

	if !c.Moving() {
		t.Fatalf("east is still held, character should be moving")
	}
	if !c.pressTimes[North].IsZero() {
		t.Fatalf("north should be released after reset")
	}
	if c.attackKeyDown || c.abilityKeyDown {
		t.Fatalf("reset should release attack and ability keys")
	}
}

func TestResetCooldown(t *testing.T) {
	starts := 0
	c, clk := newTestCharacter(Hooks{
		AbilityStart: func() { starts++ },
	})

	c.SetAbilityInput(true)
	clk.advance(10 * time.Millisecond)
	c.FinishAbility()
	c.SetAbilityInput(false)

	c.ResetCooldown()
	c.SetAbilityInput(true)
	if starts != 2 {
		t.Fatalf("cooldown reset should allow an immediate re-activation")
	}
}

func TestAbilityCooldownRemaining(t *testing.T) {
	c, clk := newTestCharacter(Hooks{})

	if got := c.AbilityCooldownRemaining(); got != 0 {
		t.Fatalf("initial cooldown remaining = %v, want 0", got)
	}

	c.SetAbilityInput(true)
	clk.advance(500 * time.Millisecond)
	if got := c.AbilityCooldownRemaining(); got != 1500*time.Millisecond {
		t.Fatalf("cooldown remaining = %v, want 1.5s", got)
	}

	clk.advance(5 * time.Second)
	if got := c.AbilityCooldownRemaining(); got != 0 {
		t.Fatalf("cooldown remaining = %v, want 0 after expiry", got)
	}
}
