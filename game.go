package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/atmterminated/Pixel-Arena/arena"
	"github.com/atmterminated/Pixel-Arena/arena/script"
	"github.com/atmterminated/Pixel-Arena/config"
)

const (
	baseWidth  = 640
	baseHeight = 360

	tickDT = time.Second / 60
)

type Game struct {
	frames int
	debug  bool

	input   *Input
	char    *arena.Character
	world   *ArenaWorld
	anims   *CharacterAnimations
	dummies []*Dummy

	specName      string
	spec          *config.CharacterSpec
	attackScript  *script.Runtime
	abilityScript *script.Runtime
	watcher       *config.Watcher
}

func NewGame(specName string, dummyCount int, debug bool) (*Game, error) {
	spec, err := config.LoadCharacterSpec(specName)
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:    debug,
		input:    NewInput(),
		specName: specName,
		spec:     spec,
	}

	if err := g.loadScripts(spec); err != nil {
		return nil, err
	}

	g.world = NewArenaWorld(spec.Hitbox)
	g.anims = NewCharacterAnimations(func() {
		g.char.FinishAttack()
	})

	g.char = arena.NewCharacter(spec.Name, spec.Stats(), arena.Hooks{
		PlayAnimation: g.anims.Play,
		SetVelocity:   g.world.SetCharacterVelocity,
		SetHitbox: func(dir arena.Direction, enabled bool) {
			g.world.SetHitboxEnabled(dir, enabled)
			if enabled {
				g.anims.Replay(arena.AnimAttack, dir)
			}
		},
		AttackState: func(elapsed time.Duration, keyDown bool) {
			if err := g.attackScript.Update(g.scriptEngine(), elapsed, keyDown); err != nil {
				log.Printf("attack script: %v", err)
			}
		},
		AbilityState: func(elapsed time.Duration, keyDown bool) {
			if err := g.abilityScript.Update(g.scriptEngine(), elapsed, keyDown); err != nil {
				log.Printf("ability script: %v", err)
			}
		},
		AbilityStart: func() {
			g.abilityScript.Reset()
		},
		AbilityEnd: func() {
			g.world.SetCharacterVelocity(0, g.char.Facing)
		},
	})

	g.world.OnHit(func(target arena.Actor) {
		g.char.Attack(target, 0)
	})

	if dummyCount < 0 {
		dummyCount = 0
	}
	spots := [][2]float64{
		{arenaWidth / 2, arenaHeight / 4},
		{arenaWidth * 3 / 4, arenaHeight / 2},
		{arenaWidth / 2, arenaHeight * 3 / 4},
		{arenaWidth / 4, arenaHeight / 2},
	}
	for i := 0; i < dummyCount && i < len(spots); i++ {
		d := NewDummy(spots[i][0], spots[i][1])
		g.world.AddTarget(d.X, d.Y, dummySize, d)
		g.dummies = append(g.dummies, d)
	}

	if w, err := config.NewWatcher("config", "config/scripts"); err != nil {
		log.Printf("config watch disabled: %v", err)
	} else {
		g.watcher = w
	}

	return g, nil
}

func (g *Game) loadScripts(spec *config.CharacterSpec) error {
	attackSrc, err := config.LoadScript(spec.Attack.Script)
	if err != nil {
		return fmt.Errorf("load attack script: %w", err)
	}
	attackRT, err := script.New(spec.Attack.Script, attackSrc, spec.AttackParams())
	if err != nil {
		return err
	}

	abilitySrc, err := config.LoadScript(spec.Ability.Script)
	if err != nil {
		return fmt.Errorf("load ability script: %w", err)
	}
	abilityRT, err := script.New(spec.Ability.Script, abilitySrc, spec.AbilityParams())
	if err != nil {
		return err
	}

	g.attackScript = attackRT
	g.abilityScript = abilityRT
	return nil
}

func (g *Game) scriptEngine() script.Engine {
	return script.Engine{
		BeginAttack:   g.char.BeginAttack,
		FinishAttack:  g.char.FinishAttack,
		FinishAbility: g.char.FinishAbility,
		SetVelocity:   g.char.SetVelocity,
		Facing:        func() arena.Direction { return g.char.Facing },
	}
}

func (g *Game) Update() error {
	g.frames++

	g.drainReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetTraining()
	}

	// Input dispatch is serialized before the tick reads it.
	g.input.Update(g.char)
	g.char.Update(tickDT)
	g.world.Step(tickDT.Seconds())
	g.anims.Update()

	return nil
}

// drainReloads applies pending config/script changes without blocking the
// tick. A failed reload keeps the previous tuning.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("config changed: %s", path)
			changed = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("config watch: %v", err)
			}
		default:
			if !changed {
				return
			}
			spec, err := config.LoadCharacterSpec(g.specName)
			if err != nil {
				log.Printf("config reload: %v", err)
				return
			}
			if err := g.loadScripts(spec); err != nil {
				log.Printf("config reload: %v", err)
				return
			}
			g.spec = spec
			g.char.Stats = spec.Stats()
			return
		}
	}
}

// resetTraining restores the dummies, clears the ability cooldown, and
// re-derives input from the live key state.
func (g *Game) resetTraining() {
	for _, d := range g.dummies {
		d.Reset()
	}
	g.char.ResetCooldown()
	g.input.Reset(g.char)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	vector.StrokeRect(screen, 0, 0, arenaWidth, arenaHeight, wallRadius, colornames.Dimgray, false)

	for _, d := range g.dummies {
		d.Draw(screen)
	}

	x, y := g.world.CharacterPosition()
	g.anims.Draw(screen, x, y)

	if g.debug {
		for _, d := range arena.Directions {
			if !g.world.HitboxEnabled(d) {
				continue
			}
			hx, hy, hw, hh := g.world.HitboxRect(d)
			vector.StrokeRect(screen, float32(hx), float32(hy), float32(hw), float32(hh), 1, colornames.Red, false)
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"state: %s  facing: %s  moving: %t\nattacking: %t  ability: %t  cooldown: %s\nFPS: %.1f",
			g.char.State, g.char.Facing, g.char.Moving(),
			g.char.IsAttacking(), g.char.AbilityActive(), g.char.AbilityCooldownRemaining().Round(time.Millisecond),
			ebiten.ActualFPS(),
		))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
