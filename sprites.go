package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/atmterminated/Pixel-Arena/arena"
)

const (
	spriteFrameSize  = 32
	spriteFrameCount = 4
)

// The repo ships no binary art; the character sheet is generated at startup.
// One row per (animation kind, direction) pair, four frames per row, with a
// per-frame brightness ramp so motion reads on screen.
var spriteBaseColors = map[arena.Direction]color.RGBA{
	arena.North: colornames.Steelblue,
	arena.East:  colornames.Seagreen,
	arena.South: colornames.Indianred,
	arena.West:  colornames.Goldenrod,
}

var spriteKinds = [...]arena.AnimKind{arena.AnimIdle, arena.AnimWalk, arena.AnimAttack}

func sheetRow(kind arena.AnimKind, dir arena.Direction) int {
	return int(kind)*len(arena.Directions) + int(dir)
}

func makeCharacterSheet() *ebiten.Image {
	rows := len(spriteKinds) * len(arena.Directions)
	sheet := ebiten.NewImage(spriteFrameSize*spriteFrameCount, spriteFrameSize*rows)

	for _, kind := range spriteKinds {
		for _, dir := range arena.Directions {
			base := spriteBaseColors[dir]
			row := sheetRow(kind, dir)
			for frame := 0; frame < spriteFrameCount; frame++ {
				shade := shadeColor(base, 0.7+0.1*float64(frame))
				if kind == arena.AnimAttack {
					shade = shadeColor(colornames.White, 0.4+0.2*float64(frame))
				}
				r := image.Rect(
					frame*spriteFrameSize, row*spriteFrameSize,
					(frame+1)*spriteFrameSize, (row+1)*spriteFrameSize,
				)
				sheet.SubImage(r).(*ebiten.Image).Fill(shade)
			}
		}
	}

	return sheet
}

func shadeColor(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		f := float64(v) * factor
		if f > 255 {
			f = 255
		}
		return uint8(f)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// CharacterAnimations holds the per-direction animation sets for one
// character and plays at most one at a time.
type CharacterAnimations struct {
	sets    map[arena.AnimKind]map[arena.Direction]*Animation
	current *Animation
}

// NewCharacterAnimations builds looped idle/walk sets and a non-looping
// attack set from a generated sheet. onAttackDone fires when an attack
// animation finishes playing.
func NewCharacterAnimations(onAttackDone func()) *CharacterAnimations {
	sheet := makeCharacterSheet()

	sets := map[arena.AnimKind]map[arena.Direction]*Animation{}
	for _, kind := range spriteKinds {
		byDir := map[arena.Direction]*Animation{}
		for _, dir := range arena.Directions {
			fps := 6
			loop := true
			if kind == arena.AnimWalk {
				fps = 10
			}
			if kind == arena.AnimAttack {
				fps = 16
				loop = false
			}
			a := NewAnimationRow(sheet, spriteFrameSize, spriteFrameSize, sheetRow(kind, dir), spriteFrameCount, fps, loop)
			if kind == arena.AnimAttack {
				a.OnFinished = onAttackDone
			}
			byDir[dir] = a
		}
		sets[kind] = byDir
	}

	c := &CharacterAnimations{sets: sets}
	c.current = sets[arena.AnimIdle][arena.North]
	return c
}

// Play switches to the animation for the given kind and facing. Unknown
// lookups leave the current animation running; re-playing the active
// animation does not restart it.
func (c *CharacterAnimations) Play(kind arena.AnimKind, facing arena.Direction) {
	byDir, ok := c.sets[kind]
	if !ok {
		return
	}
	anim, ok := byDir[facing]
	if !ok || anim == c.current {
		return
	}
	c.current = anim
	anim.Reset()
}

// Replay is Play but always restarts from the first frame, for one-shot
// animations like attacks that may repeat with the same facing.
func (c *CharacterAnimations) Replay(kind arena.AnimKind, facing arena.Direction) {
	byDir, ok := c.sets[kind]
	if !ok {
		return
	}
	anim, ok := byDir[facing]
	if !ok {
		return
	}
	c.current = anim
	anim.Reset()
}

// Update advances the active animation.
func (c *CharacterAnimations) Update() {
	if c.current != nil {
		c.current.Update()
	}
}

// Draw renders the active animation centered on (x, y).
func (c *CharacterAnimations) Draw(screen *ebiten.Image, x, y float64) {
	if c.current == nil {
		return
	}
	fw, fh := c.current.Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x-float64(fw)/2, y-float64(fh)/2)
	c.current.Draw(screen, op)
}
