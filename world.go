package main

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/atmterminated/Pixel-Arena/arena"
	"github.com/atmterminated/Pixel-Arena/config"
)

const (
	arenaWidth  = 640.0
	arenaHeight = 360.0

	characterSize = 24.0
	wallRadius    = 4.0
)

// ArenaWorld owns the cp collision space: the character body, the static
// arena walls, target bodies, and one directional attack hitbox per facing.
// Hitboxes are sensor shapes kept out of the space and swept by shape queries
// only while enabled, so a disabled hitbox can never hit anything.
type ArenaWorld struct {
	space *cp.Space
	body  *cp.Body

	hitboxes [len(arena.Directions)]*cp.Shape
	enabled  [len(arena.Directions)]bool

	targets map[*cp.Shape]arena.Actor
	struck  map[arena.Actor]bool

	// onHit fires once per target per hitbox activation.
	onHit func(target arena.Actor)
}

func NewArenaWorld(hb config.HitboxSpec) *ArenaWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	// top-down arena: no gravity

	w := &ArenaWorld{
		space:   space,
		targets: map[*cp.Shape]arena.Actor{},
		struck:  map[arena.Actor]bool{},
	}

	walls := [][4]float64{
		{0, 0, arenaWidth, 0},
		{arenaWidth, 0, arenaWidth, arenaHeight},
		{arenaWidth, arenaHeight, 0, arenaHeight},
		{0, arenaHeight, 0, 0},
	}
	for _, s := range walls {
		seg := cp.NewSegment(space.StaticBody, cp.Vector{X: s[0], Y: s[1]}, cp.Vector{X: s[2], Y: s[3]}, wallRadius)
		seg.SetElasticity(0)
		seg.SetFriction(0)
		space.AddShape(seg)
	}

	// infinite moment keeps the character from spinning off wall contacts
	body := space.AddBody(cp.NewBody(1, math.Inf(1)))
	body.SetPosition(cp.Vector{X: arenaWidth / 2, Y: arenaHeight / 2})
	shape := space.AddShape(cp.NewBox(body, characterSize, characterSize, 0))
	shape.SetElasticity(0)
	shape.SetFriction(0)
	w.body = body

	for _, d := range arena.Directions {
		dx, dy := d.Vector()
		cx := dx * (characterSize/2 + hb.Reach)
		cy := dy * (characterSize/2 + hb.Reach)
		bb := cp.BB{
			L: cx - hb.Width/2,
			B: cy - hb.Height/2,
			R: cx + hb.Width/2,
			T: cy + hb.Height/2,
		}
		hit := cp.NewBox2(body, bb, 0)
		hit.SetSensor(true)
		w.hitboxes[d] = hit
	}

	return w
}

// OnHit registers the callback run when an enabled hitbox overlaps a target.
func (w *ArenaWorld) OnHit(f func(target arena.Actor)) {
	w.onHit = f
}

// AddTarget drops a static target body into the space and registers it as a
// damage sink.
func (w *ArenaWorld) AddTarget(x, y, size float64, target arena.Actor) {
	body := w.space.AddBody(cp.NewStaticBody())
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := w.space.AddShape(cp.NewBox(body, size, size, 0))
	shape.SetElasticity(0)
	shape.SetFriction(0)
	w.targets[shape] = target
}

// SetHitboxEnabled toggles the attack hitbox for one direction. Enabling
// clears the per-activation struck set so every target can be hit once by the
// new swing.
func (w *ArenaWorld) SetHitboxEnabled(dir arena.Direction, enabled bool) {
	if !dir.Valid() {
		return
	}
	if enabled && !w.enabled[dir] {
		w.struck = map[arena.Actor]bool{}
	}
	w.enabled[dir] = enabled
}

// SetCharacterVelocity applies an axis-aligned speed to the character body.
func (w *ArenaWorld) SetCharacterVelocity(speed float64, dir arena.Direction) {
	dx, dy := dir.Vector()
	w.body.SetVelocityVector(cp.Vector{X: dx * speed, Y: dy * speed})
}

// CharacterPosition returns the character body's current position.
func (w *ArenaWorld) CharacterPosition() (x, y float64) {
	pos := w.body.Position()
	return pos.X, pos.Y
}

// Step advances the space and sweeps every enabled hitbox against the
// registered targets.
func (w *ArenaWorld) Step(dt float64) {
	w.space.Step(dt)

	for _, d := range arena.Directions {
		if !w.enabled[d] {
			continue
		}
		hit := w.hitboxes[d]
		hit.CacheBB()
		w.space.ShapeQuery(hit, func(shape *cp.Shape, _ *cp.ContactPointSet) {
			target, ok := w.targets[shape]
			if !ok || w.struck[target] {
				return
			}
			w.struck[target] = true
			if w.onHit != nil {
				w.onHit(target)
			}
		})
	}
}

// HitboxRect returns the world-space AABB of one hitbox, for debug drawing.
func (w *ArenaWorld) HitboxRect(dir arena.Direction) (x, y, width, height float64) {
	if !dir.Valid() {
		return 0, 0, 0, 0
	}
	bb := w.hitboxes[dir].CacheBB()
	return bb.L, bb.B, bb.R - bb.L, bb.T - bb.B
}

// HitboxEnabled reports whether a direction's hitbox is currently open.
func (w *ArenaWorld) HitboxEnabled(dir arena.Direction) bool {
	return dir.Valid() && w.enabled[dir]
}
