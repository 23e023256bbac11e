package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/atmterminated/Pixel-Arena/arena"
	"github.com/atmterminated/Pixel-Arena/common"
)

const dummySize = 24.0

// Dummy is a stationary training target. It only knows how to take damage;
// the arena world owns its collision body.
type Dummy struct {
	X, Y   float64
	Health arena.Health

	img *ebiten.Image
}

func NewDummy(x, y float64) *Dummy {
	img := ebiten.NewImage(int(dummySize), int(dummySize))
	img.Fill(colornames.Lightslategray)
	return &Dummy{
		X:      x,
		Y:      y,
		Health: arena.NewHealth(100),
		img:    img,
	}
}

// Damage applies incoming damage.
func (d *Dummy) Damage(amount float64) {
	d.Health.Apply(amount)
}

// Reset restores the dummy to full health.
func (d *Dummy) Reset() {
	d.Health = arena.NewHealth(d.Health.Max)
}

// Draw renders the dummy, tinted toward red as its health drops.
func (d *Dummy) Draw(screen *ebiten.Image) {
	frac := 0.0
	if d.Health.Max > 0 {
		frac = d.Health.Current / d.Health.Max
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(d.X-dummySize/2, d.Y-dummySize/2)
	op.ColorScale.Scale(1, float32(common.Lerp(0.3, 1, frac)), float32(common.Lerp(0.3, 1, frac)), 1)
	screen.DrawImage(d.img, op)
}
