package main

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Animation is a frame-based animator for a rectangular spritesheet. Frames
// are laid out left-to-right, top-to-bottom.
type Animation struct {
	Sheet      *ebiten.Image
	FrameW     int
	FrameH     int
	FrameCount int
	Cols       int
	FPS        int
	Loop       bool

	// OnFinished fires once when a non-looping animation plays its last frame.
	OnFinished func()

	current     int
	tick        int
	ticksPerFrm int
	startIndex  int
	finished    bool
	frames      []*ebiten.Image
}

// NewAnimationRow creates an animation reading frameCount frames
// left-to-right starting at the given row (0-based). fps defaults to 12.
func NewAnimationRow(sheet *ebiten.Image, frameW, frameH, row, frameCount, fps int, loop bool) *Animation {
	if sheet == nil || frameW <= 0 || frameH <= 0 || frameCount <= 0 {
		return &Animation{}
	}
	if fps <= 0 {
		fps = 12
	}
	if row < 0 {
		row = 0
	}
	cols := sheet.Bounds().Dx() / frameW
	ticks := int(math.Max(1, math.Round(60.0/float64(fps))))
	a := &Animation{
		Sheet:       sheet,
		FrameW:      frameW,
		FrameH:      frameH,
		FrameCount:  frameCount,
		Cols:        cols,
		FPS:         fps,
		Loop:        loop,
		ticksPerFrm: ticks,
		startIndex:  row * cols,
	}
	a.buildFrames()
	return a
}

func (a *Animation) buildFrames() {
	if a.Sheet == nil || a.FrameCount <= 0 {
		return
	}
	a.frames = make([]*ebiten.Image, a.FrameCount)
	for i := 0; i < a.FrameCount; i++ {
		idx := a.startIndex + i
		col := idx % a.Cols
		row := idx / a.Cols
		sx := col * a.FrameW
		sy := row * a.FrameH
		r := image.Rect(sx, sy, sx+a.FrameW, sy+a.FrameH)
		a.frames[i] = ebiten.NewImageFromImage(a.Sheet.SubImage(r))
	}
}

// Update advances the animation. Call once per game update (60 TPS).
func (a *Animation) Update() {
	if a == nil || a.Sheet == nil || a.FrameCount <= 1 || a.finished {
		return
	}
	a.tick++
	if a.tick < a.ticksPerFrm {
		return
	}
	a.tick = 0
	a.current++
	if a.current >= a.FrameCount {
		if a.Loop {
			a.current = 0
			return
		}
		a.current = a.FrameCount - 1
		a.finished = true
		if a.OnFinished != nil {
			a.OnFinished()
		}
	}
}

// Reset sets the animation back to the first frame and re-arms OnFinished.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.current = 0
	a.tick = 0
	a.finished = false
}

// Draw draws the current frame with the given options.
func (a *Animation) Draw(screen *ebiten.Image, op *ebiten.DrawImageOptions) {
	if a == nil || len(a.frames) == 0 {
		return
	}
	var dop ebiten.DrawImageOptions
	if op != nil {
		dop = *op
	}
	dop.Filter = ebiten.FilterNearest
	screen.DrawImage(a.frames[a.current], &dop)
}

// Size returns the frame width/height.
func (a *Animation) Size() (int, int) { return a.FrameW, a.FrameH }
