// Package flappy implements the Flappy Bird-style simulation: a bird falls
// under gravity and flaps on input, pipes scroll in from the right with a gap
// to fly through, and coins float inside some of those gaps.
//
// The package has no drawing or terminal code. A driver calls
// Session.TriggerJump and Session.Update once per frame and renders
// Session.Snapshot afterwards.
package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player body. X stays fixed during a run, only Y and Velocity
// evolve; Width and Height never change.
type Bird struct {
	X, Y          float64
	Width, Height float64
	Velocity      float64 // Vertical velocity, positive is down
}

// Box returns the bird's hitbox.
func (b Bird) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Pipe is a top and bottom barrier sharing one gap.
// Top + Gap + Bottom equals the playfield height it was spawned for.
type Pipe struct {
	ID     uint64
	X      float64 // Left edge
	Width  float64
	Top    float64 // Height of the top segment, also the y of the gap top
	Gap    float64
	Bottom float64 // Height of the bottom segment
	Passed bool    // Scored already
}

// GapTop returns the y coordinate where the opening starts.
func (p Pipe) GapTop() float64 {
	return p.Top
}

// GapBottom returns the y coordinate where the opening ends.
func (p Pipe) GapBottom() float64 {
	return p.Top + p.Gap
}

// Right returns the trailing edge of the pipe.
func (p Pipe) Right() float64 {
	return p.X + p.Width
}

// TopBox returns the collision box of the upper segment.
func (p Pipe) TopBox() core.Box {
	return core.Box{X: p.X, Y: 0, W: p.Width, H: p.Top}
}

// BottomBox returns the collision box of the lower segment.
func (p Pipe) BottomBox() core.Box {
	return core.Box{X: p.X, Y: p.GapBottom(), W: p.Width, H: p.Bottom}
}

// Coin is a collectible placed inside a pipe gap.
type Coin struct {
	ID        uint64
	X, Y      float64
	Size      float64
	Collected bool
	Angle     float64 // Spin phase, visual only
	Scale     float64 // Horizontal squash derived from Angle, in [0.4, 1]
}

// Box returns the coin's hitbox.
func (c Coin) Box() core.Box {
	return core.Box{X: c.X, Y: c.Y, W: c.Size, H: c.Size}
}

// spin advances the animation phase by rate ticks worth of rotation.
func (c *Coin) spin(delta float64) {
	c.Angle += delta
	c.Scale = math.Sin(c.Angle)*0.3 + 0.7
}
