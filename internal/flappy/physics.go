package flappy

// Collision identifies what ended a run.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionCeiling
	CollisionGround
	CollisionPipe
)

// String returns the collision kind name.
func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionCeiling:
		return "ceiling"
	case CollisionGround:
		return "ground"
	case CollisionPipe:
		return "pipe"
	default:
		return "unknown"
	}
}

// Integrate applies gravity and then velocity to the bird.
// scale is the number of nominal ticks covered by the step.
func Integrate(b *Bird, gravity, scale float64) {
	b.Velocity += gravity * scale
	b.Y += b.Velocity * scale
}

// CheckBounds reports whether the bird left the playfield vertically.
// Touching the top or bottom edge exactly is still inside.
func CheckBounds(b Bird, height float64) Collision {
	switch {
	case b.Y < 0:
		return CollisionCeiling
	case b.Y+b.Height > height:
		return CollisionGround
	default:
		return CollisionNone
	}
}

// HitsPipe reports whether the bird overlaps either segment of p.
func HitsPipe(b Bird, p Pipe) bool {
	box := b.Box()
	if !box.OverlapsX(p.TopBox()) {
		return false
	}
	return b.Y < p.GapTop() || box.Bottom() > p.GapBottom()
}

// HasPassed reports whether the pipe's trailing edge is behind the bird.
func HasPassed(b Bird, p Pipe) bool {
	return p.Right() < b.X
}

// Touches reports whether the bird overlaps the coin.
func Touches(b Bird, c Coin) bool {
	return b.Box().Overlaps(c.Box())
}

// CullPipes drops pipes that scrolled fully past the left edge.
// The slice is filtered in place.
func CullPipes(pipes []Pipe) []Pipe {
	kept := pipes[:0]
	for _, p := range pipes {
		if p.Right() > 0 {
			kept = append(kept, p)
		}
	}
	return kept
}

// CullCoins drops collected coins and coins that left the playfield.
// The slice is filtered in place.
func CullCoins(coins []Coin) []Coin {
	kept := coins[:0]
	for _, c := range coins {
		if !c.Collected && c.X+c.Size > 0 {
			kept = append(kept, c)
		}
	}
	return kept
}
