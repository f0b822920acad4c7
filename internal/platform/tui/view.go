package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
)

// Layout rows around the playfield.
const (
	hudRows    = 1
	groundRows = 1
)

// Glyphs.
const (
	pipeChar    = '█'
	pipeCapChar = '▓'
	groundChar  = '▀'
	bodyChar    = '●'
	starChar    = '.'
)

// PlayfieldWidth returns the playfield width that keeps the aspect of a
// cols x rows terminal for a playfield of the given height. Terminal cells
// are about twice as tall as they are wide.
func PlayfieldWidth(cols, rows int, height float64) float64 {
	play := rows - hudRows - groundRows
	if cols <= 0 || play <= 0 {
		return 0
	}
	return math.Round(height * float64(cols) / float64(2*play))
}

// fieldMapper converts playfield boxes to screen rects below the HUD row.
type fieldMapper struct {
	sx, sy float64
}

func newFieldMapper(dst *core.Screen, snap flappy.Snapshot) fieldMapper {
	play := max(dst.Height()-hudRows-groundRows, 1)
	return fieldMapper{
		sx: float64(dst.Width()) / snap.Width,
		sy: float64(play) / snap.Height,
	}
}

func (f fieldMapper) rect(b core.Box) core.Rect {
	r := b.Scale(f.sx, f.sy)
	r.Y += hudRows
	return r
}

// DrawSnapshot draws the playfield, HUD and any state overlay into dst.
func DrawSnapshot(dst *core.Screen, snap flappy.Snapshot, music bool) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() <= hudRows+groundRows || snap.Width <= 0 {
		return
	}
	f := newFieldMapper(dst, snap)

	tint := func(c core.Color) core.Color {
		if snap.Night {
			return c.Dimmed()
		}
		return c
	}

	if snap.Blend > 0.5 {
		drawStars(dst, snap.Tick)
	}

	for _, p := range snap.Pipes {
		drawPipe(dst, f, p, tint(core.ColorBrightGreen))
	}

	for _, c := range snap.Coins {
		drawCoin(dst, f, c, tint(core.ColorBrightYellow))
	}

	drawBird(dst, f, snap.Bird, snap.Skin)

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), groundChar, tint(core.ColorOrange))

	drawHUD(dst, snap, music)

	switch {
	case snap.State == flappy.StateOver:
		drawGameOver(dst, snap)
	case snap.Paused:
		drawMessage(dst, core.ColorBrightWhite, "PAUSED", "Press P to resume")
	}
}

func drawPipe(dst *core.Screen, f fieldMapper, p flappy.Pipe, c core.Color) {
	top := f.rect(p.TopBox())
	dst.DrawRect(top, pipeChar, c)
	dst.DrawHLine(top.X, top.Bottom()-1, top.W, pipeCapChar, c)

	bottom := f.rect(p.BottomBox())
	dst.DrawRect(bottom, pipeChar, c)
	dst.DrawHLine(bottom.X, bottom.Y, bottom.W, pipeCapChar, c)
}

// drawCoin picks a glyph from the spin scale so the coin appears to turn.
func drawCoin(dst *core.Screen, f fieldMapper, c flappy.Coin, col core.Color) {
	r := f.rect(c.Box())
	glyph := '|'
	switch {
	case c.Scale > 0.85:
		glyph = 'O'
	case c.Scale > 0.6:
		glyph = 'o'
	}
	cx, cy := r.Center()
	dst.SetColor(cx, cy, glyph, col)
}

func drawBird(dst *core.Screen, f fieldMapper, b flappy.Bird, skin flappy.Skin) {
	r := f.rect(b.Box())
	dst.DrawRect(r, bodyChar, skin.Color)
	_, cy := r.Center()
	dst.SetColor(r.Right()-1, cy, skin.Glyph, skin.Color)
}

// drawStars scatters a fixed star pattern that twinkles slowly.
func drawStars(dst *core.Screen, tick int) {
	phase := (tick / 30) % 2
	for y := hudRows; y < dst.Height()-groundRows; y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x*7+y*13+phase)%41 == 0 {
				dst.SetColor(x, y, starChar, core.ColorWhite)
			}
		}
	}
}

func drawHUD(dst *core.Screen, snap flappy.Snapshot, music bool) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)

	text := fmt.Sprintf(" Score: %d  Coins: %d  Best: %d  Bank: %d ",
		snap.Score, snap.RunCoins, snap.Best, snap.TotalCoins)
	dst.DrawTextColor(0, 0, text, core.ColorBrightWhite)
	x := len(text)

	if snap.NewBest {
		dst.DrawTextColor(x, 0, "NEW BEST! ", core.ColorBrightYellow)
		x += len("NEW BEST! ")
	}

	var flags string
	if music {
		flags += "♪ "
	}
	if snap.Night {
		flags += "☾ "
	} else {
		flags += "☀ "
	}
	if !snap.Durable {
		flags += "(unsaved) "
	}
	dst.DrawTextColor(dst.Width()-len([]rune(flags)), 0, flags, core.ColorGray)
}

func drawGameOver(dst *core.Screen, snap flappy.Snapshot) {
	title := "GAME OVER"
	if snap.NewBest {
		title = "NEW BEST!"
	}
	drawMessage(dst, core.ColorBrightRed, title,
		fmt.Sprintf("Score: %d  Coins: %d  Best: %d", snap.Score, snap.RunCoins, snap.Best),
		"R: retry  |  Esc: menu  |  Q: quit",
	)
}

// drawMessage draws a boxed message in the middle of the screen.
func drawMessage(dst *core.Screen, c core.Color, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 4

	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-height)/2, width, height)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextCentered(box.Y+1, title, c)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l, core.ColorWhite)
	}
}
