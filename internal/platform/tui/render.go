package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Sky endpoints for the day/night blend.
var (
	daySky   = colorful.Color{R: 0.53, G: 0.81, B: 0.92}
	nightSky = colorful.Color{R: 0.04, G: 0.06, B: 0.15}
)

// SkyColor returns the background colour for a day/night blend in [0, 1].
func SkyColor(blend float64) lipgloss.Color {
	blend = core.ClampF(blend, 0, 1)
	return lipgloss.Color(daySky.BlendLab(nightSky, blend).Clamped().Hex())
}

// Palette maps core colours to lipgloss styles for one renderer. SSH
// sessions get their own renderer so colour detection follows the client.
type Palette struct {
	renderer *lipgloss.Renderer
	styles   map[core.Color]lipgloss.Style
}

// NewPalette builds the styles for r. A nil renderer uses the default one.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{
		renderer: r,
		styles:   make(map[core.Color]lipgloss.Style, len(ansiCodes)+1),
	}
	p.styles[core.ColorDefault] = r.NewStyle()
	for c, code := range ansiCodes {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

// Style returns the foreground style for c.
func (p *Palette) Style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.styles[core.ColorDefault]
}

// NewStyle returns an empty style bound to the palette's renderer.
func (p *Palette) NewStyle() lipgloss.Style {
	return p.renderer.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Palette) RenderScreen(s *core.Screen) string {
	return p.render(s, nil)
}

// RenderScreenOn is RenderScreen with every cell painted on background bg.
func (p *Palette) RenderScreenOn(s *core.Screen, bg lipgloss.Color) string {
	return p.render(s, &bg)
}

func (p *Palette) render(s *core.Screen, bg *lipgloss.Color) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style := p.Style(startColor)
			if bg != nil {
				style = style.Background(*bg)
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
