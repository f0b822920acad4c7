package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Skin is a cosmetic bird variant.
type Skin struct {
	ID    int
	Name  string
	Glyph rune
	Color core.Color
}

var skins = []Skin{
	{0, "Canary", '>', core.ColorYellow},
	{1, "Bluebird", '>', core.ColorBlue},
	{2, "Cardinal", '>', core.ColorRed},
	{3, "Parrot", '>', core.ColorGreen},
	{4, "Kingfisher", '>', core.ColorCyan},
	{5, "Finch", '>', core.ColorMagenta},
	{6, "Dove", '>', core.ColorWhite},
	{7, "Ghost", '~', core.ColorWhite},
	{8, "Phoenix", '*', core.ColorOrange},
}

// Skins returns the available skins in selection order.
func Skins() []Skin {
	out := make([]Skin, len(skins))
	copy(out, skins)
	return out
}

// SkinByID returns the skin with the given index.
func SkinByID(id int) (Skin, bool) {
	if id < 0 || id >= len(skins) {
		return Skin{}, false
	}
	return skins[id], true
}
