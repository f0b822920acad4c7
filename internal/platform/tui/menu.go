package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
)

// MenuItem is one entry of the main menu.
type MenuItem int

const (
	MenuPlay MenuItem = iota
	MenuSkins
	MenuScores
	MenuQuit
)

var menuTitles = []string{"Play", "Skins", "High Scores", "Quit"}

// String returns the entry title.
func (i MenuItem) String() string {
	if int(i) < len(menuTitles) {
		return menuTitles[i]
	}
	return "?"
}

const logo = `  ___ _                       
 | __| |__ _ _ __ _ __ _  _   
 | _|| / _' | '_ \ '_ \ || |  
 |_| |_\__,_| .__/ .__/\_, |  
            |_|  |_|   |__/   `

// renderMenu draws the title screen.
func renderMenu(p *Palette, width int, cursor int, snap flappy.Snapshot) string {
	var b strings.Builder

	logoStyle := p.Style(core.ColorBrightYellow).Bold(true)
	b.WriteString("\n")
	for _, line := range strings.Split(logo, "\n") {
		b.WriteString(logoStyle.Render(centerText(line, width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	stats := fmt.Sprintf("Best: %d   Coins: %d   Bird: %s", snap.Best, snap.TotalCoins, snap.Skin.Name)
	b.WriteString(p.Style(core.ColorGray).Render(centerText(stats, width)))
	b.WriteString("\n\n")

	for i, title := range menuTitles {
		line := "  " + title + "  "
		style := p.Style(core.ColorWhite)
		if i == cursor {
			line = "> " + title + " <"
			style = p.Style(core.ColorBrightYellow).Bold(true)
		}
		b.WriteString(style.Render(centerText(line, width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(p.Style(core.ColorGray).Render(centerText(controls, width)))
	b.WriteString("\n")

	return b.String()
}

// renderSkins draws the skin picker with a coloured preview per skin.
func renderSkins(p *Palette, width int, cursor int, current int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(p.Style(core.ColorBrightWhite).Bold(true).Render(centerText("CHOOSE YOUR BIRD", width)))
	b.WriteString("\n\n")

	for _, s := range flappy.Skins() {
		marker := "  "
		if s.ID == cursor {
			marker = "> "
		}
		active := " "
		if s.ID == current {
			active = "*"
		}
		preview := p.Style(s.Color).Render(fmt.Sprintf("%c%c%c", '●', '●', s.Glyph))
		name := fmt.Sprintf("%s%s %-12s", marker, active, s.Name)
		line := name + preview
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Browse  |  Enter: Pick  |  Esc: Back"
	b.WriteString(p.Style(core.ColorGray).Render(centerText(controls, width)))
	b.WriteString("\n")

	return b.String()
}
