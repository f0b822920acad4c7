package tui

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/flappy"
)

// bell is the terminal bell, the only sound a plain terminal can make.
const bell = "\a"

// Cues turns session events into sound. Short effects ring the terminal
// bell; background music is tracked as a flag the HUD displays, started
// with each run and paused on death.
type Cues struct {
	mu     sync.Mutex
	out    io.Writer
	ring   bool
	logger *log.Logger
	music  bool
	counts map[flappy.EventKind]int
}

// NewCues creates a cue player writing the bell to out when ring is set.
func NewCues(out io.Writer, ring bool, logger *log.Logger) *Cues {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cues{
		out:    out,
		ring:   ring && out != nil,
		logger: logger,
		counts: make(map[flappy.EventKind]int),
	}
}

// Handle is a flappy.Handler.
func (c *Cues) Handle(e flappy.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[e.Kind]++
	c.logger.Debug("cue", "event", e.Kind, "tick", e.Tick, "score", e.Score)

	switch e.Kind {
	case flappy.EventRunStart:
		c.music = true
	case flappy.EventDeath:
		c.music = false
		c.beep()
	case flappy.EventScore, flappy.EventCoin, flappy.EventNewBest:
		c.beep()
	}
}

func (c *Cues) beep() {
	if !c.ring {
		return
	}
	if _, err := io.WriteString(c.out, bell); err != nil {
		c.logger.Debug("bell failed, muting", "err", err)
		c.ring = false
	}
}

// MusicPlaying reports whether the background track is on.
func (c *Cues) MusicPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.music
}

// Count returns how many events of kind k were played.
func (c *Cues) Count(k flappy.EventKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[k]
}
