package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// KeySkin is the key-value entry holding the player's chosen skin.
const KeySkin = "skin"

// maxFrameStep bounds the delta handed to the session after a stall.
const maxFrameStep = 250 * time.Millisecond

type screenKind int

const (
	screenMenu screenKind = iota
	screenSkins
	screenGame
	screenScores
)

// Options configures a Model.
type Options struct {
	Flappy  config.FlappyConfig
	Runtime core.RuntimeConfig // Terminal size, frames per second and seed

	// Store persists scores and run history. Nil keeps everything in memory.
	Store *storage.Store
	// Player names the persistence namespace. Empty or storage.LocalPlayer
	// uses the root keys.
	Player string
	Skin   int

	Bell   bool      // Ring the terminal bell on score, coin and death
	Output io.Writer // Where the bell goes

	Logger   *log.Logger
	Clock    core.Clock
	Renderer *lipgloss.Renderer
}

// Model is the Bubble Tea model for a whole flappy session: title menu,
// skin picker, the game itself and the scoreboard.
type Model struct {
	opts    Options
	session *flappy.Session
	kv      flappy.KVStore
	cues    *Cues
	timer   *core.FrameTimer
	screen  *core.Screen
	palette *Palette
	keys    KeyMap
	help    help.Model
	input   core.InputFrame
	logger  *log.Logger

	view       screenKind
	cursor     int
	skinCursor int
	scores     ScoreboardModel
	runSaved   bool
	quitting   bool
}

// NewModel creates the model and its game session.
func NewModel(opts Options) (Model, error) {
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("player", opts.Player)

	var kv flappy.KVStore
	switch {
	case opts.Store == nil:
	case opts.Player == storage.LocalPlayer:
		kv = opts.Store
	default:
		kv = opts.Store.Bucket(opts.Player)
	}

	skin := opts.Skin
	if kv != nil {
		if raw, ok, err := kv.Get(KeySkin); err == nil && ok {
			if id, err := strconv.Atoi(raw); err == nil {
				skin = id
			}
		}
	}

	bus := flappy.NewBus()
	cues := NewCues(opts.Output, opts.Bell, logger)
	bus.Subscribe(cues.Handle)

	session, err := flappy.NewSession(opts.Flappy, kv,
		flappy.WithSeed(opts.Runtime.Seed),
		flappy.WithLogger(logger),
		flappy.WithBus(bus),
		flappy.WithSkin(skin),
	)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		opts:    opts,
		session: session,
		kv:      kv,
		cues:    cues,
		timer:   core.NewFrameTimer(opts.Clock, maxFrameStep),
		screen:  core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		palette: NewPalette(opts.Renderer),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		input:   core.NewInputFrame(),
		logger:  logger,
	}
	m.fitPlayfield()
	return m, nil
}

// Session exposes the underlying game session.
func (m Model) Session() *flappy.Session {
	return m.session
}

// Cues exposes the sound cue player.
func (m Model) Cues() *Cues {
	return m.cues
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Screenshot) {
			m.saveScreenshot()
			return m, nil
		}
		switch m.view {
		case screenMenu:
			return m.handleMenuKey(msg)
		case screenSkins:
			return m.handleSkinKey(msg)
		case screenGame:
			return m.handleGameKey(msg)
		case screenScores:
			return m.updateScores(msg)
		}

	case tea.MouseMsg:
		if m.view == screenGame && msg.Action == tea.MouseActionPress {
			m.input.Set(core.ActionJump)
		}
	}

	if m.view == screenScores {
		return m.updateScores(msg)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	m.fitPlayfield()

	if m.view == screenScores {
		return m.updateScores(msg)
	}
	return m, nil
}

// fitPlayfield matches the playfield aspect to the terminal.
func (m *Model) fitPlayfield() {
	height := m.opts.Flappy.Playfield.Height
	width := PlayfieldWidth(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, height)
	if width <= 0 {
		return
	}
	if err := m.session.Resize(width, height); err != nil {
		m.logger.Warn("cannot resize playfield", "width", width, "height", height, "err", err)
	}
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + len(menuTitles) - 1) % len(menuTitles)
		m.menuCue()

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(menuTitles)
		m.menuCue()

	case MenuActionSelect:
		switch MenuItem(m.cursor) {
		case MenuPlay:
			if err := m.session.Start(); err != nil {
				m.logger.Error("cannot start run", "err", err)
				return m, nil
			}
			m.view = screenGame
			m.runSaved = false
			m.input.Clear()
			m.timer.Reset()
		case MenuSkins:
			m.view = screenSkins
			m.skinCursor = m.session.Snapshot().Skin.ID
			m.menuCue()
		case MenuScores:
			m.scores = NewScoreboardModel(m.opts.Store, m.opts.Player, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
			m.scores.embedded = true
			m.view = screenScores
			m.menuCue()
		case MenuQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleSkinKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(flappy.Skins())
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.skinCursor = (m.skinCursor + n - 1) % n
		m.menuCue()

	case MenuActionDown:
		m.skinCursor = (m.skinCursor + 1) % n
		m.menuCue()

	case MenuActionSelect:
		if err := m.session.SelectSkin(m.skinCursor); err != nil {
			m.logger.Warn("cannot select skin", "skin", m.skinCursor, "err", err)
			return m, nil
		}
		if m.kv != nil {
			if err := m.kv.Set(KeySkin, strconv.Itoa(m.skinCursor)); err != nil {
				m.logger.Warn("cannot save skin", "err", err)
			}
		}
		m.view = screenMenu

	case MenuActionBack:
		m.view = screenMenu
		m.menuCue()
	}
	return m, nil
}

func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = sb
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.view = screenMenu
		m.menuCue()
	}
	return m, cmd
}

// handleTick applies buffered input and advances the session by the real
// time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.timer.TickAt(now)

	if m.view == screenGame {
		m.applyInput()
		m.session.Update(dt)
		m.recordRun()
	}
	m.input.Clear()

	return m, tickCmd(m.opts.Runtime.TickRate)
}

func (m *Model) applyInput() {
	if m.input.Empty() {
		return
	}
	switch m.session.State() {
	case flappy.StateRunning:
		if m.input.Has(core.ActionPause) {
			m.session.Pause()
		}
		if m.input.Has(core.ActionJump) {
			m.session.TriggerJump()
		}
	case flappy.StateOver:
		switch {
		case m.input.Has(core.ActionRestart):
			if err := m.session.Retry(); err == nil {
				m.runSaved = false
				m.timer.Reset()
			}
		case m.input.Has(core.ActionBack):
			if err := m.session.Back(); err == nil {
				m.view = screenMenu
			}
		}
	}
}

// recordRun stores a finished run once.
func (m *Model) recordRun() {
	if m.runSaved || m.session.State() != flappy.StateOver {
		return
	}
	m.runSaved = true

	snap := m.session.Snapshot()
	if m.opts.Store == nil || (snap.Score == 0 && snap.RunCoins == 0) {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.Run{
		Player:  m.opts.Player,
		Score:   snap.Score,
		Coins:   snap.RunCoins,
		NewBest: snap.NewBest,
		Skin:    snap.Skin.Name,
		Ticks:   snap.Tick,
	})
	if err != nil {
		m.logger.Warn("cannot save run", "err", err)
	}
}

func (m *Model) menuCue() {
	m.session.Events().Emit(flappy.Event{Kind: flappy.EventMenu})
}

// saveScreenshot saves the current game screen to a text file.
func (m *Model) saveScreenshot() {
	DrawSnapshot(m.screen, m.session.Snapshot(), m.cues.MusicPlaying())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	name := fmt.Sprintf("flappy_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case screenSkins:
		return renderSkins(m.palette, m.opts.Runtime.ScreenW, m.skinCursor, m.session.Snapshot().Skin.ID)
	case screenScores:
		return m.scores.View()
	case screenGame:
		snap := m.session.Snapshot()
		DrawSnapshot(m.screen, snap, m.cues.MusicPlaying())
		return m.palette.RenderScreenOn(m.screen, SkyColor(snap.Blend))
	default:
		return renderMenu(m.palette, m.opts.Runtime.ScreenW, m.cursor, m.session.Snapshot())
	}
}

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// ErrNoTerminal is returned by Run when the terminal size is unknown.
var ErrNoTerminal = errors.New("tui: terminal size unknown")

// Run starts the Bubble Tea program for a local terminal.
func Run(opts Options) error {
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		return ErrNoTerminal
	}
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
