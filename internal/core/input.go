package core

// Action is a semantic input, decoupled from the key or button that caused it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // menu navigation
	ActionDown           // menu navigation
	ActionJump           // flap
	ActionConfirm        // select a menu entry
	ActionBack           // leave the game-over screen for the menu
	ActionRestart        // retry after game over
	ActionQuit           // exit
	ActionPause          // pause/unpause a run
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionJump:    "Jump",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame collects the actions triggered between two simulation ticks.
// The driver fills it from key events and drains it on the next tick.
// It is a plain value; copying a frame copies its actions.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || int(a) >= 32 {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && int(a) < 32 && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Actions returns the triggered actions in ascending order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionUp; int(a) < len(actionNames); a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Clear drops every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}
