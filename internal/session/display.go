// Package session tracks what each browser currently displays.
package session

import (
	"errors"
	"sync"

	"github.com/alexivanou/geoweather/internal/model"
)

// ErrSuperseded is returned when a result arrives for a search that is no
// longer the latest one. The result must not be displayed.
var ErrSuperseded = errors.New("search superseded by a newer one")

// State of a display
type State int

const (
	Idle State = iota
	Loading
	Displayed
	Failed
)

var stateNames = map[State]string{
	Idle:      "idle",
	Loading:   "loading",
	Displayed: "displayed",
	Failed:    "error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Token identifies one search. Tokens increase monotonically per display.
type Token uint64

// View is a snapshot of a display. At most one of Panels and Error is set.
type View struct {
	State  State             `json:"state"`
	Token  Token             `json:"seq"`
	Query  string            `json:"query,omitempty"`
	Panels *model.Panels     `json:"panels,omitempty"`
	Error  *model.ErrorPanel `json:"error,omitempty"`
}

// Display is the state machine behind one result area:
//
//	Idle -> Loading -> Displayed
//	Idle -> Loading -> Failed -> Idle
//
// Begin moves any state to Loading. Only the latest token may complete.
type Display struct {
	mu     sync.Mutex
	seq    Token
	state  State
	query  string
	panels *model.Panels
	errMsg *model.ErrorPanel
}

// NewDisplay returns an idle display
func NewDisplay() *Display {
	return &Display{}
}

// Begin starts a new search and clears whatever was shown
func (d *Display) Begin(query string) Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	d.state = Loading
	d.query = query
	d.panels = nil
	d.errMsg = nil
	return d.seq
}

// Show displays panels for the search identified by tok
func (d *Display) Show(tok Token, panels *model.Panels) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if tok != d.seq || d.state != Loading {
		return ErrSuperseded
	}
	d.state = Displayed
	d.panels = panels
	return nil
}

// Fail displays the error panel for the search identified by tok
func (d *Display) Fail(tok Token, panel model.ErrorPanel) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if tok != d.seq || d.state != Loading {
		return ErrSuperseded
	}
	d.state = Failed
	d.errMsg = &panel
	return nil
}

// Dismiss returns a failed display to Idle once the error was shown.
// It is a no-op in any other state.
func (d *Display) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Failed {
		return
	}
	d.state = Idle
	d.errMsg = nil
}

// View returns a snapshot of the display
func (d *Display) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	return View{
		State:  d.state,
		Token:  d.seq,
		Query:  d.query,
		Panels: d.panels,
		Error:  d.errMsg,
	}
}
