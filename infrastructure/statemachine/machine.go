// Package statemachine provides the statekit integration for session lifecycle.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/go-enclave/enclave/infrastructure/logging"
)

// Context carries session identity through the state machine.
type Context struct {
	SessionID string
}

// NewContext creates a new machine context for a session.
func NewContext(sessionID string) *Context {
	return &Context{SessionID: sessionID}
}

// State IDs for the session lifecycle.
const (
	StateLive   statekit.StateID = "live"
	StateClosed statekit.StateID = "closed"
)

// EventClose is the event that closes a live session.
const EventClose statekit.EventType = "CLOSE"

// NewSessionMachine builds the two-state live/closed session lifecycle.
//
// A session starts live, accepts CLOSE exactly once, and closed is final:
// there is no event that leaves it, matching the idempotent-Close and
// use-after-close invariants of the session it backs.
func NewSessionMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("session").
		WithInitial(StateLive).
		WithContext(&Context{}).
		WithAction("logEntry", logStateEntry).
		State(StateLive).
			OnEntry("logEntry").
			On(EventClose).Target(StateClosed).
			Done().
		State(StateClosed).
			Final().
			OnEntry("logEntry").
			Done().
		Build()
}

func logStateEntry(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	logging.Debug().
		Add(logging.SessionID((*ctx).SessionID)).
		Add(logging.Str("event", string(event.Type))).
		Msg("session state transition")
}
