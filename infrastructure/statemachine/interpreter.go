package statemachine

import (
	"github.com/felixgeelhaar/statekit"
)

// Interpreter wraps the statekit interpreter with session-lifecycle helpers.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the session state machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{interp: interp, ctx: ctx}
}

// Start enters the initial (live) state.
func (i *Interpreter) Start() {
	i.interp.Start()
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// Close sends the CLOSE event, transitioning live -> closed. It is safe to
// call more than once; closed is a final state and the second send is a
// no-op from the caller's point of view (IsClosed remains true).
func (i *Interpreter) Close() {
	if i.IsClosed() {
		return
	}
	i.interp.Send(statekit.Event{Type: EventClose})
}

// IsClosed reports whether the machine has reached the closed state.
func (i *Interpreter) IsClosed() bool {
	return i.interp.Matches(StateClosed)
}
