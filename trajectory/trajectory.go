package trajectory

import (
	"fmt"
	"strings"
)

// Trajectory is a root-first ordered sequence of entries describing one
// candidate solution path.
type Trajectory []Entry

// Last returns the final entry, or false on an empty trajectory.
func (t Trajectory) Last() (Entry, bool) {
	if len(t) == 0 {
		return Entry{}, false
	}
	return t[len(t)-1], true
}

// EndsWithAssistant reports whether the final entry is an
// assistant-authored answer. A trajectory ending in a tool result is a
// dangling tool call, not a terminal answer.
func (t Trajectory) EndsWithAssistant() bool {
	last, ok := t.Last()
	return ok && last.IsAssistant()
}

// String renders the trajectory as a plain-text transcript for prompt
// construction.
func (t Trajectory) String() string {
	var b strings.Builder
	for i, e := range t {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch e.Role {
		case RoleTool:
			fmt.Fprintf(&b, "tool[%s]: %s", e.ToolName, e.Content)
		default:
			fmt.Fprintf(&b, "%s: %s", e.Role, e.Content)
		}
		for _, call := range e.ToolCalls {
			fmt.Fprintf(&b, "\ncall[%s]: %s", call.Name, call.Arguments)
		}
	}
	return b.String()
}
