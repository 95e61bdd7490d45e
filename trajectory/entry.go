package trajectory

// Role identifies the author of an entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a tool invocation requested by an assistant entry.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON arguments as produced by the model
}

// Entry is one turn in a trajectory: an assistant action, a tool
// result, or a synthesized user message.
type Entry struct {
	Role      Role
	Content   string
	ToolCalls []ToolCall // assistant entries only
	ToolID    string     // tool entries only: the ToolCall.ID answered
	ToolName  string     // tool entries only
}

func User(content string) Entry {
	return Entry{Role: RoleUser, Content: content}
}

func Assistant(content string, calls ...ToolCall) Entry {
	return Entry{Role: RoleAssistant, Content: content, ToolCalls: calls}
}

// ToolResult pairs a tool call with its output content. Failed calls
// carry the error payload as content.
func ToolResult(call ToolCall, content string) Entry {
	return Entry{Role: RoleTool, Content: content, ToolID: call.ID, ToolName: call.Name}
}

func (e Entry) IsAssistant() bool {
	return e.Role == RoleAssistant
}
