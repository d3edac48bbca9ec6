package event

// Kind is the category of a notification event.
type Kind string

const (
	// KindPermissionPrompt is sent when a tool needs permission.
	KindPermissionPrompt Kind = "permission_prompt"
	// KindIdlePrompt is sent when Claude is waiting for input.
	KindIdlePrompt Kind = "idle_prompt"
	// KindAuthSuccess is sent after a successful authentication.
	KindAuthSuccess Kind = "auth_success"
	// KindElicitationDialog is sent when an MCP server asks for input.
	KindElicitationDialog Kind = "elicitation_dialog"
	// KindUnknown covers every other value, including the empty one.
	KindUnknown Kind = ""
)

// DefaultTitle is the title used for unknown kinds.
const DefaultTitle = "Claude Code"

var titles = map[Kind]string{
	KindPermissionPrompt:  "🔐 Permission Needed",
	KindIdlePrompt:        "💬 Awaiting Input",
	KindAuthSuccess:       "✅ Auth Success",
	KindElicitationDialog: "📝 Input Required",
}

// ParseKind converts a raw notification type into a Kind.
func ParseKind(s string) Kind {
	k := Kind(s)
	if _, ok := titles[k]; ok {
		return k
	}
	return KindUnknown
}

// Title returns the human readable title for the kind.
func (k Kind) Title() string {
	if t, ok := titles[k]; ok {
		return t
	}
	return DefaultTitle
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == KindUnknown {
		return "unknown"
	}
	return string(k)
}
