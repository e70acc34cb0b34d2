package domain

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message unit in the client transcript. Sources is set only on
// assistant turns produced from a successful answer; an error turn carries
// none.
type Turn struct {
	Role    Role     `json:"role"`
	Content string   `json:"content"`
	Sources []string `json:"sources,omitempty"`
}
