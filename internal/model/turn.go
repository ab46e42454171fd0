package model

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one exchange unit in a session's conversation.
// Results is present only on assistant turns that carried query results;
// it is never set on a user turn.
type ConversationTurn struct {
	ID      int64         `json:"id"` // unique within the session, monotonically increasing
	Role    Role          `json:"role"`
	Text    string        `json:"text"`
	Results []ClaimRecord `json:"results,omitempty"`
}

// HasResults reports whether the turn carried a (possibly empty) result set.
func (t ConversationTurn) HasResults() bool {
	return t.Results != nil
}
