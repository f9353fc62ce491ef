// README: Conversation turns recorded for every inbound message and outbound reply.
package conversation

import (
	"errors"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	ErrInvalidRole = errors.New("invalid conversation role")
	ErrUnavailable = errors.New("conversation store unavailable")
)

// Turn is one message in the log. An empty UserID marks an anonymous turn,
// which only an unfiltered clear removes.
type Turn struct {
	UserID    string    `json:"user_id,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Role      Role      `json:"role"`
}

func (r Role) valid() bool {
	return r == RoleUser || r == RoleAssistant
}
