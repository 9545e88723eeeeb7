package publishers

import (
	"time"

	"github.com/atomic-arch/ghusers/internal/domain"
)

// Event represents the payload published downstream.
type Event struct {
	Source      string      `json:"source"`
	User        domain.User `json:"user"`
	CollectedAt time.Time   `json:"collected_at"`
}

// NewEvent constructs an Event for a user collected from source.
func NewEvent(source string, user domain.User) Event {
	return Event{
		Source:      source,
		User:        user,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes are attached as message metadata by queue-style publishers.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"source": e.Source,
		"login":  e.User.Login,
	}
}
