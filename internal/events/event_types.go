package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventLoggedOut         EventType = "logged_out"
	EventCredentialExpired EventType = "credential_expired"
	EventBackupDownloaded  EventType = "backup_downloaded"
	EventYearRolledOver    EventType = "year_rolled_over"
)

// Actor identifies who triggered an event, when known.
type Actor struct {
	UserID   domain.ID   `json:"user_id,omitempty"`
	Username string      `json:"username,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

// ActorFrom builds an Actor from a resolved identity.
func ActorFrom(id *domain.Identity) Actor {
	if id == nil {
		return Actor{}
	}
	return Actor{UserID: id.ID, Username: id.Username, Role: id.Role}
}

// Event represents something worth auditing.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ScopeID   string    `json:"scope_id,omitempty"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New stamps an event with an id and the current time.
func New(t EventType, scopeID string, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		ScopeID:   scopeID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// BackupDownloadedPayload payload.
type BackupDownloadedPayload struct {
	FileName  string `json:"file_name"`
	SizeBytes int    `json:"size_bytes"`
}
