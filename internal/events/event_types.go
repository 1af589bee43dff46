package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberSignedUp  EventType = "member_signed_up"
	EventMemberLoggedIn  EventType = "member_logged_in"
	EventTokenReissued   EventType = "token_reissued"
	EventMemberLoggedOut EventType = "member_logged_out"
)

// Event represents an auth domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MemberID  string      `json:"member_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// MemberSignedUpPayload payload.
type MemberSignedUpPayload struct {
	MemberName string `json:"member_name"`
}

// TokenReissuedPayload payload.
type TokenReissuedPayload struct {
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
}
