package websocket

import "encoding/json"

// Event is a change notification for the dashboard. Type names which
// collection changed; the dashboard re-fetches rather than patching
// state from the payload.
type Event struct {
	Type         string `json:"type"` // "invitation.created", "invitation.updated", "invitation.deleted", "rsvp.created"
	InvitationID string `json:"invitation_id,omitempty"`
}

// Notify encodes and broadcasts an event to every connected client.
func (h *Hub) Notify(eventType, invitationID string) {
	data, err := json.Marshal(Event{Type: eventType, InvitationID: invitationID})
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- data:
	default:
		// Broadcast buffer full, drop the event. Clients poll on
		// reconnect anyway.
	}
}
