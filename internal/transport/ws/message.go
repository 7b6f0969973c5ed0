package ws

// ServerMessage is the outbound wire envelope: the event name plus its
// JSON-serializable payload.
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}
