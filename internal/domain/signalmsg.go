package domain

import "github.com/pion/webrtc/v3"

// SignalMessage is the envelope for every inbound client event. The SDP and
// ICE payloads are typed for the wire but never inspected; the coordinator
// relays them verbatim.
type SignalMessage struct {
	Type               string                     `json:"type"`
	RoomID             string                     `json:"roomId,omitempty"`
	UserID             string                     `json:"userId,omitempty"`
	UserName           string                     `json:"userName,omitempty"`
	IsHost             bool                       `json:"isHost,omitempty"`
	MaxParticipants    int                        `json:"maxParticipants,omitempty"`
	TargetConnectionID string                     `json:"targetConnectionId,omitempty"`
	Enabled            bool                       `json:"enabled,omitempty"`
	Offer              *webrtc.SessionDescription `json:"offer,omitempty"`
	Answer             *webrtc.SessionDescription `json:"answer,omitempty"`
	Candidate          *webrtc.ICECandidateInit   `json:"candidate,omitempty"`
}
