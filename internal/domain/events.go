package domain

import (
	"time"

	"github.com/pion/webrtc/v3"
)

// Inbound event types.
const (
	EventJoinRoom          = "join-room"
	EventLeaveRoom         = "leave-room"
	EventOffer             = "offer"
	EventAnswer            = "answer"
	EventICECandidate      = "ice-candidate"
	EventMuteAll           = "mute-all"
	EventRemoveParticipant = "remove-participant"
	EventRaiseHand         = "raise-hand"
	EventLowerHand         = "lower-hand"
	EventToggleAudio       = "toggle-audio"
	EventToggleVideo       = "toggle-video"
	EventStartScreenShare  = "start-screen-share"
	EventStopScreenShare   = "stop-screen-share"
)

// Outbound event types.
const (
	EventRoomJoined          = "room-joined"
	EventUserJoined          = "user-joined"
	EventUserLeft            = "user-left"
	EventRoomFull            = "room-full"
	EventAllMuted            = "all-muted"
	EventActionRejected      = "action-rejected"
	EventRemovedFromRoom     = "removed-from-room"
	EventUserRemoved         = "user-removed"
	EventHandRaised          = "hand-raised"
	EventHandLowered         = "hand-lowered"
	EventAudioToggled        = "audio-toggled"
	EventVideoToggled        = "video-toggled"
	EventScreenShareStarted  = "screen-share-started"
	EventScreenShareStopped  = "screen-share-stopped"
	EventScreenShareRejected = "screen-share-rejected"
)

type RoomJoinedPayload struct {
	RoomID           string            `json:"roomId"`
	Participants     []ParticipantInfo `json:"participants"`
	ParticipantCount int               `json:"participantCount"`
	MaxParticipants  int               `json:"maxParticipants"`
	HostID           string            `json:"hostId"`
}

type UserJoinedPayload struct {
	ConnectionID     string `json:"connectionId"`
	UserID           string `json:"userId"`
	UserName         string `json:"userName"`
	ParticipantCount int    `json:"participantCount"`
}

type RoomFullPayload struct {
	RoomID          string `json:"roomId"`
	MaxParticipants int    `json:"maxParticipants"`
	CurrentCount    int    `json:"currentCount"`
}

type UserLeftPayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
}

type OfferPayload struct {
	FromConnectionID string                     `json:"fromConnectionId"`
	Offer            *webrtc.SessionDescription `json:"offer"`
}

type AnswerPayload struct {
	FromConnectionID string                     `json:"fromConnectionId"`
	Answer           *webrtc.SessionDescription `json:"answer"`
}

type CandidatePayload struct {
	FromConnectionID string                   `json:"fromConnectionId"`
	Candidate        *webrtc.ICECandidateInit `json:"candidate"`
}

type AllMutedPayload struct {
	ByUserID   string `json:"byUserId"`
	ByUserName string `json:"byUserName"`
}

type ActionRejectedPayload struct {
	Reason string `json:"reason"`
}

type RemovedFromRoomPayload struct {
	RoomID     string `json:"roomId"`
	ByUserID   string `json:"byUserId"`
	ByUserName string `json:"byUserName"`
	Reason     string `json:"reason"`
}

type UserRemovedPayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	ByUserID     string `json:"byUserId"`
}

type HandRaisedPayload struct {
	ConnectionID string    `json:"connectionId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	RaisedAt     time.Time `json:"raisedAt"`
}

type HandLoweredPayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
}

type AudioToggledPayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
	Enabled      bool   `json:"enabled"`
}

type VideoToggledPayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
	Enabled      bool   `json:"enabled"`
}

type ScreenSharePayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
}

type ScreenShareRejectedPayload struct {
	Reason string `json:"reason"`
}
