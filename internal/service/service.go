package service

import "github.com/talentdesk/interview-signaling/internal/domain"

type SignalingInteractor interface {
	Dispatch(connID string, msg *domain.SignalMessage)
	JoinRoom(connID string, msg *domain.SignalMessage)
	LeaveRoom(connID, roomID string)
	RelaySignal(connID string, msg *domain.SignalMessage)
	MuteAll(connID, roomID string)
	RemoveParticipant(connID, roomID, targetConnID string)
	RaiseHand(connID, roomID string)
	LowerHand(connID, roomID string)
	ToggleAudio(connID, roomID string, enabled bool)
	ToggleVideo(connID, roomID string, enabled bool)
	StartScreenShare(connID, roomID string)
	StopScreenShare(connID, roomID string)
	HandleDisconnect(connID string)
	RoomInfo(roomID string) *domain.RoomInfo
}

// Transport is the connection abstraction the coordinator emits through.
// Sends are fire-and-forget: delivering to a connection that is gone is a
// no-op, never an error surfaced here.
type Transport interface {
	SendToConnection(connID, event string, payload any)
	SendToRoom(roomID, event string, payload any)
	SendToRoomExcept(roomID, exceptConnID, event string, payload any)
	JoinRoom(connID, roomID string)
	LeaveRoom(connID, roomID string)
}
