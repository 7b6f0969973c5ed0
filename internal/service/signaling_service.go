package service

import (
	"log/slog"
	"time"

	"github.com/talentdesk/interview-signaling/internal/domain"
	"github.com/talentdesk/interview-signaling/internal/registry"
)

const (
	reasonNotInRoom      = "You are not in this room"
	reasonMuteHostOnly   = "Only the host can mute all participants"
	reasonRemoveHostOnly = "Only the host can remove participants"
	reasonAlreadySharing = "Someone else is already sharing their screen"
	reasonRemovedByHost  = "Removed by host"
)

// SignalingService coordinates room membership, host-only commands, presence
// signals and WebRTC negotiation relay. Every mutation of a single room runs
// under that room's mutex; rooms are independent of each other.
type SignalingService struct {
	rooms      *registry.Registry
	transport  Transport
	log        *slog.Logger
	defaultCap int
}

func NewSignalingService(rooms *registry.Registry, transport Transport, log *slog.Logger, defaultCap int) *SignalingService {
	if log == nil {
		log = slog.Default()
	}
	if defaultCap <= 0 {
		defaultCap = domain.DefaultMaxParticipants
	}
	return &SignalingService{
		rooms:      rooms,
		transport:  transport,
		log:        log,
		defaultCap: defaultCap,
	}
}

// Dispatch routes one inbound event to its handler. Unknown event types are
// logged and dropped; a malformed message never affects more than one room.
func (s *SignalingService) Dispatch(connID string, msg *domain.SignalMessage) {
	if msg == nil {
		return
	}

	switch msg.Type {
	case domain.EventJoinRoom:
		s.JoinRoom(connID, msg)
	case domain.EventLeaveRoom:
		s.LeaveRoom(connID, msg.RoomID)
	case domain.EventOffer, domain.EventAnswer, domain.EventICECandidate:
		s.RelaySignal(connID, msg)
	case domain.EventMuteAll:
		s.MuteAll(connID, msg.RoomID)
	case domain.EventRemoveParticipant:
		s.RemoveParticipant(connID, msg.RoomID, msg.TargetConnectionID)
	case domain.EventRaiseHand:
		s.RaiseHand(connID, msg.RoomID)
	case domain.EventLowerHand:
		s.LowerHand(connID, msg.RoomID)
	case domain.EventToggleAudio:
		s.ToggleAudio(connID, msg.RoomID, msg.Enabled)
	case domain.EventToggleVideo:
		s.ToggleVideo(connID, msg.RoomID, msg.Enabled)
	case domain.EventStartScreenShare:
		s.StartScreenShare(connID, msg.RoomID)
	case domain.EventStopScreenShare:
		s.StopScreenShare(connID, msg.RoomID)
	default:
		s.log.Debug("unsupported signal type",
			slog.String("type", msg.Type),
			slog.String("conn_id", connID),
		)
	}
}

// JoinRoom admits a connection into a room, creating the room on first join.
// The host identity is fixed by the first joiner carrying isHost and never
// changes afterwards.
func (s *SignalingService) JoinRoom(connID string, msg *domain.SignalMessage) {
	const op = "service.signaling.join"
	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", msg.RoomID),
		slog.String("conn_id", connID),
	)

	if msg.RoomID == "" {
		return
	}

	maxParticipants := msg.MaxParticipants
	if maxParticipants <= 0 {
		maxParticipants = s.defaultCap
	}

	for {
		room := s.rooms.GetOrCreate(msg.RoomID, maxParticipants)

		room.Mutex.Lock()
		if room.Closed {
			// Lost a race with RemoveIfEmpty; the entry is gone from the
			// registry, so create a fresh one.
			room.Mutex.Unlock()
			continue
		}

		if room.HostID == "" && msg.IsHost {
			room.HostID = msg.UserID
		}

		if len(room.Participants) >= room.MaxParticipants {
			full := domain.RoomFullPayload{
				RoomID:          room.ID,
				MaxParticipants: room.MaxParticipants,
				CurrentCount:    len(room.Participants),
			}
			room.Mutex.Unlock()

			s.transport.SendToConnection(connID, domain.EventRoomFull, full)
			log.Info("join rejected, room full",
				slog.Int("max_participants", full.MaxParticipants),
			)
			return
		}

		// Host status follows the room's fixed host identity, not the flag on
		// this particular join; a late isHost claim in a hosted room is ignored.
		isHost := room.HostID != "" && msg.UserID == room.HostID
		participant := domain.NewParticipant(connID, msg.UserID, msg.UserName, isHost)
		room.Participants[connID] = participant

		joined := domain.UserJoinedPayload{
			ConnectionID:     connID,
			UserID:           participant.UserID,
			UserName:         participant.UserName,
			ParticipantCount: len(room.Participants),
		}
		welcome := domain.RoomJoinedPayload{
			RoomID:           room.ID,
			Participants:     room.ParticipantInfos(connID),
			ParticipantCount: len(room.Participants),
			MaxParticipants:  room.MaxParticipants,
			HostID:           room.HostID,
		}
		room.Mutex.Unlock()

		s.transport.JoinRoom(connID, room.ID)
		s.transport.SendToRoomExcept(room.ID, connID, domain.EventUserJoined, joined)
		s.transport.SendToConnection(connID, domain.EventRoomJoined, welcome)

		log.Info("participant joined",
			slog.String("user_id", participant.UserID),
			slog.Int("participants", welcome.ParticipantCount),
			slog.Int("max_participants", welcome.MaxParticipants),
		)
		return
	}
}

// LeaveRoom removes a connection from a room. Unknown rooms and unknown
// participants are silent no-ops, which makes duplicate leaves idempotent.
func (s *SignalingService) LeaveRoom(connID, roomID string) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}
	s.removeFromRoom(room, connID)
}

// removeFromRoom is the shared leave sequence used by explicit leaves and
// the disconnect scan.
func (s *SignalingService) removeFromRoom(room *domain.Room, connID string) {
	room.Mutex.Lock()
	participant, ok := room.Participants[connID]
	if !ok {
		room.Mutex.Unlock()
		return
	}

	delete(room.Participants, connID)
	if room.ScreenSharingConnectionID == connID {
		room.ScreenSharingConnectionID = ""
	}
	room.Mutex.Unlock()

	s.transport.LeaveRoom(connID, room.ID)
	s.transport.SendToRoomExcept(room.ID, connID, domain.EventUserLeft, domain.UserLeftPayload{
		ConnectionID: connID,
		UserID:       participant.UserID,
	})
	s.rooms.RemoveIfEmpty(room.ID)

	s.log.Info("participant left",
		slog.String("op", "service.signaling.leave"),
		slog.String("room_id", room.ID),
		slog.String("conn_id", connID),
		slog.String("user_id", participant.UserID),
	)
}

// RelaySignal forwards an offer, answer or ICE candidate verbatim to the
// target connection. Payload contents are never validated here; an
// unreachable target is the transport's silent no-op.
func (s *SignalingService) RelaySignal(connID string, msg *domain.SignalMessage) {
	if msg.TargetConnectionID == "" {
		return
	}

	switch msg.Type {
	case domain.EventOffer:
		s.transport.SendToConnection(msg.TargetConnectionID, domain.EventOffer, domain.OfferPayload{
			FromConnectionID: connID,
			Offer:            msg.Offer,
		})
	case domain.EventAnswer:
		s.transport.SendToConnection(msg.TargetConnectionID, domain.EventAnswer, domain.AnswerPayload{
			FromConnectionID: connID,
			Answer:           msg.Answer,
		})
	case domain.EventICECandidate:
		s.transport.SendToConnection(msg.TargetConnectionID, domain.EventICECandidate, domain.CandidatePayload{
			FromConnectionID: connID,
			Candidate:        msg.Candidate,
		})
	}

	s.log.Debug("signal relayed",
		slog.String("type", msg.Type),
		slog.String("room_id", msg.RoomID),
		slog.String("from", connID),
		slog.String("to", msg.TargetConnectionID),
	)
}

// authorizeHost runs the shared validation ladder for host-only commands.
// It returns the requester when all checks pass; the room must already be
// locked by the caller.
func (s *SignalingService) authorizeHost(room *domain.Room, connID, rejectReason string) *domain.Participant {
	requester, ok := room.Participants[connID]
	if !ok {
		s.transport.SendToConnection(connID, domain.EventActionRejected, domain.ActionRejectedPayload{
			Reason: reasonNotInRoom,
		})
		return nil
	}

	if requester.UserID != room.HostID {
		s.transport.SendToConnection(connID, domain.EventActionRejected, domain.ActionRejectedPayload{
			Reason: rejectReason,
		})
		return nil
	}

	return requester
}

// MuteAll mutes every participant except the host. The host's own audio is
// untouched, and re-running the command is idempotent.
func (s *SignalingService) MuteAll(connID, roomID string) {
	const op = "service.signaling.muteAll"

	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Mutex.Lock()
	requester := s.authorizeHost(room, connID, reasonMuteHostOnly)
	if requester == nil {
		room.Mutex.Unlock()
		return
	}

	for _, p := range room.Participants {
		if p.IsHost {
			continue
		}
		p.AudioEnabled = false
	}
	muted := domain.AllMutedPayload{
		ByUserID:   requester.UserID,
		ByUserName: requester.UserName,
	}
	room.Mutex.Unlock()

	s.transport.SendToRoom(roomID, domain.EventAllMuted, muted)
	s.log.Info("all participants muted",
		slog.String("op", op),
		slog.String("room_id", roomID),
		slog.String("by_user_id", muted.ByUserID),
	)
}

// RemoveParticipant ejects the target connection from the room. A target
// that already left is a silent no-op; that is an ordinary race, not an
// error.
func (s *SignalingService) RemoveParticipant(connID, roomID, targetConnID string) {
	const op = "service.signaling.removeParticipant"

	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Mutex.Lock()
	requester := s.authorizeHost(room, connID, reasonRemoveHostOnly)
	if requester == nil {
		room.Mutex.Unlock()
		return
	}

	target, ok := room.Participants[targetConnID]
	if !ok {
		room.Mutex.Unlock()
		return
	}

	delete(room.Participants, targetConnID)
	if room.ScreenSharingConnectionID == targetConnID {
		room.ScreenSharingConnectionID = ""
	}
	room.Mutex.Unlock()

	s.transport.SendToConnection(targetConnID, domain.EventRemovedFromRoom, domain.RemovedFromRoomPayload{
		RoomID:     roomID,
		ByUserID:   requester.UserID,
		ByUserName: requester.UserName,
		Reason:     reasonRemovedByHost,
	})
	s.transport.LeaveRoom(targetConnID, roomID)
	s.transport.SendToRoomExcept(roomID, targetConnID, domain.EventUserRemoved, domain.UserRemovedPayload{
		ConnectionID: targetConnID,
		UserID:       target.UserID,
		UserName:     target.UserName,
		ByUserID:     requester.UserID,
	})
	s.rooms.RemoveIfEmpty(roomID)

	s.log.Info("participant removed by host",
		slog.String("op", op),
		slog.String("room_id", roomID),
		slog.String("target_user_id", target.UserID),
		slog.String("by_user_id", requester.UserID),
	)
}

// RaiseHand marks the requesting participant's hand as raised and tells the
// whole room. No authority check: anyone may raise their own hand.
func (s *SignalingService) RaiseHand(connID, roomID string) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Mutex.Lock()
	participant, ok := room.Participants[connID]
	if !ok {
		room.Mutex.Unlock()
		return
	}

	now := time.Now().UTC()
	participant.HandRaised = true
	participant.HandRaisedAt = &now
	raised := domain.HandRaisedPayload{
		ConnectionID: connID,
		UserID:       participant.UserID,
		UserName:     participant.UserName,
		RaisedAt:     now,
	}
	room.Mutex.Unlock()

	s.transport.SendToRoom(roomID, domain.EventHandRaised, raised)
}

// LowerHand clears the raised-hand state and tells the whole room.
func (s *SignalingService) LowerHand(connID, roomID string) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Mutex.Lock()
	participant, ok := room.Participants[connID]
	if !ok {
		room.Mutex.Unlock()
		return
	}

	participant.HandRaised = false
	participant.HandRaisedAt = nil
	lowered := domain.HandLoweredPayload{
		ConnectionID: connID,
		UserID:       participant.UserID,
		UserName:     participant.UserName,
	}
	room.Mutex.Unlock()

	s.transport.SendToRoom(roomID, domain.EventHandLowered, lowered)
}

// ToggleAudio records the participant's own audio state and broadcasts it.
func (s *SignalingService) ToggleAudio(connID, roomID string, enabled bool) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Mutex.Lock()
	participant, ok := room.Participants[connID]
	if !ok {
		room.Mutex.Unlock()
		return
	}

	participant.AudioEnabled = enabled
	toggled := domain.AudioToggledPayload{
		ConnectionID: connID,
		UserID:       participant.UserID,
		Enabled:      enabled,
	}
	room.Mutex.Unlock()

	s.transport.SendToRoom(roomID, domain.EventAudioToggled, toggled)
}

// ToggleVideo records the participant's own video state and broadcasts it.
func (s *SignalingService) ToggleVideo(connID, roomID string, enabled bool) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Mutex.Lock()
	participant, ok := room.Participants[connID]
	if !ok {
		room.Mutex.Unlock()
		return
	}

	participant.VideoEnabled = enabled
	toggled := domain.VideoToggledPayload{
		ConnectionID: connID,
		UserID:       participant.UserID,
		Enabled:      enabled,
	}
	room.Mutex.Unlock()

	s.transport.SendToRoom(roomID, domain.EventVideoToggled, toggled)
}

// StartScreenShare grants the room's single screen-share slot. A different
// connection already holding the slot gets the request rejected; the current
// holder re-requesting is an idempotent success.
func (s *SignalingService) StartScreenShare(connID, roomID string) {
	const op = "service.signaling.startScreenShare"

	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Mutex.Lock()
	participant, ok := room.Participants[connID]
	if !ok {
		room.Mutex.Unlock()
		return
	}

	if room.ScreenSharingConnectionID != "" && room.ScreenSharingConnectionID != connID {
		room.Mutex.Unlock()
		s.transport.SendToConnection(connID, domain.EventScreenShareRejected, domain.ScreenShareRejectedPayload{
			Reason: reasonAlreadySharing,
		})
		s.log.Info("screen share rejected",
			slog.String("op", op),
			slog.String("room_id", roomID),
			slog.String("conn_id", connID),
		)
		return
	}

	room.ScreenSharingConnectionID = connID
	participant.ScreenSharing = true
	started := domain.ScreenSharePayload{
		ConnectionID: connID,
		UserID:       participant.UserID,
		UserName:     participant.UserName,
	}
	room.Mutex.Unlock()

	s.transport.SendToRoom(roomID, domain.EventScreenShareStarted, started)
}

// StopScreenShare releases the screen-share slot held by the requester.
// This is the only explicit path that admits a new sharer; leave, removal
// and disconnect release the slot implicitly.
func (s *SignalingService) StopScreenShare(connID, roomID string) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Mutex.Lock()
	participant, ok := room.Participants[connID]
	if !ok {
		room.Mutex.Unlock()
		return
	}

	participant.ScreenSharing = false
	if room.ScreenSharingConnectionID == connID {
		room.ScreenSharingConnectionID = ""
	}
	stopped := domain.ScreenSharePayload{
		ConnectionID: connID,
		UserID:       participant.UserID,
		UserName:     participant.UserName,
	}
	room.Mutex.Unlock()

	s.transport.SendToRoom(roomID, domain.EventScreenShareStopped, stopped)
}

// HandleDisconnect runs the leave sequence in every room that still holds
// the lost connection. A connection that never joined anything is fine.
func (s *SignalingService) HandleDisconnect(connID string) {
	for _, room := range s.rooms.Rooms() {
		s.removeFromRoom(room, connID)
	}

	s.log.Debug("connection disconnected",
		slog.String("op", "service.signaling.disconnect"),
		slog.String("conn_id", connID),
	)
}

// RoomInfo returns a read-only snapshot of a room, or nil when the room does
// not exist.
func (s *SignalingService) RoomInfo(roomID string) *domain.RoomInfo {
	room := s.rooms.Get(roomID)
	if room == nil {
		return nil
	}
	return room.Snapshot()
}
