package converter

import (
	"time"

	"github.com/talentdesk/interview-signaling/internal/domain"
)

type RoomInfoResponse struct {
	RoomID           string                `json:"roomId"`
	HostID           string                `json:"hostId"`
	ParticipantCount int                   `json:"participantCount"`
	MaxParticipants  int                   `json:"maxParticipants"`
	Participants     []ParticipantResponse `json:"participants"`
	CreatedAt        time.Time             `json:"createdAt"`
}

type ParticipantResponse struct {
	ConnectionID  string     `json:"connectionId"`
	UserID        string     `json:"userId"`
	UserName      string     `json:"userName"`
	IsHost        bool       `json:"isHost"`
	AudioEnabled  bool       `json:"audioEnabled"`
	VideoEnabled  bool       `json:"videoEnabled"`
	ScreenSharing bool       `json:"screenSharing"`
	HandRaised    bool       `json:"handRaised"`
	HandRaisedAt  *time.Time `json:"handRaisedAt,omitempty"`
	JoinedAt      time.Time  `json:"joinedAt"`
}

func RoomInfoToAPI(info *domain.RoomInfo) *RoomInfoResponse {
	participants := make([]ParticipantResponse, 0, len(info.Participants))
	for _, p := range info.Participants {
		participants = append(participants, ParticipantResponse{
			ConnectionID:  p.ConnectionID,
			UserID:        p.UserID,
			UserName:      p.UserName,
			IsHost:        p.IsHost,
			AudioEnabled:  p.AudioEnabled,
			VideoEnabled:  p.VideoEnabled,
			ScreenSharing: p.ScreenSharing,
			HandRaised:    p.HandRaised,
			HandRaisedAt:  p.HandRaisedAt,
			JoinedAt:      p.JoinedAt,
		})
	}

	return &RoomInfoResponse{
		RoomID:           info.RoomID,
		HostID:           info.HostID,
		ParticipantCount: info.ParticipantCount,
		MaxParticipants:  info.MaxParticipants,
		Participants:     participants,
		CreatedAt:        info.CreatedAt,
	}
}
