package domain

import "time"

// Participant is one live connection inside a room. The connection id is the
// transport-level handle; UserID/UserName are the application identity
// supplied at join and never validated here.
type Participant struct {
	ConnectionID  string
	UserID        string
	UserName      string
	IsHost        bool
	AudioEnabled  bool
	VideoEnabled  bool
	ScreenSharing bool
	HandRaised    bool
	HandRaisedAt  *time.Time
	JoinedAt      time.Time
}

func NewParticipant(connectionID, userID, userName string, isHost bool) *Participant {
	return &Participant{
		ConnectionID: connectionID,
		UserID:       userID,
		UserName:     userName,
		IsHost:       isHost,
		AudioEnabled: true,
		VideoEnabled: true,
		JoinedAt:     time.Now().UTC(),
	}
}

// ParticipantInfo is the public view of a participant carried in events and
// room snapshots.
type ParticipantInfo struct {
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

func (p *Participant) Info() ParticipantInfo {
	return ParticipantInfo{
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
	}
}
