package domain

import (
	"sync"
	"time"
)

const DefaultMaxParticipants = 10

// Room is the signaling-layer grouping of connections in one interview
// session. All field access happens under Mutex; creation and deletion of
// rooms is serialized separately by the registry.
type Room struct {
	Mutex                     sync.RWMutex
	ID                        string
	HostID                    string
	Participants              map[string]*Participant
	MaxParticipants           int
	ScreenSharingConnectionID string
	CreatedAt                 time.Time

	// Closed is set by the registry right before the room entry is dropped
	// so a join racing the deletion can detect the stale pointer and retry.
	Closed bool
}

// NewRoom constructs an empty room. Capacity is fixed here for the room's
// lifetime; non-positive values fall back to the default.
func NewRoom(id string, maxParticipants int) *Room {
	if maxParticipants <= 0 {
		maxParticipants = DefaultMaxParticipants
	}
	return &Room{
		ID:              id,
		Participants:    make(map[string]*Participant),
		MaxParticipants: maxParticipants,
		CreatedAt:       time.Now().UTC(),
	}
}

// ParticipantInfos returns the public view of every participant except the
// one with the given connection id. Callers must hold Mutex.
func (r *Room) ParticipantInfos(exclude string) []ParticipantInfo {
	infos := make([]ParticipantInfo, 0, len(r.Participants))
	for id, p := range r.Participants {
		if id == exclude {
			continue
		}
		infos = append(infos, p.Info())
	}
	return infos
}

// RoomInfo is a read-only snapshot served to dashboards and tests.
type RoomInfo struct {
	RoomID           string            `json:"roomId"`
	HostID           string            `json:"hostId"`
	ParticipantCount int               `json:"participantCount"`
	MaxParticipants  int               `json:"maxParticipants"`
	Participants     []ParticipantInfo `json:"participants"`
	CreatedAt        time.Time         `json:"createdAt"`
}

func (r *Room) Snapshot() *RoomInfo {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()

	return &RoomInfo{
		RoomID:           r.ID,
		HostID:           r.HostID,
		ParticipantCount: len(r.Participants),
		MaxParticipants:  r.MaxParticipants,
		Participants:     r.ParticipantInfos(""),
		CreatedAt:        r.CreatedAt,
	}
}
