package registry

import (
	"sync"

	"github.com/talentdesk/interview-signaling/internal/domain"
)

// Registry owns the map of active rooms. Its lock only guards the map
// structure (create/lookup/delete); everything inside a room is guarded by
// that room's own mutex.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

func New() *Registry {
	return &Registry{rooms: make(map[string]*domain.Room)}
}

// GetOrCreate returns the room with the given id, creating it on first use.
// Capacity applies only at creation and is ignored for an existing room.
// A returned room may still lose a race with RemoveIfEmpty; callers must
// re-check Closed under the room lock and call GetOrCreate again.
func (r *Registry) GetOrCreate(roomID string, maxParticipants int) *domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[roomID]; ok {
		return room
	}

	room := domain.NewRoom(roomID, maxParticipants)
	r.rooms[roomID] = room
	return room
}

func (r *Registry) Get(roomID string) *domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[roomID]
}

// RemoveIfEmpty drops the room entry once its participant map is empty.
// Lock order is registry then room; the Closed flag makes the deletion
// visible to a join already holding a stale room pointer.
func (r *Registry) RemoveIfEmpty(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return
	}

	room.Mutex.Lock()
	if len(room.Participants) == 0 {
		room.Closed = true
		delete(r.rooms, roomID)
	}
	room.Mutex.Unlock()
}

// Rooms returns a snapshot of the active rooms, used by the disconnect scan.
func (r *Registry) Rooms() []*domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
