package contest

import (
	"sync"
	"time"

	"github.com/codeclash/backend/problemset"
)

// Registry is the table of live contest rooms. A single-process in-memory
// map backs single-instance deployments; a multi-instance deployment
// substitutes a backend over a shared store with conditional writes
// without changing the coordinator.
type Registry interface {
	Create(mode Mode, creator Participant, problems []problemset.Problem, now time.Time) (*Room, error)
	Get(id string) (*Room, bool)
	List(pred func(RoomView) bool) []RoomView
	Remove(id string)
}

// InMemRegistry keeps all live rooms in a process-local map. The map
// itself is guarded by an RWMutex; room contents are guarded by each
// room's own lock.
type InMemRegistry struct {
	lock  sync.RWMutex
	rooms map[string]*Room
}

func NewInMemRegistry() *InMemRegistry {
	return &InMemRegistry{
		rooms: make(map[string]*Room),
	}
}

func (reg *InMemRegistry) Create(mode Mode, creator Participant, problems []problemset.Problem, now time.Time) (*Room, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode()
	}

	room := newRoom(mode, creator, problems, now)

	reg.lock.Lock()
	defer reg.lock.Unlock()
	reg.rooms[room.ID] = room
	return room, nil
}

func (reg *InMemRegistry) Get(id string) (*Room, bool) {
	reg.lock.RLock()
	defer reg.lock.RUnlock()
	room, ok := reg.rooms[id]
	return room, ok
}

// List snapshots every room and returns the views matching pred. Working
// on snapshots keeps the per-room locks short and ordered before the
// table lock is released.
func (reg *InMemRegistry) List(pred func(RoomView) bool) []RoomView {
	reg.lock.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.lock.RUnlock()

	res := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		v := room.Snapshot()
		if pred(v) {
			res = append(res, v)
		}
	}
	return res
}

func (reg *InMemRegistry) Remove(id string) {
	reg.lock.Lock()
	defer reg.lock.Unlock()
	delete(reg.rooms, id)
}
