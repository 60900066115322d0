package signaling

import "sync"

// RoomDirectory maps room codes to their member lists. Rooms exist only
// while non-empty: the first Join for an unseen code creates the room, and
// the Leave that empties it deletes the entry in the same operation.
//
// Members are kept in join order so occupancy snapshots list peers the way
// they arrived.
type RoomDirectory struct {
	mu    sync.RWMutex
	rooms map[string][]*Client
}

func NewRoomDirectory() *RoomDirectory {
	return &RoomDirectory{rooms: make(map[string][]*Client)}
}

// Join adds the client to the room, creating the room if absent. Joining a
// room the client is already in is a no-op.
func (d *RoomDirectory) Join(code string, c *Client) {
	d.mu.Lock()
	defer d.mu.Unlock()

	members := d.rooms[code]
	for _, m := range members {
		if m == c {
			return
		}
	}
	d.rooms[code] = append(members, c)
}

// Leave removes the client from the room. Removing the last member deletes
// the room entry. Leaving a room the client is not in is a no-op, so
// disconnect cleanup and an explicit leave can overlap safely.
func (d *RoomDirectory) Leave(code string, c *Client) {
	d.mu.Lock()
	defer d.mu.Unlock()

	members, ok := d.rooms[code]
	if !ok {
		return
	}
	for i, m := range members {
		if m == c {
			members = append(members[:i], members[i+1:]...)
			break
		}
	}
	if len(members) == 0 {
		delete(d.rooms, code)
		return
	}
	d.rooms[code] = members
}

// Members returns a point-in-time snapshot of the room's member list, in
// join order. The snapshot does not alias directory state.
func (d *RoomDirectory) Members(code string) []*Client {
	d.mu.RLock()
	defer d.mu.RUnlock()

	members := d.rooms[code]
	if len(members) == 0 {
		return nil
	}
	out := make([]*Client, len(members))
	copy(out, members)
	return out
}

// Count reports the room's member count; zero means the room does not exist.
func (d *RoomDirectory) Count(code string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms[code])
}

// Len reports how many rooms currently exist.
func (d *RoomDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}
