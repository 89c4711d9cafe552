package broker

import (
	"log/slog"
	"net"
	"strings"

	"github.com/google/uuid"

	"github.com/udisondev/ienet/internal/lobby/serverpackets"
)

// User is a logged-in client as the broker sees it. Only the broker goroutine
// touches users; the send channel is the single concurrency-safe edge.
type User struct {
	ID          uuid.UUID
	Username    string
	GameVersion uuid.UUID
	IP          net.IP
	Location    Location

	send chan<- []byte
}

// Send enqueues a wire frame for the user's writer. A full queue means the
// client stopped draining; the frame is dropped so fan-out never stalls, and
// the reader's eventual DropClient cleans the user up.
func (u *User) Send(frame []byte) {
	select {
	case u.send <- frame:
	default:
		slog.Warn("outbound queue full, dropping frame", "username", u.Username)
	}
}

// Users indexes live users by id and by lowercased username.
type Users struct {
	byID   map[uuid.UUID]*User
	byName map[string]uuid.UUID
}

// NewUsers создаёт пустой реестр пользователей.
func NewUsers() *Users {
	return &Users{
		byID:   make(map[uuid.UUID]*User),
		byName: make(map[string]uuid.UUID),
	}
}

// Count returns the number of live users.
func (us *Users) Count() int {
	return len(us.byID)
}

// ByID looks a user up by connection id.
func (us *Users) ByID(id uuid.UUID) *User {
	return us.byID[id]
}

// ByName looks a user up by username, case-insensitively.
func (us *Users) ByName(username string) *User {
	id, ok := us.byName[strings.ToLower(username)]
	if !ok {
		return nil
	}
	return us.byID[id]
}

// InLocation returns every user currently at loc.
func (us *Users) InLocation(loc Location) []*User {
	var found []*User
	for _, u := range us.byID {
		if u.Location == loc {
			found = append(found, u)
		}
	}
	return found
}

// CountIn returns the number of users at loc.
func (us *Users) CountIn(loc Location) int {
	n := 0
	for _, u := range us.byID {
		if u.Location == loc {
			n++
		}
	}
	return n
}

// OccupiedLocations returns the set of locations with at least one user.
func (us *Users) OccupiedLocations() map[Location]bool {
	occupied := make(map[Location]bool, len(us.byID))
	for _, u := range us.byID {
		occupied[u.Location] = true
	}
	return occupied
}

// SendToAll fans a frame out to every user.
func (us *Users) SendToAll(frame []byte) {
	for _, u := range us.byID {
		u.Send(frame)
	}
}

// SendToLocation fans a frame out to every user at loc.
func (us *Users) SendToLocation(loc Location, frame []byte) {
	for _, u := range us.byID {
		if u.Location == loc {
			u.Send(frame)
		}
	}
}

// Insert registers a user and announces the arrival at their location.
func (us *Users) Insert(u *User) {
	us.SendToLocation(u.Location, serverpackets.UserJoined(u.Username, 0, ""))
	us.byName[strings.ToLower(u.Username)] = u.ID
	us.byID[u.ID] = u
}

// Move is the location-update primitive: users at the new location learn of
// the arrival (with the origin), users at the old one of the departure (with
// the destination), and the new location is persisted. Сам перемещаемый не
// получает ни одного из этих сообщений.
func (us *Users) Move(u *User, next Location) {
	prev := u.Location
	if prev == next {
		return
	}
	delete(us.byID, u.ID)

	origin := ""
	if !prev.IsNowhere() {
		origin = prev.String()
	}
	us.SendToLocation(next, serverpackets.UserJoined(u.Username, 0, origin))

	destination := ""
	if !next.IsNowhere() {
		destination = next.String()
	}
	us.SendToLocation(prev, serverpackets.UserLeft(u.Username, destination))

	u.Location = next
	us.byID[u.ID] = u
}

// Remove unregisters a user and tells their location they left for good.
// Returns the removed user, or nil if the id was not present.
func (us *Users) Remove(id uuid.UUID) *User {
	u, ok := us.byID[id]
	if !ok {
		return nil
	}
	delete(us.byID, id)
	delete(us.byName, strings.ToLower(u.Username))
	us.SendToLocation(u.Location, serverpackets.UserLeft(u.Username, ""))
	return u
}
