package broker

import (
	"log/slog"
	"strings"

	"github.com/udisondev/ienet/internal/lobby/serverpackets"
)

// Channel is a named chat room. Name preserves the case its first creator
// typed; lookups go through the lowercased key.
type Channel struct {
	Name string
}

// Location returns the canonical location value for this channel.
func (c *Channel) Location() Location {
	return ChannelLocation(c.Name)
}

// Channels indexes live channels by canonical (lowercased) name.
type Channels struct {
	byKey map[string]*Channel
}

// NewChannels создаёт пустой реестр каналов.
func NewChannels() *Channels {
	return &Channels{byKey: make(map[string]*Channel)}
}

// Count returns the number of live channels.
func (cs *Channels) Count() int {
	return len(cs.byKey)
}

// Get looks a channel up by name, case-insensitively.
func (cs *Channels) Get(name string) *Channel {
	return cs.byKey[strings.ToLower(name)]
}

// GetOrCreate returns the named channel, creating and announcing it first if
// needed.
func (cs *Channels) GetOrCreate(users *Users, name string) *Channel {
	key := strings.ToLower(name)
	if ch, ok := cs.byKey[key]; ok {
		return ch
	}
	slog.Info("creating new channel", "channel", name)
	ch := &Channel{Name: name}
	cs.byKey[key] = ch
	users.SendToAll(serverpackets.NewChannel(ch.Name))
	return ch
}

// Remove drops a channel and announces its removal.
func (cs *Channels) Remove(users *Users, name string) {
	key := strings.ToLower(name)
	ch, ok := cs.byKey[key]
	if !ok {
		return
	}
	slog.Info("removing channel", "channel", ch.Name)
	delete(cs.byKey, key)
	users.SendToAll(serverpackets.DropChannel(ch.Name))
}

// ReapEmpty removes every channel no user is located in.
func (cs *Channels) ReapEmpty(users *Users) {
	occupied := users.OccupiedLocations()
	for _, ch := range cs.byKey {
		if !occupied[ch.Location()] {
			cs.Remove(users, ch.Name)
		}
	}
}

// AnnounceAll sends the channel listing to a freshly logged-in user.
func (cs *Channels) AnnounceAll(u *User) {
	for _, ch := range cs.byKey {
		u.Send(serverpackets.NewChannel(ch.Name))
	}
}
