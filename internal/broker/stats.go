package broker

import "github.com/udisondev/ienet/internal/lobby/serverpackets"

// Stats is the aggregate snapshot recomputed after every event. Без
// постоянного хранилища "всего пользователей" совпадает с "онлайн".
type Stats struct {
	UsersTotal    uint32
	UsersOnline   uint32
	ChannelsTotal uint32
	GamesTotal    uint32
	GamesOpen     uint32
}

func (b *Broker) currentStats() Stats {
	online := uint32(b.users.Count())
	return Stats{
		UsersTotal:    online,
		UsersOnline:   online,
		ChannelsTotal: uint32(b.channels.Count()),
		GamesTotal:    uint32(b.games.Count()),
		GamesOpen:     uint32(b.games.CountOpen()),
	}
}

// syncStats broadcasts the counters, but only when something changed since
// the last broadcast.
func (b *Broker) syncStats() {
	stats := b.currentStats()
	if stats == b.stats {
		return
	}
	b.stats = stats
	b.users.SendToAll(serverpackets.SyncStats(
		stats.UsersTotal,
		stats.UsersOnline,
		stats.ChannelsTotal,
		stats.GamesTotal,
		stats.GamesOpen,
	))
}
