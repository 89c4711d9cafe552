package serverpackets

import (
	"strconv"

	"github.com/udisondev/ienet/internal/command"
)

func num(v uint32) []byte {
	return strconv.AppendUint(nil, uint64(v), 10)
}

// SyncStats broadcasts the aggregate counters after they change. The fifth
// parameter is always "0" and the sixth always empty, as in the original
// service.
func SyncStats(usersTotal, usersOnline, channelsTotal, gamesTotal, gamesOpen uint32) []byte {
	return command.Render("/syncstats",
		num(usersTotal),
		num(usersOnline),
		num(channelsTotal),
		num(gamesTotal),
		[]byte("0"),
		nil,
		num(gamesOpen),
	)
}
