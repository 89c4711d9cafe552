package serverpackets

import (
	"fmt"
	"net"

	"github.com/google/uuid"

	"github.com/udisondev/ienet/internal/command"
)

// CreateGame answers a host's game request with a server-minted invite GUID.
// The host is expected to confirm by repeating /plays with that GUID.
// Параметр "0xcb" — ещё одна непонятная константа оригинального сервиса.
func CreateGame(version uuid.UUID, name string, password []byte, invite uuid.UUID) []byte {
	return command.Render("/plays",
		[]byte(version.String()),
		[]byte(name),
		password,
		[]byte("0xcb"),
		[]byte(invite.String()),
	)
}

// JoinGame hands a joining client the host's address, in both the legacy
// little-endian hex form and dotted form, plus the invite GUID it must
// present to claim its slot.
func JoinGame(version uuid.UUID, name string, password []byte, hostIP net.IP, invite uuid.UUID) []byte {
	o := hostIP.To4()
	le := uint32(o[3])<<24 | uint32(o[2])<<16 | uint32(o[1])<<8 | uint32(o[0])
	return command.Render("/playc",
		[]byte(version.String()),
		[]byte(name),
		password,
		fmt.Appendf(nil, "0x%08x", le),
		[]byte(invite.String()),
		[]byte(o.String()),
	)
}

// NewGame advertises an open game to everyone.
func NewGame(name string, invite uuid.UUID) []byte {
	zero := []byte("0")
	return command.Render("/$play",
		[]byte(name), zero, zero, zero, []byte(invite.String()), zero)
}

// DropGame removes a game from every client's listing.
func DropGame(name string) []byte {
	return command.Render("/&play", []byte(name))
}
