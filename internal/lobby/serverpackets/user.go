package serverpackets

import (
	"strconv"

	"github.com/udisondev/ienet/internal/command"
)

// UserSnapshot lists one existing occupant to a user entering a channel.
// This is the only verb the client expects without a leading slash.
func UserSnapshot(username string) []byte {
	return command.Render("$user", []byte(username), []byte("0"))
}

// UserJoined announces a user arriving at a location. origin is the rendered
// previous location, empty on login.
func UserJoined(username string, versionIdx uint32, origin string) []byte {
	params := [][]byte{[]byte(username), strconv.AppendUint(nil, uint64(versionIdx), 10)}
	if origin != "" {
		params = append(params, []byte(origin))
	}
	return command.Render("/$user", params...)
}

// UserLeft announces a user leaving a location. destination is the rendered
// next location, empty on disconnect.
func UserLeft(username, destination string) []byte {
	params := [][]byte{[]byte(username)}
	if destination != "" {
		params = append(params, []byte(destination))
	}
	return command.Render("/&user", params...)
}
