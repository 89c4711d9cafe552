package serverpackets

import "github.com/udisondev/ienet/internal/command"

// NewChannel announces a freshly created channel to everyone.
// Второй параметр всегда "0"; его смысл неизвестен.
func NewChannel(name string) []byte {
	return command.Render("/$channel", []byte(name), []byte("0"))
}

// DropChannel announces that an emptied channel was removed.
func DropChannel(name string) []byte {
	return command.Render("/&channel", []byte(name))
}

// JoinChannel acknowledges a channel switch to the joining user.
func JoinChannel(name string) []byte {
	return command.Render("/join", []byte(name))
}
