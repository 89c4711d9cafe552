package serverpackets

import "github.com/udisondev/ienet/internal/command"

// PublicMessage is a chat line delivered to everyone at the sender's
// location.
func PublicMessage(username string, message []byte) []byte {
	return command.Render("/send", []byte(username), message)
}

// PrivateMessage delivers a direct message; location is the sender's
// rendered location at the time of sending.
func PrivateMessage(location, from, to string, message []byte) []byte {
	return command.Render("/msg", []byte(location), []byte(from), []byte(to), message)
}

// PrivateMessageEcho confirms a sent private message back to its author.
func PrivateMessageEcho(to string, message []byte) []byte {
	return command.Render("/msgc", []byte(to), message)
}

// Error reports a failed command back to its originator.
func Error(reason string) []byte {
	return command.Render("/error", []byte(reason))
}
