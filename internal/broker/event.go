package broker

import (
	"net"

	"github.com/google/uuid"

	"github.com/udisondev/ienet/internal/command"
)

// Event is the broker's inbound vocabulary. Connection handlers submit
// events; nothing else ever reaches broker state.
type Event interface {
	isEvent()
}

// NewUser hands a freshly logged-in connection over to the broker. Send is
// the connection's outbound queue; the broker owns closing it from here on.
type NewUser struct {
	ID          uuid.UUID
	Username    string
	GameVersion uuid.UUID
	IP          net.IP
	Send        chan []byte
}

// Command carries one parsed command from a logged-in user.
type Command struct {
	ID  uuid.UUID
	Cmd command.ClientCommand
}

// DropClient is the reader's final word for a connection.
type DropClient struct {
	ID uuid.UUID
}

func (NewUser) isEvent()    {}
func (Command) isEvent()    {}
func (DropClient) isEvent() {}
