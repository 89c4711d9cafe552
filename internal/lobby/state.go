package lobby

// connState tracks a connection through the login handshake.
type connState int

const (
	// stateConnected: ждём Ident с версией игры.
	stateConnected connState = iota
	// stateGreeted: версия принята, ждём Login.
	stateGreeted
	// stateLoggedIn: пользователь передан брокеру, дальше только команды.
	stateLoggedIn
)

func (s connState) String() string {
	switch s {
	case stateConnected:
		return "CONNECTED"
	case stateGreeted:
		return "GREETED"
	case stateLoggedIn:
		return "LOGGED_IN"
	default:
		return "UNKNOWN"
	}
}
