// Package broker owns the global view of users, channels and hosted games.
// All state lives inside a single consumer goroutine; connection handlers
// talk to it exclusively through events and per-user outbound queues, so the
// whole package works without a single lock.
package broker

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/ienet/internal/command"
	"github.com/udisondev/ienet/internal/config"
	"github.com/udisondev/ienet/internal/lobby/serverpackets"
)

const (
	allowedChannelChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"
	allowedGameChars    = allowedChannelChars + "+.| "

	// sweepInterval paces the housekeeping tick that ages out Requested
	// games while no events arrive.
	sweepInterval = 5 * time.Second
)

func validName(name, allowed string) bool {
	if name == "" {
		return false
	}
	for _, c := range []byte(name) {
		if !strings.ContainsRune(allowed, rune(c)) {
			return false
		}
	}
	return true
}

// Broker is the single-writer state owner.
type Broker struct {
	cfg    config.LobbyServer
	events chan Event

	users    *Users
	channels *Channels
	games    *Games
	stats    Stats
}

// New creates a broker with an empty world.
func New(cfg config.LobbyServer) *Broker {
	return &Broker{
		cfg:      cfg,
		events:   make(chan Event, cfg.EventQueueSize),
		users:    NewUsers(),
		channels: NewChannels(),
		games:    NewGames(),
	}
}

// Events returns the inbound event queue. Submissions block when the queue
// is full, which rate-limits chatty clients to the broker's drain rate.
func (b *Broker) Events() chan<- Event {
	return b.events
}

// Run consumes events until ctx is cancelled or the event channel is closed.
// Это единственная горутина, которая когда-либо трогает состояние.
func (b *Broker) Run(ctx context.Context) error {
	slog.Info("broker starting")

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.shutdown()
			return nil
		case ev, ok := <-b.events:
			if !ok {
				b.shutdown()
				return nil
			}
			b.handleEvent(ev)
		case <-ticker.C:
			b.housekeeping()
		}
	}
}

func (b *Broker) shutdown() {
	slog.Info("broker shutting down", "users_online", b.users.Count())
	for _, u := range b.users.byID {
		close(u.send)
	}
}

func (b *Broker) handleEvent(ev Event) {
	switch ev := ev.(type) {
	case NewUser:
		b.handleNewUser(ev)
	case Command:
		b.handleCommand(ev.ID, ev.Cmd)
	case DropClient:
		b.dropClient(ev.ID)
	}
	b.housekeeping()
}

// housekeeping runs after every event and on the sweep tick: empty channels
// go away, stale games get reaped, stats are re-announced when they changed.
func (b *Broker) housekeeping() {
	b.channels.ReapEmpty(b.users)
	b.games.ReapStale(b.users)
	b.syncStats()
}

func (b *Broker) handleNewUser(ev NewUser) {
	if b.users.ByName(ev.Username) != nil {
		// Позднее поведение оригинала: молча рвём новое соединение.
		slog.Info("username already logged in, dropping new connection", "username", ev.Username)
		close(ev.Send)
		return
	}

	u := &User{
		ID:          ev.ID,
		Username:    ev.Username,
		GameVersion: ev.GameVersion,
		IP:          ev.IP,
		Location:    Nowhere,
		send:        ev.Send,
	}

	slog.Info("user logged in", "id", u.ID, "username", u.Username, "remote", u.IP)

	online := uint32(b.users.Count()) + 1
	welcome, err := serverpackets.Welcome(serverpackets.WelcomeParams{
		ServerIdent:    b.cfg.ServerIdent,
		WelcomeMessage: b.cfg.WelcomeMessage,
		UsersTotal:     online,
		UsersOnline:    online,
		ChannelsTotal:  uint32(b.channels.Count()),
		GamesTotal:     uint32(b.games.Count()),
		GamesAvailable: uint32(b.games.CountOpen()),
		GameVersions:   b.cfg.GameVersions,
		InitialChannel: b.cfg.DefaultChannel,
	})
	if err != nil {
		slog.Error("failed to build welcome packet", "err", err, "username", u.Username)
		close(ev.Send)
		return
	}
	u.Send(welcome)

	b.channels.AnnounceAll(u)
	b.games.AnnounceOpen(u)

	b.users.Insert(u)
	b.joinChannel(u, b.cfg.DefaultChannel)
}

func (b *Broker) handleCommand(id uuid.UUID, cmd command.ClientCommand) {
	u := b.users.ByID(id)
	if u == nil {
		slog.Info("received command for unknown client", "id", id)
		return
	}

	switch cmd := cmd.(type) {
	case command.Send:
		b.publicMessage(u, cmd.Message)
	case command.PrivateMsg:
		b.privateMessage(u, cmd.Target, cmd.Message)
	case command.Join:
		b.joinChannel(u, cmd.Channel)
	case command.HostGame:
		b.hostGame(u, cmd.Name, cmd.Password)
	case command.JoinGame:
		b.joinGame(u, cmd.Name, cmd.Password)
	case command.NoOp:
	case command.Malformed:
		u.Send(serverpackets.Error(cmd.Reason))
	case command.Unknown:
		u.Send(serverpackets.Error("Unknown command: " + cmd.Verb))
	}
}

func (b *Broker) publicMessage(u *User, message []byte) {
	b.users.SendToLocation(u.Location, serverpackets.PublicMessage(u.Username, message))
}

func (b *Broker) privateMessage(u *User, target string, message []byte) {
	switch {
	case strings.HasPrefix(target, "#"):
		ch := b.channels.Get(target[1:])
		if ch == nil {
			u.Send(serverpackets.Error("Channel does not exist"))
			return
		}
		to := "#" + ch.Name
		u.Send(serverpackets.PrivateMessageEcho(to, message))
		b.users.SendToLocation(ch.Location(),
			serverpackets.PrivateMessage(u.Location.String(), u.Username, to, message))

	case strings.HasPrefix(target, "$"):
		g := b.games.Get(target[1:])
		if g == nil {
			u.Send(serverpackets.Error("Game does not exist"))
			return
		}
		to := "$" + g.Name
		u.Send(serverpackets.PrivateMessageEcho(to, message))
		b.users.SendToLocation(g.Location(),
			serverpackets.PrivateMessage(u.Location.String(), u.Username, to, message))

	default:
		recipient := b.users.ByName(target)
		if recipient == nil {
			u.Send(serverpackets.Error("User does not exist"))
			return
		}
		u.Send(serverpackets.PrivateMessageEcho(recipient.Username, message))
		recipient.Send(serverpackets.PrivateMessage(
			u.Location.String(), u.Username, recipient.Username, message))
	}
}

func (b *Broker) joinChannel(u *User, name string) {
	if !validName(name, allowedChannelChars) {
		u.Send(serverpackets.Error("Invalid channel name"))
		return
	}

	ch := b.channels.GetOrCreate(b.users, name)
	if ch.Location() == u.Location {
		slog.Debug("user already in requested channel", "username", u.Username, "channel", ch.Name)
		return
	}

	u.Send(serverpackets.JoinChannel(ch.Name))
	for _, occupant := range b.users.InLocation(ch.Location()) {
		u.Send(serverpackets.UserSnapshot(occupant.Username))
	}

	b.users.Move(u, ch.Location())
}

func (b *Broker) hostGame(u *User, name string, passwordOrToken []byte) {
	if !validName(name, allowedGameChars) {
		u.Send(serverpackets.Error("Invalid game name"))
		return
	}

	g := b.games.Get(name)
	if g == nil {
		b.games.Create(u, name, passwordOrToken)
		return
	}

	token, err := uuid.Parse(string(passwordOrToken))
	if g.Status == GameStarted || g.HostedBy != u.ID || err != nil {
		u.Send(serverpackets.Error("Game already exists."))
		return
	}

	switch g.Status {
	case GameRequested:
		b.games.Open(b.users, g, token)
		b.users.Move(u, g.Location())
	case GameOpen:
		b.games.Start(b.users, g)
	}
}

func (b *Broker) joinGame(u *User, name string, password []byte) {
	g := b.games.Get(name)
	if g == nil {
		u.Send(serverpackets.Error("Game does not exist"))
		return
	}

	if token, err := uuid.Parse(string(password)); err == nil && token == g.ID {
		// Валидный invite token — клиент уже авторизован, просто сажаем его
		// в игру.
		slog.Info("user joined game", "username", u.Username, "game", g.Name)
		b.users.Move(u, g.Location())
		return
	}

	if bytes.Equal(password, g.Password) {
		u.Send(serverpackets.JoinGame(u.GameVersion, g.Name, password, g.HostIP, g.ID))
		return
	}

	u.Send(serverpackets.Error("Invalid password"))
}

func (b *Broker) dropClient(id uuid.UUID) {
	u := b.users.Remove(id)
	if u == nil {
		return
	}
	slog.Info("client disconnected, dropping", "id", id, "username", u.Username)
	close(u.send)
}
