package lobby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/udisondev/ienet/internal/broker"
	"github.com/udisondev/ienet/internal/command"
	"github.com/udisondev/ienet/internal/lobby/serverpackets"
	"github.com/udisondev/ienet/internal/protocol"
)

const allowedUsernameChars = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_.|()[]{}"

const wrongVersionReason = "Wrong game version. Please install version 2.2"

// invalidUsernameReason is the translation key the client resolves itself.
const invalidUsernameReason = "translateInvalidCharactersInName"

func validUsername(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range []byte(name) {
		if !strings.ContainsRune(allowedUsernameChars, rune(c)) {
			return false
		}
	}
	return true
}

var errWriterClosed = errors.New("writer shut down")

// client is the per-connection state machine. The reader goroutine owns it;
// the writer goroutine only drains out.
type client struct {
	id             uuid.UUID
	conn           net.Conn
	ip             net.IP
	allowedVersion uuid.UUID
	events         chan<- broker.Event

	out        chan []byte
	writerDone chan struct{}

	state       connState
	gameVersion uuid.UUID
	loggedIn    bool
	received    []byte
}

func handleConnection(ctx context.Context, srv *Server, conn net.Conn, ip net.IP) {
	done := make(chan struct{})
	defer close(done)
	defer conn.Close()

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	c := &client{
		id:             uuid.New(),
		conn:           conn,
		ip:             ip,
		allowedVersion: srv.allowedVersion,
		events:         srv.events,
		out:            make(chan []byte, srv.cfg.ClientQueueSize),
		writerDone:     make(chan struct{}),
		state:          stateConnected,
	}

	slog.Info("new connection", "remote", ip, "id", c.id)

	go c.writeLoop()
	c.readLoop(ctx)

	// До логина очередь принадлежит соединению; после — брокеру.
	if !c.loggedIn {
		close(c.out)
	}
	select {
	case c.events <- broker.DropClient{ID: c.id}:
	case <-ctx.Done():
	}

	slog.Info("connection handler finished", "id", c.id)
}

func (c *client) readLoop(ctx context.Context) {
	readBuf := make([]byte, 1024)
	for {
		n, err := c.conn.Read(readBuf)
		if err != nil {
			slog.Info("client connection closed", "id", c.id, "reason", err)
			return
		}
		c.received = append(c.received, readBuf[:n]...)

		if err := c.processReceived(ctx); err != nil {
			if !errors.Is(err, errWriterClosed) && !errors.Is(err, context.Canceled) {
				slog.Warn("dropping client", "id", c.id, "state", c.state, "err", err)
			}
			return
		}
	}
}

// processReceived consumes every complete frame currently buffered. An error
// is terminal for the connection.
func (c *client) processReceived(ctx context.Context) error {
	for len(c.received) > 0 {
		switch c.state {
		case stateConnected, stateGreeted:
			payload, rest, err := protocol.DecodeFrame(c.received)
			if errors.Is(err, protocol.ErrIncomplete) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("decoding handshake frame: %w", err)
			}
			c.received = rest

			if c.state == stateConnected {
				err = c.handleIdent(payload)
			} else {
				err = c.handleLogin(ctx, payload)
			}
			if err != nil {
				return err
			}

		case stateLoggedIn:
			line, rest, err := protocol.DecodeLine(c.received)
			if errors.Is(err, protocol.ErrIncomplete) {
				return nil
			}
			if err != nil {
				return err
			}
			c.received = rest

			// Копия: буфер будет переписан следующим чтением, а команда
			// уходит в горутину брокера.
			cmd := command.Parse(slices.Clone(line))
			if _, ok := cmd.(command.NoOp); ok {
				continue
			}
			if err := c.submit(ctx, broker.Command{ID: c.id, Cmd: cmd}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *client) handleIdent(payload []byte) error {
	ident, err := protocol.ParseIdent(payload)
	if err != nil {
		return fmt.Errorf("parsing ident: %w", err)
	}

	if ident.GameVersion != c.allowedVersion {
		slog.Info("rejecting wrong game version",
			"id", c.id, "version", ident.GameVersion)
		frame, err := serverpackets.Reject(wrongVersionReason)
		if err != nil {
			return err
		}
		// Остаёмся в CONNECTED: клиент может прислать Ident ещё раз.
		return c.enqueue(frame)
	}

	frame, err := serverpackets.Ident()
	if err != nil {
		return err
	}
	if err := c.enqueue(frame); err != nil {
		return err
	}

	c.gameVersion = ident.GameVersion
	c.state = stateGreeted
	slog.Debug("ident accepted", "id", c.id, "language", string(ident.Language))
	return nil
}

func (c *client) handleLogin(ctx context.Context, payload []byte) error {
	login, err := protocol.ParseLogin(payload)
	if err != nil {
		return fmt.Errorf("parsing login: %w", err)
	}

	username := string(login.Username)
	if !validUsername(username) {
		slog.Info("rejecting invalid username", "id", c.id, "username", username)
		frame, err := serverpackets.Reject(invalidUsernameReason)
		if err != nil {
			return err
		}
		// Остаёмся в GREETED: клиент может выбрать другое имя.
		return c.enqueue(frame)
	}

	err = c.submit(ctx, broker.NewUser{
		ID:          c.id,
		Username:    username,
		GameVersion: c.gameVersion,
		IP:          c.ip,
		Send:        c.out,
	})
	if err != nil {
		return err
	}

	c.loggedIn = true
	c.state = stateLoggedIn
	slog.Info("login handed off to broker", "id", c.id, "username", username)
	return nil
}

// submit blocks on the broker's event queue; that back-pressure is what
// paces a chatty client.
func (c *client) submit(ctx context.Context, ev broker.Event) error {
	select {
	case c.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueue hands a handshake reply to the writer. Only valid before login;
// afterwards the broker is the sole producer on out.
func (c *client) enqueue(frame []byte) error {
	select {
	case c.out <- frame:
		return nil
	case <-c.writerDone:
		return errWriterClosed
	}
}

// writeLoop drains the outbound queue onto the socket. Closing the
// connection on exit is what unblocks the reader, whether the queue was
// closed by the broker or a write failed.
func (c *client) writeLoop() {
	defer close(c.writerDone)
	defer c.conn.Close()

	for frame := range c.out {
		slog.Debug("sending frame", "id", c.id, "size", len(frame))
		if _, err := c.conn.Write(frame); err != nil {
			slog.Warn("write failed, shutting down connection", "id", c.id, "err", err)
			return
		}
	}
	slog.Debug("writer finished", "id", c.id)
}
