// Package lobby accepts game-client connections and drives each one through
// the Ident/Login handshake before handing it to the broker.
package lobby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/ienet/internal/broker"
	"github.com/udisondev/ienet/internal/config"
)

// Server is the TCP acceptor for game clients.
type Server struct {
	cfg            config.LobbyServer
	allowedVersion uuid.UUID
	events         chan<- broker.Event

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a lobby server submitting events to the given queue.
func NewServer(cfg config.LobbyServer, events chan<- broker.Event) (*Server, error) {
	allowed, err := cfg.AllowedVersion()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:            cfg,
		allowedVersion: allowed,
		events:         events,
	}, nil
}

// Addr возвращает адрес, на котором слушает сервер.
// Возвращает nil если сервер ещё не запущен.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close закрывает listener и останавливает сервер.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Run begins listening for client connections on the configured address.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr(), err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	return s.Serve(ctx, ln)
}

// Serve принимает готовый listener и запускает accept loop.
// Используется для тестирования с произвольным listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	wg.Go(func() {
		slog.Info("lobby server started", "address", ln.Addr())
		acceptLoop(ctx, &wg, s, ln)
	})

	wg.Wait()

	return nil
}

func acceptLoop(
	ctx context.Context,
	wg *sync.WaitGroup,
	srv *Server,
	ln net.Listener,
) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			conn, err := ln.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				slog.Error("failed to accept new connection", "error", err)
				continue
			}

			ip := peerIPv4(conn)
			if ip == nil {
				slog.Warn("refusing non-IPv4 peer", "remote", conn.RemoteAddr())
				conn.Close()
				continue
			}

			wg.Go(func() {
				handleConnection(ctx, srv, conn, ip)
			})
		}
	}
}

// peerIPv4 returns the peer's IPv4 address, or nil for anything the protocol
// cannot represent (the wire format has room for exactly four octets).
func peerIPv4(conn net.Conn) net.IP {
	addr, ok := conn.RemoteAddr().(*net.TCPAddr)
	if !ok {
		return nil
	}
	return addr.IP.To4()
}
