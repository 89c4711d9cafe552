package broker

import (
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/ienet/internal/guid"
	"github.com/udisondev/ienet/internal/lobby/serverpackets"
)

// RequestedGameTTL is how long a Requested game waits for its host's
// confirmation before it is reaped.
const RequestedGameTTL = 30 * time.Second

// GameStatus tracks a hosted game through its lifecycle.
type GameStatus uint8

const (
	// GameRequested: the host asked to create the game but has not yet
	// confirmed with the server-minted invite token.
	GameRequested GameStatus = iota
	// GameOpen: advertised and joinable.
	GameOpen
	// GameStarted: underway; clients drop it from their listings.
	GameStarted
)

// Game is a hosted match record. The server's job ends at handing joiners
// the host's address.
type Game struct {
	HostedBy    uuid.UUID
	HostIP      net.IP
	ID          uuid.UUID // invite token; zero until the host confirms
	GameVersion uuid.UUID
	Name        string
	Password    []byte
	Status      GameStatus

	// CreatedAt экспортируется, чтобы тесты могли состарить запись
	// вместо 30-секундного ожидания.
	CreatedAt time.Time
}

// Location returns the canonical location value for this game.
func (g *Game) Location() Location {
	return GameLocation(g.Name)
}

// Games indexes live games by canonical (lowercased) name.
type Games struct {
	byKey map[string]*Game
}

// NewGames создаёт пустой реестр игр.
func NewGames() *Games {
	return &Games{byKey: make(map[string]*Game)}
}

// Count returns the number of live games in any state.
func (gs *Games) Count() int {
	return len(gs.byKey)
}

// CountOpen returns the number of joinable games.
func (gs *Games) CountOpen() int {
	n := 0
	for _, g := range gs.byKey {
		if g.Status == GameOpen {
			n++
		}
	}
	return n
}

// Get looks a game up by name, case-insensitively.
func (gs *Games) Get(name string) *Game {
	return gs.byKey[strings.ToLower(name)]
}

// Create records a Requested game for user and answers with a fresh invite
// token. The stored token stays zero until the host echoes the minted one
// back.
func (gs *Games) Create(user *User, name string, password []byte) {
	slog.Info("game requested", "game", name, "host", user.Username)
	user.Send(serverpackets.CreateGame(user.GameVersion, name, password, uuid.New()))
	gs.byKey[strings.ToLower(name)] = &Game{
		HostedBy:    user.ID,
		HostIP:      user.IP,
		ID:          guid.Zero,
		GameVersion: user.GameVersion,
		Name:        name,
		Password:    password,
		Status:      GameRequested,
		CreatedAt:   time.Now(),
	}
}

// Open promotes a Requested game, stores its invite token and advertises it
// to everyone.
func (gs *Games) Open(users *Users, g *Game, invite uuid.UUID) {
	slog.Info("game is now open", "game", g.Name, "invite", invite)
	g.ID = invite
	g.Status = GameOpen
	users.SendToAll(serverpackets.NewGame(g.Name, g.ID))
}

// Start marks an Open game as underway and tells clients to drop it from
// their listings.
func (gs *Games) Start(users *Users, g *Game) {
	slog.Info("game has started", "game", g.Name)
	g.Status = GameStarted
	users.SendToAll(serverpackets.DropGame(g.Name))
}

// Remove drops a game record. Only Open games are announced on removal;
// Requested ones were never advertised and Started ones are already gone
// from every listing.
func (gs *Games) Remove(users *Users, name string) {
	key := strings.ToLower(name)
	g, ok := gs.byKey[key]
	if !ok {
		return
	}
	slog.Info("removing game", "game", g.Name)
	delete(gs.byKey, key)
	if g.Status == GameOpen {
		users.SendToAll(serverpackets.DropGame(g.Name))
	}
}

// ReapStale removes Requested games whose host never confirmed within
// RequestedGameTTL and any other game with no remaining occupants.
func (gs *Games) ReapStale(users *Users) {
	occupied := users.OccupiedLocations()
	for _, g := range gs.byKey {
		stale := false
		if g.Status == GameRequested {
			stale = time.Since(g.CreatedAt) > RequestedGameTTL
		} else {
			stale = !occupied[g.Location()]
		}
		if stale {
			gs.Remove(users, g.Name)
		}
	}
}

// AnnounceOpen sends the open-game listing to a freshly logged-in user.
func (gs *Games) AnnounceOpen(u *User) {
	for _, g := range gs.byKey {
		if g.Status == GameOpen {
			u.Send(serverpackets.NewGame(g.Name, g.ID))
		}
	}
}
