/*
Package lobby implements the game-server coordination core: server lifecycle,
the nation registry with bot population, the readiness coordinator and invite
capabilities.

Every operation is a single stateless call over a Repository. Aggregate
readiness is never stored as a count; it is recomputed from the server's ready
set and the current roster of human-owned nations on each call.
*/
package lobby

import (
	"context"
	"time"
)

// BotOwnerID is the owner id shared by every computer-controlled nation.
const BotOwnerID = "BOT"

// Status is the lifecycle state of a game server.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusReady      Status = "ready"
	StatusInProgress Status = "in-progress"
	StatusFinished   Status = "finished"
)

// InLobby reports whether the server has not started yet, so readiness may still rewrite its status.
func (s Status) InLobby() bool {
	return s == StatusWaiting || s == StatusReady
}

// Server is a game session hosting many nations.
type Server struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	HostUserID   string    `json:"hostUserId" bson:"hostUserId"`
	IsPublic     bool      `json:"isPublic" bson:"isPublic"`
	MaxPlayers   int       `json:"maxPlayers" bson:"maxPlayers"`
	GameSpeed    float64   `json:"gameSpeed" bson:"gameSpeed"`
	VictoryType  string    `json:"victoryType" bson:"victoryType"`
	Status       Status    `json:"status" bson:"status"`
	PlayersReady []string  `json:"playersReady" bson:"playersReady"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// IsHost reports whether userID created the server.
func (s *Server) IsHost(userID string) bool {
	return userID != "" && s.HostUserID == userID
}

// Military is a nation's standing forces.
type Military struct {
	Soldiers int64 `json:"soldiers" bson:"soldiers"`
	Tanks    int64 `json:"tanks" bson:"tanks"`
	Aircraft int64 `json:"aircraft" bson:"aircraft"`
}

// Resources is a nation's economic and military state.
type Resources struct {
	Population int64    `json:"population" bson:"population"`
	Treasury   int64    `json:"treasury" bson:"treasury"`
	Food       int64    `json:"food" bson:"food"`
	Oil        int64    `json:"oil" bson:"oil"`
	GDP        int64    `json:"gdp" bson:"gdp"`
	Military   Military `json:"military" bson:"military"`
}

// Nation is a player's or a bot's entity inside one server.
type Nation struct {
	ID             string    `json:"id" bson:"_id"`
	ServerID       string    `json:"serverId" bson:"serverId"`
	OwnerID        string    `json:"ownerId" bson:"ownerId"`
	OwnerName      string    `json:"ownerName" bson:"ownerName"`
	Name           string    `json:"name" bson:"name"`
	GovernmentType string    `json:"governmentType" bson:"governmentType"`
	FlagColor      string    `json:"flagColor" bson:"flagColor"`
	Tier           string    `json:"tier,omitempty" bson:"tier,omitempty"`
	Data           Resources `json:"data" bson:"data"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// IsBot reports whether the nation is computer-controlled.
func (n *Nation) IsBot() bool {
	return n.OwnerID == BotOwnerID
}

// Readiness is the coordinator's view of a server.
type Readiness struct {
	PlayersReady []string `json:"playersReady"`
	Status       Status   `json:"status"`
	AllReady     bool     `json:"allReady"`
}

// InviteInfo is what an invite reveals about its server.
type InviteInfo struct {
	ServerID string `json:"serverId"`
	Name     string `json:"name"`
}

// Owner identifies the human creating a nation.
type Owner struct {
	ID   string
	Name string
}

// Repository is the storage contract of the lobby core. Each method is atomic
// on a single record; nothing here relies on multi-record transactions except
// InsertNations, which must insert all rows or none.
//
// Lookups return db.ErrNotFound when the record is absent. InsertNation returns
// db.ErrDuplicate when the owner already has a human nation in the server.
type Repository interface {
	InsertServer(ctx context.Context, s *Server) error
	GetServer(ctx context.Context, id string) (*Server, error)
	ListServersByHost(ctx context.Context, hostUserID string) ([]Server, error)

	// ToggleReady removes userID from the ready set when present and appends it
	// otherwise, in one atomic update, returning the resulting set.
	ToggleReady(ctx context.Context, serverID, userID string) ([]string, error)

	// SetReadyStatus stores a derived waiting/ready status, only while the
	// server is still waiting or ready.
	SetReadyStatus(ctx context.Context, serverID string, status Status) error

	// StartServer moves the server to in-progress. It reports false when the
	// server was already in progress.
	StartServer(ctx context.Context, serverID string) (bool, error)

	InsertNation(ctx context.Context, n *Nation) error
	InsertNations(ctx context.Context, nations []Nation) error
	FindHumanNation(ctx context.Context, serverID, ownerID string) (*Nation, error)
	ListNations(ctx context.Context, serverID string) ([]Nation, error)
	CountNations(ctx context.Context, serverID string) (int, error)

	// HumanOwnerIDs returns the distinct non-bot owner ids of the server's nations.
	HumanOwnerIDs(ctx context.Context, serverID string) ([]string, error)
	NationNames(ctx context.Context, serverID string) ([]string, error)
}
