/*
Package memory is a mutex-guarded in-process store. It backs development runs
and tests, and mirrors the uniqueness and atomicity guarantees of the database
backends.
*/
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"geopolitik/internal/app/chat"
	"geopolitik/internal/app/db"
	"geopolitik/internal/app/lobby"
	"geopolitik/internal/app/user"
)

// Store holds every record in maps keyed by id. Reads return copies.
type Store struct {
	mu       sync.RWMutex
	users    map[string]user.User
	emails   map[string]string
	servers  map[string]lobby.Server
	nations  map[string][]lobby.Nation
	messages map[string][]chat.Message
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:    make(map[string]user.User),
		emails:   make(map[string]string),
		servers:  make(map[string]lobby.Server),
		nations:  make(map[string][]lobby.Nation),
		messages: make(map[string][]chat.Message),
	}
}

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }

// --- users ---

func (s *Store) CreateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, ok := s.emails[email]; ok {
		return db.ErrDuplicate
	}
	s.users[u.ID] = *u
	s.emails[email] = u.ID
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, db.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &u, nil
}

func (s *Store) UpdateUserProfile(_ context.Context, id, name, avatar string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	u.Name = name
	u.Avatar = avatar
	s.users[id] = u
	return &u, nil
}

// --- servers ---

func copyServer(srv lobby.Server) *lobby.Server {
	srv.PlayersReady = slices.Clone(srv.PlayersReady)
	if srv.PlayersReady == nil {
		srv.PlayersReady = []string{}
	}
	return &srv
}

func (s *Store) InsertServer(_ context.Context, srv *lobby.Server) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.servers[srv.ID]; ok {
		return db.ErrDuplicate
	}
	s.servers[srv.ID] = *copyServer(*srv)
	return nil
}

func (s *Store) GetServer(_ context.Context, id string) (*lobby.Server, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	srv, ok := s.servers[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return copyServer(srv), nil
}

func (s *Store) ListServersByHost(_ context.Context, hostUserID string) ([]lobby.Server, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]lobby.Server, 0)
	for _, srv := range s.servers {
		if srv.HostUserID == hostUserID {
			list = append(list, *copyServer(srv))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (s *Store) ToggleReady(_ context.Context, serverID, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	srv, ok := s.servers[serverID]
	if !ok {
		return nil, db.ErrNotFound
	}

	if i := slices.Index(srv.PlayersReady, userID); i >= 0 {
		srv.PlayersReady = slices.Delete(slices.Clone(srv.PlayersReady), i, i+1)
	} else {
		srv.PlayersReady = append(slices.Clone(srv.PlayersReady), userID)
	}
	s.servers[serverID] = srv
	return slices.Clone(srv.PlayersReady), nil
}

func (s *Store) SetReadyStatus(_ context.Context, serverID string, status lobby.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	srv, ok := s.servers[serverID]
	if !ok {
		return db.ErrNotFound
	}
	if srv.Status.InLobby() {
		srv.Status = status
		s.servers[serverID] = srv
	}
	return nil
}

func (s *Store) StartServer(_ context.Context, serverID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	srv, ok := s.servers[serverID]
	if !ok {
		return false, db.ErrNotFound
	}
	if srv.Status == lobby.StatusInProgress {
		return false, nil
	}
	srv.Status = lobby.StatusInProgress
	s.servers[serverID] = srv
	return true, nil
}

// --- nations ---

func (s *Store) hasHumanNation(serverID, ownerID string) bool {
	for _, n := range s.nations[serverID] {
		if !n.IsBot() && n.OwnerID == ownerID {
			return true
		}
	}
	return false
}

func (s *Store) InsertNation(_ context.Context, n *lobby.Nation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !n.IsBot() && s.hasHumanNation(n.ServerID, n.OwnerID) {
		return db.ErrDuplicate
	}
	s.nations[n.ServerID] = append(s.nations[n.ServerID], *n)
	return nil
}

func (s *Store) InsertNations(_ context.Context, nations []lobby.Nation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[[2]string]struct{})
	for _, n := range nations {
		if n.IsBot() {
			continue
		}
		key := [2]string{n.ServerID, n.OwnerID}
		if _, dup := seen[key]; dup || s.hasHumanNation(n.ServerID, n.OwnerID) {
			return db.ErrDuplicate
		}
		seen[key] = struct{}{}
	}

	for _, n := range nations {
		s.nations[n.ServerID] = append(s.nations[n.ServerID], n)
	}
	return nil
}

func (s *Store) FindHumanNation(_ context.Context, serverID, ownerID string) (*lobby.Nation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.nations[serverID] {
		if !n.IsBot() && n.OwnerID == ownerID {
			return &n, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *Store) ListNations(_ context.Context, serverID string) ([]lobby.Nation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.nations[serverID]), nil
}

func (s *Store) CountNations(_ context.Context, serverID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.nations[serverID]), nil
}

func (s *Store) HumanOwnerIDs(_ context.Context, serverID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for _, n := range s.nations[serverID] {
		if !n.IsBot() && !slices.Contains(ids, n.OwnerID) {
			ids = append(ids, n.OwnerID)
		}
	}
	return ids, nil
}

func (s *Store) NationNames(_ context.Context, serverID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.nations[serverID]))
	for _, n := range s.nations[serverID] {
		names = append(names, n.Name)
	}
	return names, nil
}

// --- chat ---

func (s *Store) InsertMessage(_ context.Context, m *chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[m.ServerID] = append(s.messages[m.ServerID], *m)
	return nil
}

// sortedMessages returns a copy of the server's log ordered by timestamp. Callers hold s.mu.
func (s *Store) sortedMessages(serverID string) []chat.Message {
	list := slices.Clone(s.messages[serverID])
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.Before(list[j].Timestamp)
	})
	return list
}

func (s *Store) ListMessagesSince(_ context.Context, serverID string, since time.Time, limit int) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]chat.Message, 0)
	for _, m := range s.sortedMessages(serverID) {
		if !m.Timestamp.After(since) {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) ListRecentMessages(_ context.Context, serverID string, limit int) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.sortedMessages(serverID)
	if len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list, nil
}
