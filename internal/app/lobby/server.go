package lobby

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"geopolitik/internal/pkg/errs"
	"geopolitik/internal/pkg/randx"
)

const (
	DefaultMaxPlayers  = 8
	DefaultGameSpeed   = 1.0
	DefaultVictoryType = "endless"

	minMaxPlayers = 2
	maxMaxPlayers = 32
)

var (
	gameSpeeds   = []float64{0.5, 1, 2}
	victoryTypes = []string{"endless", "score", "time"}
)

// CreateServerInput carries the optional settings of a new server. Nil fields take their defaults.
type CreateServerInput struct {
	Name        string   `json:"name"`
	IsPublic    *bool    `json:"isPublic"`
	MaxPlayers  *int     `json:"maxPlayers"`
	GameSpeed   *float64 `json:"gameSpeed"`
	VictoryType *string  `json:"victoryType"`
}

// CreateServer stores a new waiting server hosted by hostUserID.
func (s *Service) CreateServer(ctx context.Context, hostUserID string, in CreateServerInput) (*Server, *errs.CustomError) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.NewError(errs.ErrServerNameRequired)
	}

	srv := &Server{
		ID:           randx.ID(),
		Name:         name,
		HostUserID:   hostUserID,
		IsPublic:     true,
		MaxPlayers:   DefaultMaxPlayers,
		GameSpeed:    DefaultGameSpeed,
		VictoryType:  DefaultVictoryType,
		Status:       StatusWaiting,
		PlayersReady: []string{},
		CreatedAt:    s.timestamp(),
	}

	if in.IsPublic != nil {
		srv.IsPublic = *in.IsPublic
	}
	if in.MaxPlayers != nil {
		if *in.MaxPlayers < minMaxPlayers || *in.MaxPlayers > maxMaxPlayers {
			return nil, errs.NewError(errs.ErrServerSettingsInvalid, fmt.Sprintf("maxPlayers must be between %d and %d", minMaxPlayers, maxMaxPlayers))
		}
		srv.MaxPlayers = *in.MaxPlayers
	}
	if in.GameSpeed != nil {
		if !slices.Contains(gameSpeeds, *in.GameSpeed) {
			return nil, errs.NewError(errs.ErrServerSettingsInvalid, "gameSpeed must be 0.5, 1 or 2")
		}
		srv.GameSpeed = *in.GameSpeed
	}
	if in.VictoryType != nil {
		if !slices.Contains(victoryTypes, *in.VictoryType) {
			return nil, errs.NewError(errs.ErrServerSettingsInvalid, "victoryType must be endless, score or time")
		}
		srv.VictoryType = *in.VictoryType
	}

	if err := s.repo.InsertServer(ctx, srv); err != nil {
		return nil, errs.Internal(err)
	}

	s.logger.Info().Str("server_id", srv.ID).Str("host_id", hostUserID).Msg("Server created.")
	return srv, nil
}

// GetServer returns the server with the given id.
func (s *Service) GetServer(ctx context.Context, serverID string) (*Server, *errs.CustomError) {
	return s.loadServer(ctx, serverID)
}

// ListServers returns the servers hosted by hostUserID, newest first.
func (s *Service) ListServers(ctx context.Context, hostUserID string) ([]Server, *errs.CustomError) {
	list, err := s.repo.ListServersByHost(ctx, hostUserID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if list == nil {
		list = []Server{}
	}
	return list, nil
}

// StartGame moves a fully ready server to in-progress. Only the host may start,
// and only once: a racing second start fails with ErrGameAlreadyStarted.
func (s *Service) StartGame(ctx context.Context, serverID, userID string) (Status, *errs.CustomError) {
	srv, customErr := s.loadHostedServer(ctx, serverID, userID)
	if customErr != nil {
		return "", customErr
	}

	if srv.Status == StatusInProgress {
		return "", errs.NewError(errs.ErrGameAlreadyStarted)
	}

	humans, err := s.repo.HumanOwnerIDs(ctx, serverID)
	if err != nil {
		return "", errs.Internal(err)
	}
	if len(humans) == 0 {
		return "", errs.NewError(errs.ErrNoPlayers)
	}
	if !AllReady(humans, srv.PlayersReady) {
		return "", errs.NewError(errs.ErrNotAllReady)
	}

	started, err := s.repo.StartServer(ctx, serverID)
	if err != nil {
		return "", errs.Internal(err)
	}
	if !started {
		return "", errs.NewError(errs.ErrGameAlreadyStarted)
	}

	s.logger.Info().Str("server_id", serverID).Int("players", len(humans)).Msg("Game started.")
	return StatusInProgress, nil
}
