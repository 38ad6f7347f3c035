package lobby

import (
	"context"
	"errors"

	"geopolitik/internal/app/db"
	"geopolitik/internal/pkg/errs"
)

// AllReady reports whether every human owner is in the ready set.
// It is vacuously true for an empty roster.
func AllReady(humans, ready []string) bool {
	set := make(map[string]struct{}, len(ready))
	for _, id := range ready {
		set[id] = struct{}{}
	}
	for _, id := range humans {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

// DeriveStatus maps aggregate readiness onto the lobby status.
func DeriveStatus(allReady bool) Status {
	if allReady {
		return StatusReady
	}
	return StatusWaiting
}

// ToggleReady flips userID's membership in the server's ready set and recomputes readiness.
func (s *Service) ToggleReady(ctx context.Context, serverID, userID string) (*Readiness, *errs.CustomError) {
	srv, customErr := s.loadServer(ctx, serverID)
	if customErr != nil {
		return nil, customErr
	}

	ready, err := s.repo.ToggleReady(ctx, serverID, userID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errs.NewError(errs.ErrServerNotFound)
	}
	if err != nil {
		return nil, errs.Internal(err)
	}

	humans, err := s.repo.HumanOwnerIDs(ctx, serverID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	allReady := AllReady(humans, ready)
	status := srv.Status
	if status.InLobby() {
		status = DeriveStatus(allReady)
		if err := s.repo.SetReadyStatus(ctx, serverID, status); err != nil {
			return nil, errs.Internal(err)
		}
	}

	s.logger.Debug().
		Str("server_id", serverID).
		Str("user_id", userID).
		Int("ready", len(ready)).
		Int("humans", len(humans)).
		Bool("all_ready", allReady).
		Msg("Ready toggled.")

	return &Readiness{PlayersReady: nonNil(ready), Status: status, AllReady: allReady}, nil
}

// GetReadiness reports the stored status with freshly computed readiness.
func (s *Service) GetReadiness(ctx context.Context, serverID string) (*Readiness, *errs.CustomError) {
	srv, customErr := s.loadServer(ctx, serverID)
	if customErr != nil {
		return nil, customErr
	}

	humans, err := s.repo.HumanOwnerIDs(ctx, serverID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	return &Readiness{
		PlayersReady: nonNil(srv.PlayersReady),
		Status:       srv.Status,
		AllReady:     AllReady(humans, srv.PlayersReady),
	}, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
