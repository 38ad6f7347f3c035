package lobby

import (
	"context"
	"errors"
	"strings"

	"geopolitik/internal/app/db"
	"geopolitik/internal/pkg/errs"
	"geopolitik/internal/pkg/randx"
)

const (
	DefaultGovernmentType = "democracy"
	DefaultFlagColor      = "#16a34a"
)

// StartingResources is the template every human nation begins with.
var StartingResources = Resources{
	Population: 5_000_000,
	Treasury:   1_000_000,
	Food:       200_000,
	Oil:        50_000,
	GDP:        50_000_000,
	Military:   Military{Soldiers: 10000, Tanks: 50, Aircraft: 20},
}

// CreateNationInput is the player-chosen part of a new nation.
type CreateNationInput struct {
	ServerID       string `json:"serverId"`
	Name           string `json:"name"`
	GovernmentType string `json:"governmentType"`
	FlagColor      string `json:"flagColor"`
}

// CreateNation registers owner's nation in a server. An owner gets at most one nation per server.
func (s *Service) CreateNation(ctx context.Context, owner Owner, in CreateNationInput) (*Nation, *errs.CustomError) {
	name := strings.TrimSpace(in.Name)

	var missing []string
	if in.ServerID == "" {
		missing = append(missing, "serverId")
	}
	if name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return nil, errs.NewError(errs.ErrMissingFields, strings.Join(missing, ", "))
	}

	if in.FlagColor != "" && !randx.IsFlagColor(in.FlagColor) {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}

	if _, customErr := s.loadServer(ctx, in.ServerID); customErr != nil {
		return nil, customErr
	}

	_, err := s.repo.FindHumanNation(ctx, in.ServerID, owner.ID)
	switch {
	case err == nil:
		return nil, errs.NewError(errs.ErrNationExists)
	case !errors.Is(err, db.ErrNotFound):
		return nil, errs.Internal(err)
	}

	n := &Nation{
		ID:             randx.ID(),
		ServerID:       in.ServerID,
		OwnerID:        owner.ID,
		OwnerName:      owner.Name,
		Name:           name,
		GovernmentType: in.GovernmentType,
		FlagColor:      in.FlagColor,
		Data:           StartingResources,
		CreatedAt:      s.timestamp(),
	}
	if n.GovernmentType == "" {
		n.GovernmentType = DefaultGovernmentType
	}
	if n.FlagColor == "" {
		n.FlagColor = DefaultFlagColor
	}
	if n.OwnerName == "" {
		n.OwnerName = "Player"
	}

	if err := s.repo.InsertNation(ctx, n); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			s.logger.Warn().Str("server_id", in.ServerID).Str("owner_id", owner.ID).Msg("Concurrent nation creation lost the race.")
			return nil, errs.NewError(errs.ErrNationExists)
		}
		return nil, errs.Internal(err)
	}

	s.logger.Info().Str("server_id", in.ServerID).Str("nation_id", n.ID).Str("owner_id", owner.ID).Msg("Nation created.")
	return n, nil
}

// ListNations returns every nation of a server, bots included, oldest first.
func (s *Service) ListNations(ctx context.Context, serverID string) ([]Nation, *errs.CustomError) {
	if serverID == "" {
		return nil, errs.NewError(errs.ErrMissingFields, "serverId")
	}

	list, err := s.repo.ListNations(ctx, serverID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if list == nil {
		list = []Nation{}
	}
	return list, nil
}

// SpawnBot adds one stand-alone bot to a server. Host only.
func (s *Service) SpawnBot(ctx context.Context, serverID, userID string) (*Nation, *errs.CustomError) {
	if _, customErr := s.loadHostedServer(ctx, serverID, userID); customErr != nil {
		return nil, customErr
	}

	bot := s.bots.Single(serverID, s.timestamp())
	if err := s.repo.InsertNation(ctx, &bot); err != nil {
		return nil, errs.Internal(err)
	}

	s.logger.Info().Str("server_id", serverID).Str("nation_id", bot.ID).Msg("Bot spawned.")
	return &bot, nil
}

// PopulateBots tops the server up to the clamped target with tiered bots in one
// all-or-nothing batch, returning how many were added. A server already at or
// above the target is left untouched.
func (s *Service) PopulateBots(ctx context.Context, serverID, userID string, count int) (int, *errs.CustomError) {
	var missing []string
	if serverID == "" {
		missing = append(missing, "serverId")
	}
	if count == 0 {
		missing = append(missing, "count")
	}
	if len(missing) > 0 {
		return 0, errs.NewError(errs.ErrMissingFields, strings.Join(missing, ", "))
	}

	if _, customErr := s.loadHostedServer(ctx, serverID, userID); customErr != nil {
		return 0, customErr
	}

	target := ClampPopulation(count)
	current, err := s.repo.CountNations(ctx, serverID)
	if err != nil {
		return 0, errs.Internal(err)
	}

	toCreate := target - current
	if toCreate <= 0 {
		s.logger.Debug().Str("server_id", serverID).Int("current", current).Int("target", target).Msg("Server already populated.")
		return 0, nil
	}

	used, err := s.repo.NationNames(ctx, serverID)
	if err != nil {
		return 0, errs.Internal(err)
	}

	batch := s.bots.Batch(serverID, toCreate, used, s.timestamp())
	if err := s.repo.InsertNations(ctx, batch); err != nil {
		return 0, errs.Internal(err)
	}

	s.logger.Info().Str("server_id", serverID).Int("added", len(batch)).Int("target", target).Msg("Bots populated.")
	return len(batch), nil
}
