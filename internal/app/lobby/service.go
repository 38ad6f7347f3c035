package lobby

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"geopolitik/internal/app/db"
	"geopolitik/internal/pkg/errs"
	"geopolitik/internal/pkg/logx"
)

// Service runs the lobby operations against a Repository.
type Service struct {
	repo   Repository
	secret string
	bots   *BotFactory
	now    func() time.Time
	logger zerolog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithBotFactory replaces the default randomly seeded bot generator.
func WithBotFactory(f *BotFactory) Option {
	return func(s *Service) { s.bots = f }
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs a Service. secret signs invite capabilities.
func NewService(repo Repository, secret string, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		secret: secret,
		now:    time.Now,
		logger: logx.Component("Lobby"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bots == nil {
		s.bots = NewBotFactory(nil)
	}
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// loadServer resolves serverID, mapping a blank id to a missing field and an absent record to ErrServerNotFound.
func (s *Service) loadServer(ctx context.Context, serverID string) (*Server, *errs.CustomError) {
	if serverID == "" {
		return nil, errs.NewError(errs.ErrMissingFields, "serverId")
	}

	srv, err := s.repo.GetServer(ctx, serverID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errs.NewError(errs.ErrServerNotFound)
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	return srv, nil
}

// loadHostedServer is loadServer plus the host-only check.
func (s *Service) loadHostedServer(ctx context.Context, serverID, userID string) (*Server, *errs.CustomError) {
	srv, customErr := s.loadServer(ctx, serverID)
	if customErr != nil {
		return nil, customErr
	}
	if !srv.IsHost(userID) {
		s.logger.Warn().Str("server_id", serverID).Str("user_id", userID).Msg("Host-only action rejected.")
		return nil, errs.NewError(errs.ErrNotHost)
	}
	return srv, nil
}
