package lobby

import (
	"context"

	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/errs"
)

// IssueInvite mints a reusable invite capability for a server. Host only.
func (s *Service) IssueInvite(ctx context.Context, serverID, userID string) (string, *errs.CustomError) {
	if _, customErr := s.loadHostedServer(ctx, serverID, userID); customErr != nil {
		return "", customErr
	}

	token, err := jwt.GenerateInvite(serverID, s.secret, jwt.InviteExpiration)
	if err != nil {
		return "", errs.Internal(err)
	}

	s.logger.Info().Str("server_id", serverID).Msg("Invite issued.")
	return token, nil
}

// AcceptInvite resolves an invite capability to the server it names. It has no side effects.
func (s *Service) AcceptInvite(ctx context.Context, token string) (*InviteInfo, *errs.CustomError) {
	if token == "" {
		return nil, errs.NewError(errs.ErrMissingFields, "token")
	}

	serverID, err := jwt.ParseInvite(token, s.secret)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Invite rejected.")
		return nil, errs.NewError(errs.ErrInviteInvalid)
	}

	srv, customErr := s.loadServer(ctx, serverID)
	if customErr != nil {
		return nil, customErr
	}
	return &InviteInfo{ServerID: srv.ID, Name: srv.Name}, nil
}
