package chat

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"geopolitik/internal/app/db"
	"geopolitik/internal/app/lobby"
	"geopolitik/internal/pkg/errs"
	"geopolitik/internal/pkg/logx"
	"geopolitik/internal/pkg/randx"
)

const (
	// MaxContentRunes is the longest message accepted, in characters.
	MaxContentRunes = 500

	// FetchLimit caps the messages returned by one poll.
	FetchLimit = 50
)

// ServerLookup resolves the server a message is posted to.
type ServerLookup interface {
	GetServer(ctx context.Context, id string) (*lobby.Server, error)
}

// Sender identifies the author of a message.
type Sender struct {
	ID   string
	Name string
}

// Service appends to and reads from server chat logs.
type Service struct {
	repo    Repository
	servers ServerLookup
	now     func() time.Time
	logger  zerolog.Logger
}

// NewService constructs a chat Service.
func NewService(repo Repository, servers ServerLookup) *Service {
	return &Service{
		repo:    repo,
		servers: servers,
		now:     time.Now,
		logger:  logx.Component("Chat"),
	}
}

// Send validates and appends a message to a server's log.
func (s *Service) Send(ctx context.Context, serverID string, from Sender, content string, msgType Type) (*Message, *errs.CustomError) {
	var missing []string
	if serverID == "" {
		missing = append(missing, "serverId")
	}
	if strings.TrimSpace(content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, errs.NewError(errs.ErrMissingFields, strings.Join(missing, ", "))
	}

	if msgType == "" {
		msgType = TypeMessage
	}
	if !msgType.Valid() {
		return nil, errs.NewError(errs.ErrMessageTypeInvalid)
	}
	if utf8.RuneCountInString(content) > MaxContentRunes {
		return nil, errs.NewError(errs.ErrMessageContentTooLong)
	}

	if _, err := s.servers.GetServer(ctx, serverID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, errs.NewError(errs.ErrServerNotFound)
		}
		return nil, errs.Internal(err)
	}

	msg := &Message{
		ID:        randx.ID(),
		ServerID:  serverID,
		UserID:    from.ID,
		Username:  from.Name,
		Content:   content,
		Type:      msgType,
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.InsertMessage(ctx, msg); err != nil {
		return nil, errs.Internal(err)
	}

	s.logger.Debug().Str("server_id", serverID).Str("user_id", from.ID).Str("type", string(msgType)).Msg("Message stored.")
	return msg, nil
}

// Fetch returns messages newer than the since cursor (RFC 3339), or the latest
// page when since is empty. At most FetchLimit messages are returned, oldest first.
func (s *Service) Fetch(ctx context.Context, serverID, since string) ([]Message, *errs.CustomError) {
	if serverID == "" {
		return nil, errs.NewError(errs.ErrMissingFields, "serverId")
	}

	var (
		list []Message
		err  error
	)
	if since == "" {
		list, err = s.repo.ListRecentMessages(ctx, serverID, FetchLimit)
	} else {
		cursor, parseErr := time.Parse(time.RFC3339Nano, since)
		if parseErr != nil {
			return nil, errs.NewError(errs.ErrInvalidCursor)
		}
		list, err = s.repo.ListMessagesSince(ctx, serverID, cursor.UTC(), FetchLimit)
	}
	if err != nil {
		return nil, errs.Internal(err)
	}

	if list == nil {
		list = []Message{}
	}
	return list, nil
}
