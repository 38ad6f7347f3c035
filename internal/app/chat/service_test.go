package chat_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"geopolitik/internal/app/chat"
	"geopolitik/internal/app/lobby"
	"geopolitik/internal/app/store/memory"
	"geopolitik/internal/pkg/errs"
)

func setup(t *testing.T) (*chat.Service, string) {
	t.Helper()
	store := memory.New()
	srv := &lobby.Server{ID: "s1", Name: "Atlas", HostUserID: "host", Status: lobby.StatusWaiting}
	if err := store.InsertServer(context.Background(), srv); err != nil {
		t.Fatal(err)
	}
	return chat.NewService(store, store), srv.ID
}

func TestSendValidation(t *testing.T) {
	svc, serverID := setup(t)
	ctx := context.Background()
	from := chat.Sender{ID: "u1", Name: "Alice"}

	tests := []struct {
		name     string
		serverID string
		content  string
		msgType  chat.Type
		code     int
	}{
		{"missing server", "", "hi", chat.TypeMessage, errs.ErrMissingFields},
		{"blank content", serverID, "   ", chat.TypeMessage, errs.ErrMissingFields},
		{"bad type", serverID, "hi", "shout", errs.ErrMessageTypeInvalid},
		{"too long", serverID, strings.Repeat("é", chat.MaxContentRunes+1), chat.TypeMessage, errs.ErrMessageContentTooLong},
		{"unknown server", "nope", "hi", chat.TypeMessage, errs.ErrServerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, customErr := svc.Send(ctx, tt.serverID, from, tt.content, tt.msgType)
			if customErr == nil || customErr.Code != tt.code {
				t.Fatalf("Send() = %v, want code %d", customErr, tt.code)
			}
		})
	}

	msg, customErr := svc.Send(ctx, serverID, from, strings.Repeat("é", chat.MaxContentRunes), "")
	if customErr != nil {
		t.Fatalf("Send at limit: %v", customErr)
	}
	if msg.Type != chat.TypeMessage || msg.Username != "Alice" || msg.Timestamp.IsZero() {
		t.Fatalf("stored message = %+v", msg)
	}
}

func TestFetch(t *testing.T) {
	svc, serverID := setup(t)
	ctx := context.Background()
	from := chat.Sender{ID: "u1", Name: "Alice"}

	for range 55 {
		if _, customErr := svc.Send(ctx, serverID, from, "🙂", chat.TypeEmoji); customErr != nil {
			t.Fatal(customErr)
		}
		time.Sleep(2 * time.Millisecond)
	}

	latest, customErr := svc.Fetch(ctx, serverID, "")
	if customErr != nil || len(latest) != chat.FetchLimit {
		t.Fatalf("Fetch() = %d messages, %v", len(latest), customErr)
	}
	for i := 1; i < len(latest); i++ {
		if latest[i].Timestamp.Before(latest[i-1].Timestamp) {
			t.Fatal("messages not in ascending order")
		}
	}

	cursor := latest[len(latest)-3].Timestamp.Format(time.RFC3339Nano)
	tail, customErr := svc.Fetch(ctx, serverID, cursor)
	if customErr != nil || len(tail) != 2 {
		t.Fatalf("Fetch(since) = %d messages, %v; want 2", len(tail), customErr)
	}

	none, _ := svc.Fetch(ctx, serverID, latest[len(latest)-1].Timestamp.Format(time.RFC3339Nano))
	if len(none) != 0 {
		t.Fatalf("Fetch(newest) = %d messages, want 0", len(none))
	}

	if _, customErr := svc.Fetch(ctx, serverID, "yesterday"); customErr == nil || customErr.Code != errs.ErrInvalidCursor {
		t.Fatalf("bad cursor err = %v", customErr)
	}
	if _, customErr := svc.Fetch(ctx, "", ""); customErr == nil || customErr.Code != errs.ErrMissingFields {
		t.Fatalf("missing server err = %v", customErr)
	}
}
