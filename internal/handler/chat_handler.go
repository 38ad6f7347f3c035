package handler

import (
	"net/http"

	"geopolitik/internal/app/chat"
	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/req"
	"geopolitik/internal/pkg/resp"
)

type SendMessageInput struct {
	ServerID string    `json:"serverId"`
	Content  string    `json:"content"`
	Type     chat.Type `json:"type"`
}

// HandleSendMessage appends a chat message or emoji to a server's log.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input SendMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		from := chat.Sender{ID: identity.ID, Name: identity.DisplayName()}
		msg, customErr := deps.Chat.Send(r.Context(), input.ServerID, from, input.Content, input.Type)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondCreated(w, r, map[string]any{"message": msg})
	}
}

// HandleFetchMessages returns messages newer than lastMessageTime, or the latest page.
func HandleFetchMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serverID, customErr := req.RequireQuery(r, "serverId")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		messages, customErr := deps.Chat.Fetch(r.Context(), serverID, r.URL.Query().Get("lastMessageTime"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, map[string]any{"messages": messages})
	}
}
