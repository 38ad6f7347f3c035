package handler

import (
	"net/http"

	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/req"
	"geopolitik/internal/pkg/resp"
)

// HandleCreateInvite mints an invite link token. Host only.
func HandleCreateInvite(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input ServerRefInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		token, customErr := deps.Lobby.IssueInvite(r.Context(), input.ServerID, identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondCreated(w, r, map[string]any{"token": token})
	}
}

// HandleAcceptInvite resolves an invite token to its server. No authentication required.
func HandleAcceptInvite(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, customErr := deps.Lobby.AcceptInvite(r.Context(), r.URL.Query().Get("token"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, info)
	}
}
