package handler

import (
	"net/http"

	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/req"
	"geopolitik/internal/pkg/resp"
)

// HandleToggleReady flips the caller's ready flag in a server.
func HandleToggleReady(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input ServerRefInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		readiness, customErr := deps.Lobby.ToggleReady(r.Context(), input.ServerID, identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, readiness)
	}
}

// HandleGetReadiness reports a server's readiness. No authentication required.
func HandleGetReadiness(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serverID, customErr := req.RequireQuery(r, "serverId")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		readiness, customErr := deps.Lobby.GetReadiness(r.Context(), serverID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, readiness)
	}
}
