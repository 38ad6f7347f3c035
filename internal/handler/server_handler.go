package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"geopolitik/internal/app/lobby"
	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/req"
	"geopolitik/internal/pkg/resp"
)

// ServerRefInput is the body of every action addressed to one server.
type ServerRefInput struct {
	ServerID string `json:"serverId"`
}

// HandleCreateServer creates a server hosted by the caller.
func HandleCreateServer(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input lobby.CreateServerInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		srv, customErr := deps.Lobby.CreateServer(r.Context(), identity.ID, input)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondCreated(w, r, map[string]any{"id": srv.ID})
	}
}

// HandleListServers lists the servers the caller hosts.
func HandleListServers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		list, customErr := deps.Lobby.ListServers(r.Context(), identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, list)
	}
}

// HandleGetServer returns one server by its URL id.
func HandleGetServer(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		srv, customErr := deps.Lobby.GetServer(r.Context(), chi.URLParam(r, "id"))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, srv)
	}
}

// HandleStartGame starts a fully ready server. Host only.
func HandleStartGame(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input ServerRefInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		status, customErr := deps.Lobby.StartGame(r.Context(), input.ServerID, identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, map[string]any{"status": status})
	}
}
