package handler

import (
	"net/http"

	"geopolitik/internal/app/lobby"
	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/req"
	"geopolitik/internal/pkg/resp"
)

// HandleCreateNation registers the caller's nation in a server.
func HandleCreateNation(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input lobby.CreateNationInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		owner := lobby.Owner{ID: identity.ID, Name: identity.DisplayName()}
		n, customErr := deps.Lobby.CreateNation(r.Context(), owner, input)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondCreated(w, r, map[string]any{"id": n.ID})
	}
}

// HandleListNations lists every nation of the server named in the query.
func HandleListNations(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serverID, customErr := req.RequireQuery(r, "serverId")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		list, customErr := deps.Lobby.ListNations(r.Context(), serverID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, list)
	}
}

// HandleSpawnBot adds a single bot. Host only.
func HandleSpawnBot(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input ServerRefInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		bot, customErr := deps.Lobby.SpawnBot(r.Context(), input.ServerID, identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondCreated(w, r, map[string]any{"id": bot.ID})
	}
}

type PopulateBotsInput struct {
	ServerID string `json:"serverId"`
	Count    int    `json:"count"`
}

// HandlePopulateBots fills a server with tiered bots up to the requested count. Host only.
func HandlePopulateBots(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input PopulateBotsInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		added, customErr := deps.Lobby.PopulateBots(r.Context(), input.ServerID, identity.ID, input.Count)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if added == 0 {
			resp.RespondSuccess(w, r, map[string]any{"message": "Already populated", "added": 0})
			return
		}
		resp.RespondCreated(w, r, map[string]any{"added": added})
	}
}
