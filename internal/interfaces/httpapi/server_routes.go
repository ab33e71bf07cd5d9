package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/sports", handler.ListSports)
	mux.HandleFunc("POST /api/v1/sports", handler.CreateSport)
	mux.HandleFunc("GET /api/v1/sports/{sportID}", handler.GetSport)
	mux.HandleFunc("PUT /api/v1/sports/{sportID}", handler.UpdateSport)
	mux.HandleFunc("DELETE /api/v1/sports/{sportID}", handler.DeleteSport)

	mux.HandleFunc("GET /api/v1/seasons", handler.ListSeasons)
	mux.HandleFunc("POST /api/v1/seasons", handler.CreateSeason)
	mux.HandleFunc("GET /api/v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("PUT /api/v1/seasons/{seasonID}", handler.UpdateSeason)
	mux.HandleFunc("DELETE /api/v1/seasons/{seasonID}", handler.DeleteSeason)

	mux.HandleFunc("GET /api/v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /api/v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /api/v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PUT /api/v1/teams/{teamID}", handler.UpdateTeam)
	mux.HandleFunc("DELETE /api/v1/teams/{teamID}", handler.DeleteTeam)

	mux.HandleFunc("GET /api/v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /api/v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /api/v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /api/v1/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /api/v1/players/{playerID}", handler.DeletePlayer)

	mux.HandleFunc("GET /api/v1/matches", handler.ListMatches)
	mux.HandleFunc("POST /api/v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /api/v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PUT /api/v1/matches/{matchID}", handler.UpdateMatch)
	mux.HandleFunc("DELETE /api/v1/matches/{matchID}", handler.DeleteMatch)
	mux.HandleFunc("GET /api/v1/matches/{matchID}/lineups", handler.ListMatchLineups)
	mux.HandleFunc("GET /api/v1/matches/{matchID}/events", handler.ListMatchEvents)
}

func registerWebhookRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/v1/webhooks/sanity", handler.HandleWebhookUpsert)
	mux.HandleFunc("DELETE /api/v1/webhooks/sanity", handler.HandleWebhookDelete)
}

func registerInternalSyncRoutes(mux *http.ServeMux, handler *Handler, internalSyncToken string) {
	mux.Handle("POST /api/v1/internal/sync/resync", RequireInternalSyncToken(internalSyncToken, http.HandlerFunc(handler.RunResync)))
}
