package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if handler.metricsHandler != nil {
		mux.Handle("GET /metrics", handler.metricsHandler)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/stats", handler.GetPlayerStats)
	mux.HandleFunc("GET /v1/players/suggest", handler.SuggestPlayers)
	mux.HandleFunc("POST /v1/recommendations", handler.CreateRecommendation)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/reference/reload", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ReloadReferenceDataset)))
}
