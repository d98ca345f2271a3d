package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jdelacruz/bingo-companion/internal/api/handlers"
	"github.com/jdelacruz/bingo-companion/internal/api/response"
	"github.com/jdelacruz/bingo-companion/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// WebSocket endpoint (no JSON content-type requirement)
	s.router.Get("/ws", s.wsHub.ServeWs)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		cardHandler := handlers.NewCardHandler(s.service)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.ListCards)
			r.Post("/", cardHandler.CreateCard)
			r.Get("/{cardID}", cardHandler.GetCard)
			r.Put("/{cardID}", cardHandler.RenameCard)
			r.Delete("/{cardID}", cardHandler.DeleteCard)
			r.Put("/{cardID}/cells", cardHandler.SetCell)
		})

		patternHandler := handlers.NewPatternHandler(s.service)
		r.Route("/patterns", func(r chi.Router) {
			r.Get("/", patternHandler.ListPatterns)
			r.Post("/", patternHandler.CreatePattern)
			r.Get("/{patternID}", patternHandler.GetPattern)
			r.Put("/{patternID}", patternHandler.UpdatePattern)
			r.Delete("/{patternID}", patternHandler.DeletePattern)
		})

		sessionHandler := handlers.NewSessionHandler(s.service)
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.ListSessions)
			r.Post("/", sessionHandler.CreateSession)
			r.Get("/{sessionID}", sessionHandler.GetSession)
			r.Delete("/{sessionID}", sessionHandler.DeleteSession)
			r.Post("/{sessionID}/calls", sessionHandler.CallNumber)
			r.Delete("/{sessionID}/calls/last", sessionHandler.UndoCall)
			r.Post("/{sessionID}/reset", sessionHandler.ResetSession)
			r.Get("/{sessionID}/analysis", sessionHandler.GetAnalysis)
			r.Get("/{sessionID}/analysis/cards/{cardID}", sessionHandler.GetCardAnalysis)
			r.Get("/{sessionID}/impact/{number}", sessionHandler.GetNumberImpact)
		})
	})
}

// healthCheck responds to health check requests.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"status":     "ok",
		"version":    version.GetVersion(),
		"ws_clients": s.wsHub.ClientCount(),
	})
}
