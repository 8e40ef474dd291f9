package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route (pipeline progress, dataset, and training events)
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Design generation
	mux.HandleFunc("/api/design/generate", s.app.DesignHandler.GenerateHandler)
	mux.HandleFunc("/api/design/ensemble", s.app.DesignHandler.EnsembleHandler)
	mux.HandleFunc("/api/design", s.app.DesignHandler.ListHandler)
	mux.HandleFunc("/api/design/", s.app.DesignHandler.DesignRoutes) // GET /{id}, GET /{id}/pdf

	// API routes - Feedback and dataset curation
	mux.HandleFunc("/api/feedback", s.app.FeedbackHandler.SubmitHandler)
	mux.HandleFunc("/api/feedback/stats", s.app.FeedbackHandler.StatsHandler)
	mux.HandleFunc("/api/feedback/", s.app.FeedbackHandler.FeedbackRoutes) // GET/DELETE /{id}, POST /{id}/select

	// API routes - Tenants
	mux.HandleFunc("/api/tenants", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, s.app.TenantHandler.ListHandler, s.app.TenantHandler.CreateHandler)
	})
	mux.HandleFunc("/api/tenants/", s.app.TenantHandler.TenantRoutes) // GET /{id}, GET /{id}/usage

	// API routes - Brand kits
	mux.HandleFunc("/api/brands", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, s.app.BrandHandler.ListHandler, s.app.BrandHandler.CreateHandler)
	})
	mux.HandleFunc("/api/brands/", s.app.BrandHandler.BrandRoutes) // GET /{id}, POST /{id}/logo

	// API routes - Training and dataset analysis
	mux.HandleFunc("/api/training/", s.app.TrainingHandler.TrainingRoutes)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
