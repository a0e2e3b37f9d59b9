package api

// registerRoutes wires all API endpoints onto the server mux.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /api/hitsounds/copy", s.handleCopyHitsounds)
	s.mux.HandleFunc("POST /api/hitsounds/reset", s.handleResetHitsounds)
	s.mux.HandleFunc("POST /api/hitsounds/list", s.handleListHitsounds)

	s.mux.HandleFunc("POST /api/metadata/extract", s.handleExtractMetadata)
	s.mux.HandleFunc("POST /api/metadata/apply", s.handleApplyMetadata)

	s.mux.HandleFunc("GET /api/version", s.handleVersion)
}
