package api

import (
	"fmt"
	"net/http"

	"github.com/julianknutsen/mapping-tools/internal/beatmap"
	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
	"github.com/julianknutsen/mapping-tools/internal/metadata"
)

// --- Hitsound handlers ---

func (s *Server) handleCopyHitsounds(w http.ResponseWriter, r *http.Request) {
	var req CopyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Targets) == 0 {
		writeError(w, http.StatusBadRequest, "at least one target is required")
		return
	}
	leniency := s.opts.Leniency
	if req.Leniency != nil {
		if *req.Leniency < 0 {
			writeError(w, http.StatusBadRequest, "leniency must not be negative")
			return
		}
		leniency = *req.Leniency
	}

	src, err := parseBeatmap("source", req.Source)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dsts := make([]*beatmap.Beatmap, len(req.Targets))
	for i, t := range req.Targets {
		if dsts[i], err = parseBeatmap(fmt.Sprintf("targets[%d]", i), t); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	opts := hitsounds.Options{Leniency: leniency, Logger: s.log}
	if err := hitsounds.Copy(src, dsts, opts); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	outputs := make([]string, len(dsts))
	for i, d := range dsts {
		outputs[i] = d.String()
	}
	writeJSON(w, http.StatusOK, CopyResponse{Outputs: outputs})
}

func (s *Server) handleResetHitsounds(w http.ResponseWriter, r *http.Request) {
	var req BeatmapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := parseBeatmap("beatmap", req.Beatmap)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hitsounds.Reset(b)
	writeJSON(w, http.StatusOK, BeatmapResponse{Output: b.String()})
}

func (s *Server) handleListHitsounds(w http.ResponseWriter, r *http.Request) {
	var req BeatmapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := parseBeatmap("beatmap", req.Beatmap)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := hitsounds.Collect(b, hitsounds.Options{Logger: s.log})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(data))
}

// --- Metadata handlers ---

func (s *Server) handleExtractMetadata(w http.ResponseWriter, r *http.Request) {
	var req BeatmapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := parseBeatmap("beatmap", req.Beatmap)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m := metadata.Extract(b)
	writeJSON(w, http.StatusOK, MetadataResponse{Metadata: m, TOML: m.String()})
}

func (s *Server) handleApplyMetadata(w http.ResponseWriter, r *http.Request) {
	var req ApplyMetadataRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := parseBeatmap("beatmap", req.Beatmap)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := metadata.DecodeString(req.TOML)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m.Apply(b)
	writeJSON(w, http.StatusOK, BeatmapResponse{Output: b.String()})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.opts.Version, Leniency: s.opts.Leniency})
}
