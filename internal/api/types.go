package api

import (
	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
	"github.com/julianknutsen/mapping-tools/internal/metadata"
)

// --- Request types ---

// CopyRequest is the JSON body for POST /api/hitsounds/copy.
type CopyRequest struct {
	Source   string   `json:"source"`
	Targets  []string `json:"targets"`
	Leniency *int     `json:"leniency,omitempty"`
}

// BeatmapRequest carries a single beatmap, for reset, list and extract.
type BeatmapRequest struct {
	Beatmap string `json:"beatmap"`
}

// ApplyMetadataRequest is the JSON body for POST /api/metadata/apply.
type ApplyMetadataRequest struct {
	Beatmap string `json:"beatmap"`
	TOML    string `json:"toml"`
}

// --- Response types ---

// CopyResponse holds the rewritten targets, in request order.
type CopyResponse struct {
	Outputs []string `json:"outputs"`
}

// BeatmapResponse holds one rewritten beatmap.
type BeatmapResponse struct {
	Output string `json:"output"`
}

// HitJSON is one collected hitsound.
type HitJSON struct {
	Time        float64 `json:"time"`
	Additions   string  `json:"additions"`
	SampleSet   string  `json:"sample_set"`
	AdditionSet string  `json:"addition_set"`
	Index       int     `json:"index,omitempty"`
	Volume      int     `json:"volume,omitempty"`
	Filename    string  `json:"filename,omitempty"`
}

// ListResponse is the JSON response for POST /api/hitsounds/list.
type ListResponse struct {
	Hits []HitJSON `json:"hits"`
}

// MetadataResponse is the JSON response for POST /api/metadata/extract.
type MetadataResponse struct {
	Metadata *metadata.Metadata `json:"metadata"`
	TOML     string             `json:"toml"`
}

// VersionResponse is the JSON response for GET /api/version.
type VersionResponse struct {
	Version  string `json:"version"`
	Leniency int    `json:"leniency"`
}

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toListResponse(data *hitsounds.Data) ListResponse {
	hits := make([]HitJSON, 0, len(data.Hits))
	for _, h := range data.Hits {
		hits = append(hits, HitJSON{
			Time:        h.Time,
			Additions:   h.Additions.String(),
			SampleSet:   h.SampleInfo.SampleSet.String(),
			AdditionSet: h.SampleInfo.AdditionSet.String(),
			Index:       h.SampleInfo.Index,
			Volume:      h.SampleInfo.Volume,
			Filename:    h.SampleInfo.Filename,
		})
	}
	return ListResponse{Hits: hits}
}
