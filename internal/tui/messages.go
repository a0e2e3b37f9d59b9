package tui

import "github.com/julianknutsen/mapping-tools/internal/hitsounds"

// activeView identifies which view is currently displayed.
type activeView int

const (
	viewPicker activeView = iota
	viewPreview
)

// difficulty is one .osu file of the mapset.
type difficulty struct {
	path    string
	name    string // [Metadata] Version, or the file name
	objects int
	err     error // set when the file failed to parse
}

// mapsetMsg carries the scanned mapset directory.
type mapsetMsg struct {
	diffs []difficulty
	err   error
}

// previewMsg carries the collected hitsounds of one difficulty.
type previewMsg struct {
	path string
	data *hitsounds.Data
	err  error
}

// copyResultMsg carries the outcome of a copy.
type copyResultMsg struct {
	results []hitsounds.FileResult
	err     error
}

// copyRequestMsg is sent by the picker once a copy is confirmed.
type copyRequestMsg struct {
	source   string
	targets  []string
	leniency int
}

// previewRequestMsg asks to show the hitsounds of one difficulty.
type previewRequestMsg struct {
	path string
	name string
}

// backMsg returns to the picker.
type backMsg struct{}
