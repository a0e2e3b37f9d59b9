package main

import (
	"errors"
	"os"

	"github.com/julianknutsen/mapping-tools/internal/beatmap"
	"github.com/julianknutsen/mapping-tools/internal/config"
	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
)

// HintedError wraps an error with a user-facing recovery hint.
type HintedError struct {
	Err  error
	Hint string
}

func (h *HintedError) Error() string { return h.Err.Error() }
func (h *HintedError) Unwrap() error { return h.Err }

// hintWrap attaches a recovery hint to errors a user can fix. Other errors
// pass through unchanged.
func hintWrap(err error) error {
	if err == nil {
		return nil
	}
	var (
		hint     string
		parseErr *beatmap.ParseError
	)
	switch {
	case errors.As(err, &parseErr), errors.Is(err, beatmap.ErrMissingHeader):
		hint = "The file is not a valid .osu beatmap. Re-save it from the osu! editor and try again."
	case errors.Is(err, beatmap.ErrNoTimingPoints):
		hint = "Sliders need an uninherited (red) timing point. Time the map before copying hitsounds."
	case errors.Is(err, hitsounds.ErrNoTargets):
		hint = "Pass target .osu files, or use --mapset to copy to every other difficulty."
	case errors.Is(err, config.ErrUnknownKey):
		hint = "Run 'mt config list' to see the supported keys."
	case errors.Is(err, os.ErrNotExist):
		hint = "Check the path. Quote file names that contain spaces or brackets."
	default:
		return err
	}
	return &HintedError{Err: err, Hint: hint}
}
