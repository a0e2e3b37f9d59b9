// Package beatmap reads and writes osu! beatmap (.osu) files.
//
// Sections the mapping tools operate on ([Metadata], [TimingPoints],
// [HitObjects]) are decoded into typed values. Key/value sections are kept as
// ordered pairs and everything else as raw lines, so writing a parsed beatmap
// reproduces content the tools never touch.
package beatmap

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultVersion is the format version written for beatmaps built in memory.
const DefaultVersion = 14

// Section names.
const (
	SectionGeneral      = "General"
	SectionEditor       = "Editor"
	SectionMetadata     = "Metadata"
	SectionDifficulty   = "Difficulty"
	SectionEvents       = "Events"
	SectionTimingPoints = "TimingPoints"
	SectionColours      = "Colours"
	SectionHitObjects   = "HitObjects"
)

var defaultOrder = []string{
	SectionGeneral,
	SectionEditor,
	SectionMetadata,
	SectionDifficulty,
	SectionEvents,
	SectionTimingPoints,
	SectionColours,
	SectionHitObjects,
}

// ErrNoTimingPoints is returned when an operation needs an uninherited
// timing point and the beatmap has none.
var ErrNoTimingPoints = errors.New("beatmap has no uninherited timing points")

// KeyValue is one "Key: Value" line.
type KeyValue struct {
	Key   string
	Value string
}

// Pairs is an ordered list of key/value lines.
type Pairs []KeyValue

// Get returns the value for key and whether it was present.
func (p Pairs) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key, appending it when absent.
func (p *Pairs) Set(key, value string) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, KeyValue{Key: key, Value: value})
}

// Metadata is the [Metadata] section.
type Metadata struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
	Creator       string
	Version       string
	Source        string
	Tags          []string
	BeatmapID     string
	BeatmapSetID  string

	// Extra holds keys this package does not model, in file order.
	Extra Pairs

	present map[string]bool
}

// Section is an unmodeled section kept verbatim.
type Section struct {
	Name  string
	Lines []string
}

// Beatmap is a parsed .osu file.
type Beatmap struct {
	Version      int
	General      Pairs
	Editor       Pairs
	Metadata     Metadata
	Difficulty   Pairs
	Events       []string
	TimingPoints []TimingPoint
	Colours      []string
	HitObjects   []HitObject
	Extra        []Section

	order []string
}

// New returns an empty beatmap at DefaultVersion.
func New() *Beatmap {
	return &Beatmap{Version: DefaultVersion}
}

// DefaultSampleSet is the map-wide sample set from [General], used when
// neither the hit object nor its timing point chooses one.
func (b *Beatmap) DefaultSampleSet() SampleSet {
	v, ok := b.General.Get("SampleSet")
	if !ok {
		return SampleSetNormal
	}
	s, err := ParseSampleSet(v)
	if err != nil || s == SampleSetNone {
		return SampleSetNormal
	}
	return s
}

// SliderMultiplier is the base slider velocity in hundreds of osu! pixels per beat.
func (b *Beatmap) SliderMultiplier() float64 {
	v, ok := b.Difficulty.Get("SliderMultiplier")
	if !ok {
		return 1.4
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f <= 0 {
		return 1.4
	}
	return f
}

// SortObjects orders hit objects and timing points by time. The sort is
// stable so points sharing a timestamp keep their relative order.
func (b *Beatmap) SortObjects() {
	sort.SliceStable(b.HitObjects, func(i, j int) bool {
		return b.HitObjects[i].Time < b.HitObjects[j].Time
	})
	sort.SliceStable(b.TimingPoints, func(i, j int) bool {
		return b.TimingPoints[i].Time < b.TimingPoints[j].Time
	})
}

// TimingPointAt returns the index of the timing point in effect at time t:
// the last point at or before t, or the first point when t precedes all of
// them. Timing points must be sorted. ok is false when there are none.
func (b *Beatmap) TimingPointAt(t float64) (idx int, ok bool) {
	if len(b.TimingPoints) == 0 {
		return 0, false
	}
	i := sort.Search(len(b.TimingPoints), func(i int) bool {
		return b.TimingPoints[i].Time > t
	})
	if i == 0 {
		return 0, true
	}
	return i - 1, true
}

// uninheritedAt returns the uninherited point whose beat length is in
// effect at time t.
func (b *Beatmap) uninheritedAt(t float64) (TimingPoint, bool) {
	var (
		found bool
		tp    TimingPoint
	)
	for _, p := range b.TimingPoints {
		if !p.Uninherited {
			continue
		}
		if p.Time > t && found {
			break
		}
		tp = p
		found = true
		if p.Time > t {
			break
		}
	}
	return tp, found
}

// SliderDuration returns the time in ms a slider takes to complete all of
// its slides.
func (b *Beatmap) SliderDuration(ho *HitObject) (float64, error) {
	if ho.Kind != KindSlider || ho.Slider == nil {
		return 0, fmt.Errorf("%s is not a slider", ho)
	}
	t := float64(ho.Time)
	red, ok := b.uninheritedAt(t)
	if !ok {
		return 0, ErrNoTimingPoints
	}
	sv := 1.0
	if idx, ok := b.TimingPointAt(t); ok && b.TimingPoints[idx].Time <= t {
		sv = b.TimingPoints[idx].SliderVelocity()
	}
	pxPerBeat := b.SliderMultiplier() * 100 * sv
	perSlide := ho.Slider.Length / pxPerBeat * red.BeatLength
	return perSlide * float64(ho.Slider.Slides), nil
}

// InsertTimingPoint adds tp after any existing points with the same time.
func (b *Beatmap) InsertTimingPoint(tp TimingPoint) int {
	i := sort.Search(len(b.TimingPoints), func(i int) bool {
		return b.TimingPoints[i].Time > tp.Time
	})
	b.TimingPoints = append(b.TimingPoints, TimingPoint{})
	copy(b.TimingPoints[i+1:], b.TimingPoints[i:])
	b.TimingPoints[i] = tp
	return i
}

func (b *Beatmap) markSection(name string) {
	for _, s := range b.order {
		if s == name {
			return
		}
	}
	b.order = append(b.order, name)
}
