package beatmap

import (
	"fmt"
	"strings"
)

// SampleSet selects the bank a hitsound is drawn from. None means "inherit"
// from the timing point (or from the normal set, for additions).
type SampleSet int

// Sample sets, numbered as they appear in .osu files.
const (
	SampleSetNone SampleSet = iota
	SampleSetNormal
	SampleSetSoft
	SampleSetDrum
)

// String returns the name osu! uses in the [General] section.
func (s SampleSet) String() string {
	switch s {
	case SampleSetNormal:
		return "Normal"
	case SampleSetSoft:
		return "Soft"
	case SampleSetDrum:
		return "Drum"
	default:
		return "None"
	}
}

// ParseSampleSet accepts either the numeric or the named form.
func ParseSampleSet(s string) (SampleSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "none", "":
		return SampleSetNone, nil
	case "1", "normal":
		return SampleSetNormal, nil
	case "2", "soft":
		return SampleSetSoft, nil
	case "3", "drum":
		return SampleSetDrum, nil
	}
	return SampleSetNone, fmt.Errorf("unknown sample set %q", s)
}

// Additions is the hitsound bit set of a hit object or slider edge.
type Additions uint8

// Addition bits.
const (
	AdditionNormal Additions = 1 << iota
	AdditionWhistle
	AdditionFinish
	AdditionClap
)

// Has reports whether every bit of a is set.
func (a Additions) Has(other Additions) bool { return a&other == other }

// String renders the set bits as a compact list like "whistle+clap".
func (a Additions) String() string {
	var parts []string
	if a.Has(AdditionNormal) {
		parts = append(parts, "normal")
	}
	if a.Has(AdditionWhistle) {
		parts = append(parts, "whistle")
	}
	if a.Has(AdditionFinish) {
		parts = append(parts, "finish")
	}
	if a.Has(AdditionClap) {
		parts = append(parts, "clap")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "+")
}

// SampleInfo is the "normal:addition:index:volume:filename" hit sample.
type SampleInfo struct {
	SampleSet   SampleSet
	AdditionSet SampleSet
	Index       int
	Volume      int
	Filename    string
}

// IsZero reports whether every field holds its inherit value.
func (s SampleInfo) IsZero() bool {
	return s == SampleInfo{}
}

func (s SampleInfo) String() string {
	return fmt.Sprintf("%d:%d:%d:%d:%s", s.SampleSet, s.AdditionSet, s.Index, s.Volume, s.Filename)
}

// Timing point effect bits.
const (
	EffectKiai             = 1 << 0
	EffectOmitFirstBarline = 1 << 3
)

// TimingPoint is one line of the [TimingPoints] section.
type TimingPoint struct {
	Time        float64 // ms
	BeatLength  float64 // ms per beat when uninherited, negative inverse SV percentage otherwise
	Meter       int
	SampleSet   SampleSet
	SampleIndex int
	Volume      int
	Uninherited bool
	Effects     int
}

// Kiai reports whether kiai time is active from this point.
func (tp TimingPoint) Kiai() bool { return tp.Effects&EffectKiai != 0 }

// SliderVelocity is the multiplier an inherited point applies to slider
// speed. Uninherited points reset it to 1.
func (tp TimingPoint) SliderVelocity() float64 {
	if tp.Uninherited || tp.BeatLength >= 0 {
		return 1
	}
	sv := -100 / tp.BeatLength
	switch {
	case sv < 0.1:
		return 0.1
	case sv > 10:
		return 10
	}
	return sv
}

// Kind is the hit object type.
type Kind int

// Hit object kinds.
const (
	KindCircle Kind = iota
	KindSlider
	KindSpinner
	KindHold
)

func (k Kind) String() string {
	switch k {
	case KindSlider:
		return "slider"
	case KindSpinner:
		return "spinner"
	case KindHold:
		return "hold"
	default:
		return "circle"
	}
}

// Type bits of the hit object type field.
const (
	typeCircle    = 1 << 0
	typeSlider    = 1 << 1
	typeNewCombo  = 1 << 2
	typeSpinner   = 1 << 3
	typeComboSkip = 0x70
	typeHold      = 1 << 7
)

// EdgeSet is the "normal:addition" pair on a slider edge.
type EdgeSet struct {
	Normal   SampleSet
	Addition SampleSet
}

// SliderInfo holds the slider-only fields of a hit object. Edge slices have
// Slides+1 entries once populated: the head, each repeat, and the tail.
type SliderInfo struct {
	Curve         string
	Slides        int
	Length        float64
	EdgeAdditions []Additions
	EdgeSets      []EdgeSet
}

// ResizeEdges grows or truncates the edge slices to Slides+1 entries.
func (s *SliderInfo) ResizeEdges() {
	n := s.Slides + 1
	for len(s.EdgeAdditions) < n {
		s.EdgeAdditions = append(s.EdgeAdditions, 0)
	}
	s.EdgeAdditions = s.EdgeAdditions[:n]
	for len(s.EdgeSets) < n {
		s.EdgeSets = append(s.EdgeSets, EdgeSet{})
	}
	s.EdgeSets = s.EdgeSets[:n]
}

// HitObject is one line of the [HitObjects] section.
type HitObject struct {
	X, Y       int
	Time       int // ms
	Kind       Kind
	NewCombo   bool
	ComboSkip  int
	Additions  Additions
	SampleInfo SampleInfo

	// Slider is set for KindSlider.
	Slider *SliderInfo
	// EndTime is set for KindSpinner and KindHold.
	EndTime int

	hasSample bool
}

func (h HitObject) String() string {
	return fmt.Sprintf("%s at %d (%d,%d)", h.Kind, h.Time, h.X, h.Y)
}

func (h HitObject) typeBits() int {
	var t int
	switch h.Kind {
	case KindCircle:
		t = typeCircle
	case KindSlider:
		t = typeSlider
	case KindSpinner:
		t = typeSpinner
	case KindHold:
		t = typeHold
	}
	if h.NewCombo {
		t |= typeNewCombo
	}
	t |= (h.ComboSkip << 4) & typeComboSkip
	return t
}
