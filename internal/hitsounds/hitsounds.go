// Package hitsounds copies hitsounds between difficulties of an osu! mapset.
//
// Hitsounds are collected from a source beatmap as a list of timed samples
// (Data) and then applied to every target beatmap by matching instants
// within a small time leniency. Timing point volumes and custom sample
// indices travel with them.
package hitsounds

import (
	"fmt"
	"math"
	"sort"

	"github.com/julianknutsen/mapping-tools/internal/beatmap"
	"go.uber.org/zap"
)

// DefaultLeniency is how many milliseconds apart two instants may be and
// still be treated as the same hit.
const DefaultLeniency = 2

// Options tunes collection and application.
type Options struct {
	// Leniency in milliseconds.
	Leniency int
	// Logger receives per-instant tracing. Nil discards.
	Logger *zap.SugaredLogger
}

func (o Options) logger() *zap.SugaredLogger {
	if o.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return o.Logger
}

// Data is everything needed to hitsound another beatmap without access to
// the source beatmap.
type Data struct {
	Hits   []Hit
	Points []SectionProps
}

// Hit is the sound played at a single instant.
type Hit struct {
	Time       float64
	Additions  beatmap.Additions
	SampleInfo beatmap.SampleInfo
}

// SectionProps are the audio properties of a timing section.
type SectionProps struct {
	Time        float64
	Volume      int
	Kiai        bool
	SampleIndex int
}

// Instant is a moment a hitsound can play. Edge indexes a slider's head,
// repeats and tail; it is -1 for everything else.
type Instant struct {
	Time   float64
	Object int
	Edge   int
}

// HitTimes lists every instant a hitsound can play: circle and hold starts,
// each slider edge, and spinner ends. With sliderBody set, slider starts are
// also listed once without an edge. Hit objects must be sorted, since
// instants refer to them by index.
func HitTimes(b *beatmap.Beatmap, sliderBody bool) ([]Instant, error) {
	var out []Instant
	for i := range b.HitObjects {
		ho := &b.HitObjects[i]
		start := float64(ho.Time)
		switch ho.Kind {
		case beatmap.KindCircle, beatmap.KindHold:
			out = append(out, Instant{Time: start, Object: i, Edge: -1})
		case beatmap.KindSpinner:
			out = append(out, Instant{Time: float64(ho.EndTime), Object: i, Edge: -1})
		case beatmap.KindSlider:
			if sliderBody {
				out = append(out, Instant{Time: start, Object: i, Edge: -1})
			}
			total, err := b.SliderDuration(ho)
			if err != nil {
				return nil, fmt.Errorf("slider duration for %s: %w", ho, err)
			}
			slides := ho.Slider.Slides
			per := total / float64(slides)
			for e := 0; e <= slides; e++ {
				out = append(out, Instant{Time: start + float64(e)*per, Object: i, Edge: e})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// Collect extracts the hitsounds of b. Sample sets left to inherit are
// resolved against the timing point in effect, then the map default; an
// addition set left to inherit takes the resolved normal set. b is sorted
// in place.
func Collect(b *beatmap.Beatmap, opts Options) (*Data, error) {
	b.SortObjects()
	instants, err := HitTimes(b, false)
	if err != nil {
		return nil, err
	}

	data := &Data{}
	for _, in := range instants {
		ho := &b.HitObjects[in.Object]
		additions := ho.Additions
		sample := ho.SampleInfo

		if ho.Kind == beatmap.KindSlider && in.Edge >= 0 {
			if in.Edge < len(ho.Slider.EdgeAdditions) {
				additions = ho.Slider.EdgeAdditions[in.Edge]
			}
			if in.Edge < len(ho.Slider.EdgeSets) {
				es := ho.Slider.EdgeSets[in.Edge]
				if es.Normal != beatmap.SampleSetNone {
					sample.SampleSet = es.Normal
				}
				if es.Addition != beatmap.SampleSetNone {
					sample.AdditionSet = es.Addition
				}
			}
		}

		if sample.SampleSet == beatmap.SampleSetNone {
			if idx, ok := b.TimingPointAt(in.Time); ok {
				sample.SampleSet = b.TimingPoints[idx].SampleSet
			}
		}
		if sample.SampleSet == beatmap.SampleSetNone {
			sample.SampleSet = b.DefaultSampleSet()
		}
		if sample.AdditionSet == beatmap.SampleSetNone {
			sample.AdditionSet = sample.SampleSet
		}

		data.Hits = append(data.Hits, Hit{Time: in.Time, Additions: additions, SampleInfo: sample})
	}
	sort.SliceStable(data.Hits, func(i, j int) bool { return data.Hits[i].Time < data.Hits[j].Time })

	for _, tp := range b.TimingPoints {
		data.Points = append(data.Points, SectionProps{
			Time:        tp.Time,
			Volume:      tp.Volume,
			Kiai:        tp.Kiai(),
			SampleIndex: tp.SampleIndex,
		})
	}
	sort.SliceStable(data.Points, func(i, j int) bool { return data.Points[i].Time < data.Points[j].Time })

	opts.logger().Debugw("collected hitsounds", "hits", len(data.Hits), "sections", len(data.Points))
	return data, nil
}

// Apply writes data onto b. Instants with no hit within leniency keep their
// current hitsounds. Timing points within leniency of a source section take
// its volume and sample index; where none exists an inherited point is
// inserted that preserves the slider velocity and sample set in effect. A
// section earlier than every target point lands on the first point instead.
func Apply(data *Data, b *beatmap.Beatmap, opts Options) error {
	log := opts.logger()
	b.SortObjects()
	leniency := float64(opts.Leniency)

	instants, err := HitTimes(b, false)
	if err != nil {
		return err
	}
	for _, in := range instants {
		idx, ok := SearchLenient(in.Time, len(data.Hits), func(i int) float64 { return data.Hits[i].Time }, leniency)
		if !ok {
			log.Debugw("no hitsound for instant", "time", in.Time)
			continue
		}
		hit := data.Hits[idx]
		ho := &b.HitObjects[in.Object]

		if ho.Kind == beatmap.KindSlider && in.Edge >= 0 {
			ho.Slider.ResizeEdges()
			ho.Slider.EdgeSets[in.Edge] = beatmap.EdgeSet{
				Normal:   hit.SampleInfo.SampleSet,
				Addition: hit.SampleInfo.AdditionSet,
			}
			ho.Slider.EdgeAdditions[in.Edge] = hit.Additions
			log.Debugw("slider edge", "object", ho.Time, "edge", in.Edge, "time", in.Time, "additions", hit.Additions.String())
			continue
		}
		ho.SampleInfo = hit.SampleInfo
		ho.Additions = hit.Additions
		log.Debugw("hit object", "object", ho.Time, "time", in.Time, "additions", hit.Additions.String())
	}

	for _, sp := range data.Points {
		applySection(b, sp, leniency)
	}
	return nil
}

func applySection(b *beatmap.Beatmap, sp SectionProps, leniency float64) {
	at := func(i int) float64 { return b.TimingPoints[i].Time }
	idx, ok := SearchLenient(sp.Time, len(b.TimingPoints), at, leniency)
	anchor := sp.Time
	switch {
	case ok:
	case len(b.TimingPoints) == 0:
		return
	case idx == 0:
		// Nothing is in effect before the target's first point, so that
		// point carries the section until a later one overrides it.
		anchor = at(0)
	default:
		eff, _ := b.TimingPointAt(sp.Time)
		base := b.TimingPoints[eff]
		tp := beatmap.TimingPoint{
			Time:       sp.Time,
			BeatLength: -100,
			Meter:      base.Meter,
			SampleSet:  base.SampleSet,
			Effects:    base.Effects &^ beatmap.EffectOmitFirstBarline,
		}
		if !base.Uninherited {
			tp.BeatLength = base.BeatLength
		}
		idx = b.InsertTimingPoint(tp)
	}

	// Red and green points often share a timestamp; all of them must agree.
	lo, hi := idx, idx
	for lo > 0 && math.Abs(at(lo-1)-anchor) <= leniency {
		lo--
	}
	for hi+1 < len(b.TimingPoints) && math.Abs(at(hi+1)-anchor) <= leniency {
		hi++
	}
	for i := lo; i <= hi; i++ {
		b.TimingPoints[i].Volume = sp.Volume
		b.TimingPoints[i].SampleIndex = sp.SampleIndex
	}
}

// Copy collects the hitsounds of src once and applies them to every dst.
func Copy(src *beatmap.Beatmap, dsts []*beatmap.Beatmap, opts Options) error {
	data, err := Collect(src, opts)
	if err != nil {
		return fmt.Errorf("collecting hitsounds: %w", err)
	}
	for i, dst := range dsts {
		if err := Apply(data, dst, opts); err != nil {
			return fmt.Errorf("applying hitsounds to target %d: %w", i, err)
		}
	}
	return nil
}

// Reset erases every hitsound in b, leaving timing points untouched.
func Reset(b *beatmap.Beatmap) {
	for i := range b.HitObjects {
		ho := &b.HitObjects[i]
		ho.Additions = 0
		ho.SampleInfo = beatmap.SampleInfo{}
		if ho.Slider == nil {
			continue
		}
		for j := range ho.Slider.EdgeAdditions {
			ho.Slider.EdgeAdditions[j] = 0
		}
		for j := range ho.Slider.EdgeSets {
			ho.Slider.EdgeSets[j] = beatmap.EdgeSet{}
		}
	}
}

// SearchLenient binary searches n ascending values, read through at, for
// needle. Values within leniency of needle compare equal. It returns the
// matching index and true, or the insertion point and false.
func SearchLenient(needle float64, n int, at func(int) float64, leniency float64) (int, bool) {
	if n == 0 {
		return 0, false
	}
	cmp := func(v float64) int {
		switch {
		case math.Abs(v-needle) <= leniency:
			return 0
		case v < needle:
			return -1
		default:
			return 1
		}
	}

	base, size := 0, n
	for size > 1 {
		half := size / 2
		mid := base + half
		if cmp(at(mid)) <= 0 {
			base = mid
		}
		size -= half
	}
	switch c := cmp(at(base)); {
	case c == 0:
		return base, true
	case c < 0:
		return base + 1, false
	default:
		return base, false
	}
}
