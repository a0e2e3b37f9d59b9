package hitsounds

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/julianknutsen/mapping-tools/internal/beatmap"
)

const sourceMap = `osu file format v14

[General]
SampleSet: Normal

[Difficulty]
SliderMultiplier:1

[TimingPoints]
0,500,4,1,0,100,1,0
2000,-100,4,2,1,70,0,0

[HitObjects]
256,192,0,1,2,0:0:0:0:
256,192,500,2,0,L|300:192,1,100,8|4,0:0|3:0,0:0:0:0:
256,192,2000,1,0,2:0:0:0:
256,192,2500,12,4,3000,0:0:0:0:
`

const targetMap = `osu file format v14

[Difficulty]
SliderMultiplier:1

[TimingPoints]
0,500,4,1,0,50,1,0

[HitObjects]
100,100,1,1,0,0:0:0:0:
100,100,500,2,0,L|200:100,2,50
100,100,2001,1,8,0:0:0:0:
100,100,2600,1,2,0:0:0:0:
`

func parse(t *testing.T, s string) *beatmap.Beatmap {
	t.Helper()
	b, err := beatmap.ParseString(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return b
}

func set(n, a beatmap.SampleSet) beatmap.SampleInfo {
	return beatmap.SampleInfo{SampleSet: n, AdditionSet: a}
}

func TestHitTimes(t *testing.T) {
	b := parse(t, sourceMap)
	got, err := HitTimes(b, false)
	if err != nil {
		t.Fatalf("HitTimes: %v", err)
	}
	want := []Instant{
		{Time: 0, Object: 0, Edge: -1},
		{Time: 500, Object: 1, Edge: 0},
		{Time: 1000, Object: 1, Edge: 1},
		{Time: 2000, Object: 2, Edge: -1},
		{Time: 3000, Object: 3, Edge: -1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HitTimes mismatch (-want +got):\n%s", diff)
	}
}

func TestHitTimes_SliderBody(t *testing.T) {
	b := parse(t, sourceMap)
	got, err := HitTimes(b, true)
	if err != nil {
		t.Fatalf("HitTimes: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("got %d instants, want 6", len(got))
	}
	if got[1] != (Instant{Time: 500, Object: 1, Edge: -1}) {
		t.Errorf("slider body instant = %+v", got[1])
	}
}

func TestHitTimes_NoTiming(t *testing.T) {
	b := parse(t, "osu file format v14\n[HitObjects]\n1,2,3,2,0,L|1:1,1,10\n")
	_, err := HitTimes(b, false)
	if !errors.Is(err, beatmap.ErrNoTimingPoints) {
		t.Errorf("err = %v, want ErrNoTimingPoints", err)
	}
}

func TestCollect(t *testing.T) {
	data, err := Collect(parse(t, sourceMap), Options{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	wantHits := []Hit{
		{Time: 0, Additions: beatmap.AdditionWhistle, SampleInfo: set(beatmap.SampleSetNormal, beatmap.SampleSetNormal)},
		{Time: 500, Additions: beatmap.AdditionClap, SampleInfo: set(beatmap.SampleSetNormal, beatmap.SampleSetNormal)},
		{Time: 1000, Additions: beatmap.AdditionFinish, SampleInfo: set(beatmap.SampleSetDrum, beatmap.SampleSetDrum)},
		{Time: 2000, SampleInfo: set(beatmap.SampleSetSoft, beatmap.SampleSetSoft)},
		{Time: 3000, Additions: beatmap.AdditionFinish, SampleInfo: set(beatmap.SampleSetSoft, beatmap.SampleSetSoft)},
	}
	if diff := cmp.Diff(wantHits, data.Hits); diff != "" {
		t.Errorf("hits mismatch (-want +got):\n%s", diff)
	}
	wantPoints := []SectionProps{
		{Time: 0, Volume: 100},
		{Time: 2000, Volume: 70, SampleIndex: 1},
	}
	if diff := cmp.Diff(wantPoints, data.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_MapDefaultSampleSet(t *testing.T) {
	b := parse(t, "osu file format v14\n[General]\nSampleSet: Drum\n[TimingPoints]\n0,500,4,0,0,100,1,0\n[HitObjects]\n1,1,0,1,0,0:2:0:0:\n")
	data, err := Collect(b, Options{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got := data.Hits[0].SampleInfo; got != set(beatmap.SampleSetDrum, beatmap.SampleSetSoft) {
		t.Errorf("SampleInfo = %+v, want drum normal with soft additions", got)
	}
}

func TestCopy(t *testing.T) {
	src := parse(t, sourceMap)
	dst := parse(t, targetMap)
	if err := Copy(src, []*beatmap.Beatmap{dst}, Options{Leniency: DefaultLeniency}); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	circle := dst.HitObjects[0]
	if circle.Additions != beatmap.AdditionWhistle || circle.SampleInfo != set(beatmap.SampleSetNormal, beatmap.SampleSetNormal) {
		t.Errorf("circle at 1 = %+v", circle)
	}

	slider := dst.HitObjects[1].Slider
	wantSlider := &beatmap.SliderInfo{
		Curve:         "L|200:100",
		Slides:        2,
		Length:        50,
		EdgeAdditions: []beatmap.Additions{beatmap.AdditionClap, 0, beatmap.AdditionFinish},
		EdgeSets: []beatmap.EdgeSet{
			{Normal: beatmap.SampleSetNormal, Addition: beatmap.SampleSetNormal},
			{},
			{Normal: beatmap.SampleSetDrum, Addition: beatmap.SampleSetDrum},
		},
	}
	if diff := cmp.Diff(wantSlider, slider); diff != "" {
		t.Errorf("slider mismatch (-want +got):\n%s", diff)
	}

	replaced := dst.HitObjects[2]
	if replaced.Additions != 0 || replaced.SampleInfo != set(beatmap.SampleSetSoft, beatmap.SampleSetSoft) {
		t.Errorf("circle at 2001 = %+v", replaced)
	}

	untouched := dst.HitObjects[3]
	if untouched.Additions != beatmap.AdditionWhistle || !untouched.SampleInfo.IsZero() {
		t.Errorf("unmatched circle changed: %+v", untouched)
	}

	wantPoints := []beatmap.TimingPoint{
		{Time: 0, BeatLength: 500, Meter: 4, SampleSet: beatmap.SampleSetNormal, Volume: 100, Uninherited: true},
		{Time: 2000, BeatLength: -100, Meter: 4, SampleSet: beatmap.SampleSetNormal, SampleIndex: 1, Volume: 70},
	}
	if diff := cmp.Diff(wantPoints, dst.TimingPoints); diff != "" {
		t.Errorf("timing points mismatch (-want +got):\n%s", diff)
	}
}

func TestCopy_ZeroLeniencyNeedsExactTimes(t *testing.T) {
	src := parse(t, sourceMap)
	dst := parse(t, targetMap)
	if err := Copy(src, []*beatmap.Beatmap{dst}, Options{}); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if dst.HitObjects[0].Additions != 0 {
		t.Error("circle 1ms off should not match with zero leniency")
	}
	if dst.HitObjects[1].Slider.EdgeAdditions[0] != beatmap.AdditionClap {
		t.Error("slider head at the exact time should match")
	}
}

func TestApply_KeepsInheritedVelocity(t *testing.T) {
	dst := parse(t, "osu file format v14\n[TimingPoints]\n0,500,4,1,0,50,1,0\n1000,-50,4,3,0,50,0,1\n[HitObjects]\n1,1,0,1,0\n")
	data := &Data{Points: []SectionProps{{Time: 1500, Volume: 30, SampleIndex: 2}}}
	if err := Apply(data, dst, Options{Leniency: 2}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := dst.TimingPoints[2]
	want := beatmap.TimingPoint{Time: 1500, BeatLength: -50, Meter: 4, SampleSet: beatmap.SampleSetDrum, SampleIndex: 2, Volume: 30, Effects: beatmap.EffectKiai}
	if got != want {
		t.Errorf("inserted point = %+v, want %+v", got, want)
	}
}

func TestApply_UpdatesSharedTimestamp(t *testing.T) {
	dst := parse(t, "osu file format v14\n[TimingPoints]\n0,500,4,1,0,50,1,0\n0,-100,4,1,0,50,0,0\n[HitObjects]\n1,1,0,1,0\n")
	data := &Data{Points: []SectionProps{{Time: 1, Volume: 90, SampleIndex: 4}}}
	if err := Apply(data, dst, Options{Leniency: 2}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i, tp := range dst.TimingPoints {
		if tp.Volume != 90 || tp.SampleIndex != 4 {
			t.Errorf("point %d = %+v, want volume 90 index 4", i, tp)
		}
	}
}

func TestCopy_SectionBeforeFirstTargetPoint(t *testing.T) {
	src := parse(t, "osu file format v14\n[TimingPoints]\n0,500,4,2,0,60,1,0\n[HitObjects]\n1,1,0,1,0\n")
	dst := parse(t, "osu file format v14\n[TimingPoints]\n100,500,4,1,0,100,1,0\n[HitObjects]\n1,1,100,1,0\n")
	if err := Copy(src, []*beatmap.Beatmap{dst}, Options{Leniency: 2}); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	want := []beatmap.TimingPoint{
		{Time: 100, BeatLength: 500, Meter: 4, SampleSet: beatmap.SampleSetNormal, Volume: 60, Uninherited: true},
	}
	if diff := cmp.Diff(want, dst.TimingPoints); diff != "" {
		t.Errorf("timing points mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_LaterEarlySectionWins(t *testing.T) {
	dst := parse(t, "osu file format v14\n[TimingPoints]\n100,500,4,1,0,100,1,0\n100,-100,4,1,0,100,0,0\n[HitObjects]\n1,1,100,1,0\n")
	data := &Data{Points: []SectionProps{
		{Time: 0, Volume: 60},
		{Time: 50, Volume: 80, SampleIndex: 3},
	}}
	if err := Apply(data, dst, Options{Leniency: 2}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(dst.TimingPoints) != 2 {
		t.Fatalf("got %d timing points, want no insertions", len(dst.TimingPoints))
	}
	for i, tp := range dst.TimingPoints {
		if tp.Volume != 80 || tp.SampleIndex != 3 {
			t.Errorf("point %d = %+v, want volume 80 index 3", i, tp)
		}
	}
}

func TestReset(t *testing.T) {
	b := parse(t, sourceMap)
	Reset(b)
	for i, ho := range b.HitObjects {
		if ho.Additions != 0 || !ho.SampleInfo.IsZero() {
			t.Errorf("object %d still hitsounded: %+v", i, ho)
		}
		if ho.Slider == nil {
			continue
		}
		for j, a := range ho.Slider.EdgeAdditions {
			if a != 0 {
				t.Errorf("object %d edge %d additions = %v", i, j, a)
			}
		}
		for j, e := range ho.Slider.EdgeSets {
			if e != (beatmap.EdgeSet{}) {
				t.Errorf("object %d edge %d sets = %+v", i, j, e)
			}
		}
	}
	if b.TimingPoints[1].Volume != 70 {
		t.Error("Reset must not touch timing points")
	}
}

func TestSearchLenient(t *testing.T) {
	list := []float64{0, 1, 2, 3, 4}
	at := func(i int) float64 { return list[i] }
	tests := []struct {
		needle, leniency float64
		idx              int
		ok               bool
	}{
		{2.05, 0.1, 2, true},
		{1.95, 0.1, 2, true},
		{2.05, 0.03, 3, false},
		{1.95, 0.03, 2, false},
		{-5, 0.1, 0, false},
		{9, 0.1, 5, false},
		{4, 0, 4, true},
	}
	for _, tt := range tests {
		idx, ok := SearchLenient(tt.needle, len(list), at, tt.leniency)
		if idx != tt.idx || ok != tt.ok {
			t.Errorf("SearchLenient(%v, %v) = %d, %v; want %d, %v", tt.needle, tt.leniency, idx, ok, tt.idx, tt.ok)
		}
	}
	if idx, ok := SearchLenient(1, 0, at, 1); idx != 0 || ok {
		t.Errorf("empty haystack = %d, %v; want 0, false", idx, ok)
	}
}
