package beatmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrMissingHeader is returned when the input does not start with an
// "osu file format vN" line.
var ErrMissingHeader = errors.New(`missing "osu file format" header`)

// ParseError locates a malformed line.
type ParseError struct {
	Section string
	Line    int
	Err     error
}

func (e *ParseError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d [%s]: %v", e.Line, e.Section, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseString is Parse over an in-memory file.
func ParseString(s string) (*Beatmap, error) {
	return Parse(strings.NewReader(s))
}

// Parse decodes a .osu file.
func Parse(r io.Reader) (*Beatmap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	b := &Beatmap{}
	var (
		section    string
		lineNo     int
		headerSeen bool
	)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !headerSeen {
			v, ok := strings.CutPrefix(trimmed, "osu file format v")
			if !ok {
				return nil, &ParseError{Line: lineNo, Err: ErrMissingHeader}
			}
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, &ParseError{Line: lineNo, Err: fmt.Errorf("bad format version %q", v)}
			}
			b.Version = n
			headerSeen = true
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = trimmed[1 : len(trimmed)-1]
			b.markSection(section)
			if !isKnownSection(section) {
				b.Extra = append(b.Extra, Section{Name: section})
			}
			continue
		}

		if err := b.parseLine(section, line, trimmed); err != nil {
			return nil, &ParseError{Section: section, Line: lineNo, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading beatmap: %w", err)
	}
	if !headerSeen {
		return nil, ErrMissingHeader
	}
	return b, nil
}

func isKnownSection(name string) bool {
	for _, s := range defaultOrder {
		if s == name {
			return true
		}
	}
	return false
}

func (b *Beatmap) parseLine(section, line, trimmed string) error {
	comment := strings.HasPrefix(trimmed, "//")
	switch section {
	case "":
		return nil
	case SectionEvents:
		b.Events = append(b.Events, strings.TrimRight(line, " \t"))
		return nil
	case SectionColours:
		b.Colours = append(b.Colours, trimmed)
		return nil
	}
	if comment {
		return nil
	}

	switch section {
	case SectionGeneral, SectionEditor, SectionDifficulty, SectionMetadata:
		k, v, ok := strings.Cut(trimmed, ":")
		if !ok {
			return fmt.Errorf("expected key:value, got %q", trimmed)
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		switch section {
		case SectionGeneral:
			b.General = append(b.General, KeyValue{Key: k, Value: v})
		case SectionEditor:
			b.Editor = append(b.Editor, KeyValue{Key: k, Value: v})
		case SectionDifficulty:
			b.Difficulty = append(b.Difficulty, KeyValue{Key: k, Value: v})
		case SectionMetadata:
			b.Metadata.set(k, v)
		}
	case SectionTimingPoints:
		tp, err := parseTimingPoint(trimmed)
		if err != nil {
			return err
		}
		b.TimingPoints = append(b.TimingPoints, tp)
	case SectionHitObjects:
		ho, err := parseHitObject(trimmed)
		if err != nil {
			return err
		}
		b.HitObjects = append(b.HitObjects, ho)
	default:
		last := &b.Extra[len(b.Extra)-1]
		last.Lines = append(last.Lines, trimmed)
	}
	return nil
}

func (m *Metadata) set(key, value string) {
	if m.present == nil {
		m.present = make(map[string]bool)
	}
	m.present[key] = true
	switch key {
	case "Title":
		m.Title = value
	case "TitleUnicode":
		m.TitleUnicode = value
	case "Artist":
		m.Artist = value
	case "ArtistUnicode":
		m.ArtistUnicode = value
	case "Creator":
		m.Creator = value
	case "Version":
		m.Version = value
	case "Source":
		m.Source = value
	case "Tags":
		m.Tags = strings.Fields(value)
	case "BeatmapID":
		m.BeatmapID = value
	case "BeatmapSetID":
		m.BeatmapSetID = value
	default:
		m.Extra = append(m.Extra, KeyValue{Key: key, Value: value})
	}
}

func parseTimingPoint(s string) (TimingPoint, error) {
	f := strings.Split(s, ",")
	if len(f) < 2 {
		return TimingPoint{}, fmt.Errorf("timing point needs at least 2 fields, got %d", len(f))
	}
	t, err := parseFloat(f[0])
	if err != nil {
		return TimingPoint{}, fmt.Errorf("time: %w", err)
	}
	bl, err := parseFloat(f[1])
	if err != nil {
		return TimingPoint{}, fmt.Errorf("beat length: %w", err)
	}
	tp := TimingPoint{
		Time:        t,
		BeatLength:  bl,
		Meter:       4,
		Volume:      100,
		Uninherited: bl >= 0,
	}

	ints := []*int{&tp.Meter, nil, &tp.SampleIndex, &tp.Volume, nil, &tp.Effects}
	for i, dst := range ints {
		idx := i + 2
		if idx >= len(f) {
			break
		}
		v, err := parseInt(f[idx])
		if err != nil {
			return TimingPoint{}, fmt.Errorf("field %d: %w", idx, err)
		}
		switch idx {
		case 3:
			tp.SampleSet = SampleSet(v)
		case 6:
			tp.Uninherited = v != 0
		default:
			*dst = v
		}
	}
	return tp, nil
}

func parseHitObject(s string) (HitObject, error) {
	f := strings.Split(s, ",")
	if len(f) < 5 {
		return HitObject{}, fmt.Errorf("hit object needs at least 5 fields, got %d", len(f))
	}
	var nums [5]int
	for i := range nums {
		v, err := parseInt(f[i])
		if err != nil {
			return HitObject{}, fmt.Errorf("field %d: %w", i, err)
		}
		nums[i] = v
	}
	typ := nums[3]
	ho := HitObject{
		X:         nums[0],
		Y:         nums[1],
		Time:      nums[2],
		NewCombo:  typ&typeNewCombo != 0,
		ComboSkip: (typ & typeComboSkip) >> 4,
		Additions: Additions(nums[4] & 0x0f),
	}

	var sample string
	var hasSample bool
	switch {
	case typ&typeSlider != 0:
		ho.Kind = KindSlider
		if len(f) < 8 {
			return HitObject{}, fmt.Errorf("slider needs at least 8 fields, got %d", len(f))
		}
		info, err := parseSlider(f)
		if err != nil {
			return HitObject{}, err
		}
		ho.Slider = info
		if len(f) > 10 {
			sample, hasSample = f[10], true
		}
	case typ&typeSpinner != 0:
		ho.Kind = KindSpinner
		if len(f) < 6 {
			return HitObject{}, errors.New("spinner is missing its end time")
		}
		end, err := parseInt(f[5])
		if err != nil {
			return HitObject{}, fmt.Errorf("end time: %w", err)
		}
		ho.EndTime = end
		if len(f) > 6 {
			sample, hasSample = f[6], true
		}
	case typ&typeHold != 0:
		ho.Kind = KindHold
		if len(f) < 6 {
			return HitObject{}, errors.New("hold note is missing its end time")
		}
		endStr, rest, found := strings.Cut(f[5], ":")
		end, err := parseInt(endStr)
		if err != nil {
			return HitObject{}, fmt.Errorf("end time: %w", err)
		}
		ho.EndTime = end
		if found {
			sample, hasSample = rest, true
		}
	default:
		ho.Kind = KindCircle
		if len(f) > 5 {
			sample, hasSample = f[5], true
		}
	}

	if hasSample {
		si, err := parseSampleInfo(sample)
		if err != nil {
			return HitObject{}, fmt.Errorf("hit sample: %w", err)
		}
		ho.SampleInfo = si
		ho.hasSample = true
	}
	return ho, nil
}

func parseSlider(f []string) (*SliderInfo, error) {
	slides, err := parseInt(f[6])
	if err != nil {
		return nil, fmt.Errorf("slides: %w", err)
	}
	if slides < 1 {
		return nil, fmt.Errorf("slider must have at least one slide, got %d", slides)
	}
	length, err := parseFloat(f[7])
	if err != nil {
		return nil, fmt.Errorf("length: %w", err)
	}
	info := &SliderInfo{Curve: f[5], Slides: slides, Length: length}

	if len(f) > 8 && f[8] != "" {
		for _, part := range strings.Split(f[8], "|") {
			v, err := parseInt(part)
			if err != nil {
				return nil, fmt.Errorf("edge sounds: %w", err)
			}
			info.EdgeAdditions = append(info.EdgeAdditions, Additions(v&0x0f))
		}
	}
	if len(f) > 9 && f[9] != "" {
		for _, part := range strings.Split(f[9], "|") {
			n, a, _ := strings.Cut(part, ":")
			nv, err := parseInt(n)
			if err != nil {
				return nil, fmt.Errorf("edge sets: %w", err)
			}
			var av int
			if a != "" {
				if av, err = parseInt(a); err != nil {
					return nil, fmt.Errorf("edge sets: %w", err)
				}
			}
			info.EdgeSets = append(info.EdgeSets, EdgeSet{Normal: SampleSet(nv), Addition: SampleSet(av)})
		}
	}
	return info, nil
}

func parseSampleInfo(s string) (SampleInfo, error) {
	var si SampleInfo
	parts := strings.SplitN(s, ":", 5)
	ints := []*int{nil, nil, &si.Index, &si.Volume}
	for i, p := range parts {
		if i == 4 {
			si.Filename = p
			break
		}
		if p == "" {
			continue
		}
		v, err := parseInt(p)
		if err != nil {
			return SampleInfo{}, err
		}
		switch i {
		case 0:
			si.SampleSet = SampleSet(v)
		case 1:
			si.AdditionSet = SampleSet(v)
		default:
			*ints[i] = v
		}
	}
	return si, nil
}

// parseInt accepts integers written as floats, which older editors emit.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return int(math.Floor(f)), nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}
