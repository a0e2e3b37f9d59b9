package beatmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// metadataKeys is the order osu! writes [Metadata] in.
var metadataKeys = []string{
	"Title", "TitleUnicode", "Artist", "ArtistUnicode", "Creator",
	"Version", "Source", "Tags", "BeatmapID", "BeatmapSetID",
}

// Write encodes the beatmap in .osu format with CRLF line endings, as the
// osu! editor does.
func (b *Beatmap) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	version := b.Version
	if version == 0 {
		version = DefaultVersion
	}
	fmt.Fprintf(bw, "osu file format v%d\r\n", version)

	written := make(map[string]bool)
	write := func(name string) {
		if written[name] {
			return
		}
		written[name] = true
		b.writeSection(bw, name)
	}
	for _, name := range b.order {
		write(name)
	}
	for _, name := range defaultOrder {
		if b.hasContent(name) {
			write(name)
		}
	}
	for _, s := range b.Extra {
		write(s.Name)
	}
	return bw.Flush()
}

// String returns the encoded beatmap.
func (b *Beatmap) String() string {
	var sb strings.Builder
	_ = b.Write(&sb)
	return sb.String()
}

func (b *Beatmap) hasContent(name string) bool {
	switch name {
	case SectionGeneral:
		return len(b.General) > 0
	case SectionEditor:
		return len(b.Editor) > 0
	case SectionMetadata:
		return len(b.Metadata.lines()) > 0
	case SectionDifficulty:
		return len(b.Difficulty) > 0
	case SectionEvents:
		return len(b.Events) > 0
	case SectionTimingPoints:
		return len(b.TimingPoints) > 0
	case SectionColours:
		return len(b.Colours) > 0
	case SectionHitObjects:
		return len(b.HitObjects) > 0
	}
	return false
}

func (b *Beatmap) writeSection(w *bufio.Writer, name string) {
	fmt.Fprintf(w, "\r\n[%s]\r\n", name)
	line := func(s string) {
		w.WriteString(s)
		w.WriteString("\r\n")
	}
	switch name {
	case SectionGeneral:
		writePairs(w, b.General, ": ")
	case SectionEditor:
		writePairs(w, b.Editor, ": ")
	case SectionMetadata:
		writePairs(w, b.Metadata.lines(), ":")
	case SectionDifficulty:
		writePairs(w, b.Difficulty, ":")
	case SectionEvents:
		for _, l := range b.Events {
			line(l)
		}
	case SectionTimingPoints:
		for _, tp := range b.TimingPoints {
			line(formatTimingPoint(tp))
		}
	case SectionColours:
		for _, l := range b.Colours {
			line(l)
		}
	case SectionHitObjects:
		for i := range b.HitObjects {
			line(formatHitObject(&b.HitObjects[i]))
		}
	default:
		for _, s := range b.Extra {
			if s.Name != name {
				continue
			}
			for _, l := range s.Lines {
				line(l)
			}
		}
	}
}

func writePairs(w *bufio.Writer, pairs Pairs, sep string) {
	for _, kv := range pairs {
		w.WriteString(kv.Key)
		w.WriteString(sep)
		w.WriteString(kv.Value)
		w.WriteString("\r\n")
	}
}

// lines flattens the metadata back into pairs. Keys are written when the
// source file had them or when they carry a value.
func (m *Metadata) lines() Pairs {
	var out Pairs
	for _, k := range metadataKeys {
		v := m.value(k)
		if v == "" && !m.present[k] {
			continue
		}
		out = append(out, KeyValue{Key: k, Value: v})
	}
	return append(out, m.Extra...)
}

func (m *Metadata) value(key string) string {
	switch key {
	case "Title":
		return m.Title
	case "TitleUnicode":
		return m.TitleUnicode
	case "Artist":
		return m.Artist
	case "ArtistUnicode":
		return m.ArtistUnicode
	case "Creator":
		return m.Creator
	case "Version":
		return m.Version
	case "Source":
		return m.Source
	case "Tags":
		return strings.Join(m.Tags, " ")
	case "BeatmapID":
		return m.BeatmapID
	case "BeatmapSetID":
		return m.BeatmapSetID
	}
	return ""
}

func formatTimingPoint(tp TimingPoint) string {
	uninherited := 0
	if tp.Uninherited {
		uninherited = 1
	}
	return fmt.Sprintf("%s,%s,%d,%d,%d,%d,%d,%d",
		formatFloat(tp.Time), formatFloat(tp.BeatLength), tp.Meter,
		tp.SampleSet, tp.SampleIndex, tp.Volume, uninherited, tp.Effects)
}

func formatHitObject(ho *HitObject) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d,%d,%d,%d,%d", ho.X, ho.Y, ho.Time, ho.typeBits(), ho.Additions)
	writeSample := ho.hasSample || !ho.SampleInfo.IsZero()

	switch ho.Kind {
	case KindSlider:
		s := ho.Slider
		if s == nil {
			s = &SliderInfo{Slides: 1}
		}
		fmt.Fprintf(&sb, ",%s,%d,%s", s.Curve, s.Slides, formatFloat(s.Length))
		if len(s.EdgeAdditions) == 0 && len(s.EdgeSets) == 0 && !writeSample {
			break
		}
		edges := *s
		edges.ResizeEdges()
		sb.WriteByte(',')
		for i, a := range edges.EdgeAdditions {
			if i > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(strconv.Itoa(int(a)))
		}
		sb.WriteByte(',')
		for i, e := range edges.EdgeSets {
			if i > 0 {
				sb.WriteByte('|')
			}
			fmt.Fprintf(&sb, "%d:%d", e.Normal, e.Addition)
		}
		if writeSample {
			sb.WriteByte(',')
			sb.WriteString(ho.SampleInfo.String())
		}
	case KindSpinner:
		fmt.Fprintf(&sb, ",%d", ho.EndTime)
		if writeSample {
			sb.WriteByte(',')
			sb.WriteString(ho.SampleInfo.String())
		}
	case KindHold:
		fmt.Fprintf(&sb, ",%d:%s", ho.EndTime, ho.SampleInfo)
	default:
		if writeSample {
			sb.WriteByte(',')
			sb.WriteString(ho.SampleInfo.String())
		}
	}
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
