// Package metadata moves song metadata between beatmaps as TOML.
//
// A mapset's difficulties share title, artist, creator, source and tags.
// Extract pulls them out of one difficulty; Apply writes the fields that are
// set onto others, leaving the rest alone.
package metadata

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/julianknutsen/mapping-tools/internal/beatmap"
)

// Metadata is the shareable part of a beatmap's [Metadata] section. Nil
// fields are left untouched by Apply. Empty but non-nil Tags clear the
// target's tags and encode as an empty array.
type Metadata struct {
	Title         *string  `toml:"title,omitempty" json:"title,omitempty"`
	TitleUnicode  *string  `toml:"title_unicode,omitempty" json:"title_unicode,omitempty"`
	Artist        *string  `toml:"artist,omitempty" json:"artist,omitempty"`
	ArtistUnicode *string  `toml:"artist_unicode,omitempty" json:"artist_unicode,omitempty"`
	Creator       *string  `toml:"creator,omitempty" json:"creator,omitempty"`
	Source        *string  `toml:"source,omitempty" json:"source,omitempty"`
	Tags          []string `toml:"tags" json:"tags,omitempty"`
}

// Extract copies the shareable metadata out of b. Every field is set, even
// when empty, so applying the result reproduces b's values exactly.
func Extract(b *beatmap.Beatmap) *Metadata {
	str := func(s string) *string { return &s }
	tags := append([]string{}, b.Metadata.Tags...)
	return &Metadata{
		Title:         str(b.Metadata.Title),
		TitleUnicode:  str(b.Metadata.TitleUnicode),
		Artist:        str(b.Metadata.Artist),
		ArtistUnicode: str(b.Metadata.ArtistUnicode),
		Creator:       str(b.Metadata.Creator),
		Source:        str(b.Metadata.Source),
		Tags:          tags,
	}
}

// Apply writes the set fields of m onto b. Tags are replaced when m carries
// any.
func (m *Metadata) Apply(b *beatmap.Beatmap) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&b.Metadata.Title, m.Title)
	set(&b.Metadata.TitleUnicode, m.TitleUnicode)
	set(&b.Metadata.Artist, m.Artist)
	set(&b.Metadata.ArtistUnicode, m.ArtistUnicode)
	set(&b.Metadata.Creator, m.Creator)
	set(&b.Metadata.Source, m.Source)
	if m.Tags != nil {
		b.Metadata.Tags = append([]string{}, m.Tags...)
	}
}

// IsEmpty reports whether applying m would change nothing.
func (m *Metadata) IsEmpty() bool {
	return m.Title == nil && m.TitleUnicode == nil && m.Artist == nil &&
		m.ArtistUnicode == nil && m.Creator == nil && m.Source == nil && m.Tags == nil
}

// Encode writes m as TOML.
func Encode(w io.Writer, m *Metadata) error {
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	return nil
}

// Decode reads TOML metadata. Unknown keys are rejected so a typo does not
// silently apply nothing.
func Decode(r io.Reader) (*Metadata, error) {
	var m Metadata
	md, err := toml.NewDecoder(r).Decode(&m)
	if err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("decoding metadata: unknown keys: %s", strings.Join(keys, ", "))
	}
	return &m, nil
}

// DecodeString is Decode for an in-memory document.
func DecodeString(s string) (*Metadata, error) {
	return Decode(strings.NewReader(s))
}

// String returns m encoded as TOML.
func (m *Metadata) String() string {
	var sb strings.Builder
	_ = Encode(&sb, m)
	return sb.String()
}
