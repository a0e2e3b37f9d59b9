package style

import (
	"bytes"
	"strings"
	"testing"

	"github.com/julianknutsen/mapping-tools/internal/beatmap"
)

func TestSetColorMode_Never(t *testing.T) {
	if err := SetColorMode("never"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(colored)
	for name, s := range map[string]string{
		"success": Success.Render("x"),
		"clap":    Clap.Render("x"),
	} {
		if s != "x" {
			t.Errorf("%s.Render(\"x\") = %q, want plain \"x\"", name, s)
		}
	}
}

func TestSetColorMode_Always(t *testing.T) {
	if err := SetColorMode("always"); err != nil {
		t.Fatal(err)
	}
	if got := Success.Render("ok"); !strings.Contains(got, "ok") {
		t.Errorf("Success.Render = %q", got)
	}
}

func TestSetColorMode_Invalid(t *testing.T) {
	if err := SetColorMode("rainbow"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if err := SetColorMode("auto"); err != nil {
		t.Errorf("auto: %v", err)
	}
}

func TestAdditions(t *testing.T) {
	if err := SetColorMode("never"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(colored)
	tests := []struct {
		in   beatmap.Additions
		want string
	}{
		{0, "-"},
		{beatmap.AdditionWhistle, "whistle"},
		{beatmap.AdditionWhistle | beatmap.AdditionClap, "whistle+clap"},
		{beatmap.AdditionNormal | beatmap.AdditionFinish, "normal+finish"},
	}
	for _, tt := range tests {
		if got := Additions(tt.in); got != tt.want {
			t.Errorf("Additions(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		ms   float64
		want string
	}{
		{0, "00:00:000"},
		{1234.9, "00:01:234"},
		{61005, "01:01:005"},
		{-500, "-00:00:500"},
	}
	for _, tt := range tests {
		if got := Timestamp(tt.ms); got != tt.want {
			t.Errorf("Timestamp(%v) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestSpinner_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	s := StartSpinner(&buf, "copying")
	s.SetMessage("writing easy.osu")
	s.Stop()
	s.Stop()
	if got, want := buf.String(), "copying\nwriting easy.osu\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
