package theme

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	th, err := Parse(strings.NewReader(`
# comment
Name: Mine
background: #112233
BandLight: #FF000080
Unknown: #FFFFFF
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if th.Name != "Mine" {
		t.Errorf("name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x11, 0x22, 0x33, 0xFF}) {
		t.Errorf("background = %v", th.Background)
	}
	if th.BandLight != (color.RGBA{0x80, 0, 0, 0x80}) {
		t.Errorf("band light = %v", th.BandLight)
	}
	if th.CheckerDark != Default().CheckerDark {
		t.Errorf("missing keys should keep defaults")
	}
	if _, err := Parse(strings.NewReader("Background: #12")); err == nil {
		t.Fatalf("expected error for short hex")
	}
}

func TestParseColorNames(t *testing.T) {
	c, err := ParseColor("Red")
	if err != nil || c != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("ParseColor(Red) = %v, %v", c, err)
	}
	if _, err := ParseColor("not-a-colour"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
	if Hex(color.RGBA{1, 2, 3, 255}) != "#010203" || Hex(color.RGBA{0x80, 0, 0, 0x80}) != "#FF000080" {
		t.Fatalf("unexpected hex formatting")
	}
}

func TestParseColorPremultipliesAlpha(t *testing.T) {
	c, err := ParseColor("#FF000080")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (color.RGBA{0x80, 0, 0, 0x80}) {
		t.Fatalf("ParseColor(#FF000080) = %v, want premultiplied {128 0 0 128}", c)
	}
	if c.R > c.A || c.G > c.A || c.B > c.A {
		t.Fatalf("channel exceeds alpha: %v", c)
	}
	if got := Hex(c); got != "#FF000080" {
		t.Fatalf("Hex round trip = %q", got)
	}
}

func TestDefaultThemeIsPremultiplied(t *testing.T) {
	for _, f := range Fields(Default()) {
		c := f.Color
		if c.R > c.A || c.G > c.A || c.B > c.A {
			t.Errorf("%s = %v has a channel above alpha", f.Name, c)
		}
	}
}

func TestLoaderSources(t *testing.T) {
	dir := t.TempDir()
	l := &Loader{ConfigDir: filepath.Join(dir, "config"), SystemDir: filepath.Join(dir, "system")}

	def, err := l.Load("")
	if err != nil || def.Name != "Default" {
		t.Fatalf("empty name: %v %v", def, err)
	}
	dark, err := l.Load("dark")
	if err != nil {
		t.Fatalf("embedded dark: %v", err)
	}
	if dark.Name != "Dark" || dark.Background == Default().Background {
		t.Fatalf("dark theme not loaded: %+v", dark)
	}

	if err := os.MkdirAll(l.SystemDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(l.SystemDir, "plum.theme"), []byte("Name: Plum\nBackground: plum\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	plum, err := l.Load("plum")
	if err != nil || plum.Name != "Plum" {
		t.Fatalf("system theme: %v %v", plum, err)
	}

	if _, err := l.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFields(t *testing.T) {
	fs := Fields(Default())
	if len(fs) != 8 || fs[0].Name != "Background" || fs[7].Name != "CheckerDark" {
		t.Fatalf("fields = %+v", fs)
	}
}
