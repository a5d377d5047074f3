package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/photoedit/internal/theme"
)

// Draw holds the default pen.
type Draw struct {
	Color color.RGBA
	Width int
}

// Text holds the default text style. An empty Font means the embedded font.
type Text struct {
	Font  string
	Size  float64
	Color color.RGBA
}

// Export holds encoder settings.
type Export struct {
	JPEGQuality int
}

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Draw    Draw
	Text    Text
	Export  Export
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // empty allows fallback to env/default
		Draw:   Draw{Color: color.RGBA{0, 0, 0, 255}, Width: 2},
		Text:   Text{Size: 30, Color: color.RGBA{255, 255, 255, 255}},
		Export: Export{JPEGQuality: 90},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[draw]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Draw.Color))
	fmt.Fprintf(&sb, "width = %d\n", c.Draw.Width)
	sb.WriteString("\n")

	sb.WriteString("[text]\n")
	if c.Text.Font != "" {
		fmt.Fprintf(&sb, "font = %s\n", c.Text.Font)
	}
	fmt.Fprintf(&sb, "size = %g\n", c.Text.Size)
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Text.Color))
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "jpeg_quality = %d\n", c.Export.JPEGQuality)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
