package palette

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a series color: Main for lines, bars and legend dots, Light for area fills.
type Color struct {
	Main  string `yaml:"main" json:"main"`
	Light string `yaml:"light" json:"light"`
}

// Palette assigns colors to dimension values.
// Categories use fixed named colors; warehouses index into Cycle by their
// sales rank, wrapping when there are more warehouses than colors.
type Palette struct {
	Default    Color            `yaml:"default"`
	Categories map[string]Color `yaml:"categories"`
	Cycle      []Color          `yaml:"cycle"`
}

// Builtin returns the palette used when no palette file is configured.
func Builtin() *Palette {
	return &Palette{
		Default: Color{Main: "#708090", Light: "rgba(112, 128, 144, 0.3)"},
		Categories: map[string]Color{
			"WINE":         {Main: "#8B0A50", Light: "rgba(139, 10, 80, 0.3)"},
			"BEER":         {Main: "#DAA520", Light: "rgba(218, 165, 32, 0.3)"},
			"LIQUOR":       {Main: "#1E90FF", Light: "rgba(30, 144, 255, 0.3)"},
			"KEGS":         {Main: "#2E8B57", Light: "rgba(46, 139, 87, 0.3)"},
			"STR_SUPPLIES": {Main: "#9370DB", Light: "rgba(147, 112, 219, 0.3)"},
			"REF":          {Main: "#FF6347", Light: "rgba(255, 99, 71, 0.3)"},
		},
		Cycle: []Color{
			{Main: "#4F46E5", Light: "rgba(79, 70, 229, 0.3)"},
			{Main: "#10B981", Light: "rgba(16, 185, 129, 0.3)"},
			{Main: "#F59E0B", Light: "rgba(245, 158, 11, 0.3)"},
			{Main: "#EF4444", Light: "rgba(239, 68, 68, 0.3)"},
			{Main: "#8B5CF6", Light: "rgba(139, 92, 246, 0.3)"},
			{Main: "#06B6D4", Light: "rgba(6, 182, 212, 0.3)"},
			{Main: "#EC4899", Light: "rgba(236, 72, 153, 0.3)"},
			{Main: "#84CC16", Light: "rgba(132, 204, 22, 0.3)"},
			{Main: "#F97316", Light: "rgba(249, 115, 22, 0.3)"},
			{Main: "#6366F1", Light: "rgba(99, 102, 241, 0.3)"},
		},
	}
}

// LoadFile reads a palette from YAML. Sections missing from the file fall
// back to the builtin palette.
func LoadFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file %s: %w", path, err)
	}

	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing palette file %s: %w", path, err)
	}

	builtin := Builtin()
	if p.Default.Main == "" {
		p.Default = builtin.Default
	}
	if len(p.Categories) == 0 {
		p.Categories = builtin.Categories
	}
	if len(p.Cycle) == 0 {
		p.Cycle = builtin.Cycle
	}

	for i, c := range p.Cycle {
		if strings.TrimSpace(c.Main) == "" {
			return nil, fmt.Errorf("palette %s: cycle[%d].main must not be empty", path, i)
		}
	}
	return &p, nil
}

// Category returns the named color for a category, or the default.
func (p *Palette) Category(name string) Color {
	if c, ok := p.Categories[name]; ok {
		return c
	}
	return p.Default
}

// Warehouse returns the color for the warehouse at the given sales rank.
func (p *Palette) Warehouse(rank int) Color {
	if len(p.Cycle) == 0 || rank < 0 {
		return p.Default
	}
	return p.Cycle[rank%len(p.Cycle)]
}
