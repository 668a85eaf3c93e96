// Package config loads the moodboard.yml file that describes the starting
// board and the editor settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/moodboard"
)

// Config is the top-level moodboard.yml configuration.
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Items    []ItemConfig   `yaml:"items,omitempty"`
	Window   WindowConfig   `yaml:"window"`
	Keyboard KeyboardConfig `yaml:"keyboard"`
	Export   ExportConfig   `yaml:"export"`
	Debug    bool           `yaml:"debug,omitempty"`
}

// BoardConfig sets the board identity and its fixed logical size.
type BoardConfig struct {
	ID     string  `yaml:"id"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ItemConfig is one starting item. A zero width or height takes the factory
// default for that dimension alone. x and y are pointers so 0 can be told
// apart from "use the default".
type ItemConfig struct {
	Type   string   `yaml:"type"` // color, text or image
	ID     string   `yaml:"id,omitempty"`
	Hex    string   `yaml:"hex,omitempty"`
	Text   string   `yaml:"text,omitempty"`
	Src    string   `yaml:"src,omitempty"`
	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`
	Width  float64  `yaml:"width,omitempty"`
	Height float64  `yaml:"height,omitempty"`
	ZIndex int      `yaml:"z_index,omitempty"`
}

// WindowConfig sizes the editor window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// KeyboardConfig sets the arrow-key nudge distances.
type KeyboardConfig struct {
	Step          float64 `yaml:"step"`
	PrecisionStep float64 `yaml:"precision_step"`
}

// ExportConfig controls PNG export.
type ExportConfig struct {
	Dir        string `yaml:"dir"`
	Background string `yaml:"background"`
}

// Default returns the configuration used when no file is given: the default
// board with its two starting items.
func Default() *Config {
	return &Config{
		Board: BoardConfig{ID: "board-1", Width: 1000, Height: 600},
		Items: []ItemConfig{
			{Type: "color", ID: "1", X: ptr(100), Y: ptr(80), Width: 100, Height: 100, ZIndex: 1},
			{Type: "text", ID: "2", Text: "Warm & playful", X: ptr(260), Y: ptr(100), ZIndex: 2},
		},
		Window:   WindowConfig{Title: "Moodboard", Width: 1100, Height: 720},
		Keyboard: KeyboardConfig{Step: moodboard.DefaultStep, PrecisionStep: moodboard.DefaultPrecisionStep},
		Export:   ExportConfig{Dir: "exports", Background: "#FFFFFF"},
	}
}

// Load reads and validates a config file. Fields missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Items = nil
	var probe struct {
		Items *[]ItemConfig `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if probe.Items == nil {
		cfg.Items = Default().Items
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks sizes, item types and required item fields.
func (c *Config) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("board size must be positive, got %gx%g", c.Board.Width, c.Board.Height)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must not be negative, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Keyboard.Step < 0 || c.Keyboard.PrecisionStep < 0 {
		return fmt.Errorf("keyboard steps must not be negative")
	}
	if bg := c.Export.Background; bg != "" {
		if _, ok := moodboard.ParseHexColor(bg); !ok {
			return fmt.Errorf("export background %q is not a hex color", bg)
		}
	}

	seen := make(map[string]int)
	for i, it := range c.Items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if it.ID == "" {
			continue
		}
		if j, dup := seen[it.ID]; dup {
			return fmt.Errorf("item %d: duplicate id %q (also item %d)", i, it.ID, j)
		}
		seen[it.ID] = i
	}
	return nil
}

// Validate checks a single item.
func (it ItemConfig) Validate() error {
	switch it.Type {
	case "color", "text":
	case "image":
		if strings.TrimSpace(it.Src) == "" {
			return fmt.Errorf("image item requires src")
		}
	case "":
		return fmt.Errorf("missing type")
	default:
		return fmt.Errorf("unknown type %q (expected color, text or image)", it.Type)
	}
	if it.Width < 0 || it.Height < 0 {
		return fmt.Errorf("size must not be negative")
	}
	return nil
}

// BoardState builds the starting state. Items without an id get one from ids;
// a nil ids uses moodboard.NewID.
func (c *Config) BoardState(ids moodboard.IDGenerator) *moodboard.BoardState {
	items := make([]moodboard.Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, it.build(ids))
	}
	return moodboard.NewBoardState(c.Board.ID, c.Board.Width, c.Board.Height, items...)
}

func (it ItemConfig) build(ids moodboard.IDGenerator) moodboard.Item {
	var opts []moodboard.ItemOption
	if it.ID != "" {
		opts = append(opts, moodboard.WithID(it.ID))
	} else if ids != nil {
		opts = append(opts, moodboard.WithIDGenerator(ids))
	}
	if it.X != nil || it.Y != nil {
		opts = append(opts, moodboard.WithPosition(deref(it.X), deref(it.Y)))
	}
	if it.Width > 0 || it.Height > 0 {
		w, h := it.defaultSize()
		if it.Width > 0 {
			w = it.Width
		}
		if it.Height > 0 {
			h = it.Height
		}
		opts = append(opts, moodboard.WithSize(w, h))
	}
	if it.ZIndex != 0 {
		opts = append(opts, moodboard.WithZIndex(it.ZIndex))
	}

	switch it.Type {
	case "text":
		if it.Text != "" {
			opts = append(opts, moodboard.WithText(it.Text))
		}
		return moodboard.NewTextItem(opts...)
	case "image":
		return moodboard.NewImageItem(append(opts, moodboard.WithSrc(strings.TrimSpace(it.Src)))...)
	default:
		if it.Hex != "" {
			opts = append(opts, moodboard.WithHex(it.Hex))
		}
		return moodboard.NewColorItem(opts...)
	}
}

// defaultSize is the factory size of the item's type.
func (it ItemConfig) defaultSize() (float64, float64) {
	switch it.Type {
	case "text":
		return moodboard.ItemSize(moodboard.NewTextItem())
	case "image":
		return moodboard.ItemSize(moodboard.NewImageItem())
	default:
		return moodboard.ItemSize(moodboard.NewColorItem())
	}
}

// BackgroundColor returns the export background, white when unset.
func (c *Config) BackgroundColor() moodboard.Color {
	if col, ok := moodboard.ParseHexColor(c.Export.Background); ok {
		return col
	}
	return moodboard.Color{R: 1, G: 1, B: 1, A: 1}
}

func ptr(v float64) *float64 { return &v }

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
