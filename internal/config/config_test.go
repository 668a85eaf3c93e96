package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/moodboard"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moodboard.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `board:
  id: studio
  width: 1200
  height: 800
items:
  - type: color
    id: swatch
    hex: "#336699"
    x: 0
    y: 40
    width: 50
    height: 60
  - type: image
    src: " https://example.com/a.png "
    z_index: 4
window:
  title: Studio
keyboard:
  step: 2
debug: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "studio", cfg.Board.ID)
	assert.Equal(t, 1200.0, cfg.Board.Width)
	assert.Len(t, cfg.Items, 2)
	assert.Equal(t, "Studio", cfg.Window.Title)
	assert.Equal(t, 720, cfg.Window.Height, "unset fields keep defaults")
	assert.Equal(t, 2.0, cfg.Keyboard.Step)
	assert.Equal(t, float64(moodboard.DefaultPrecisionStep), cfg.Keyboard.PrecisionStep)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.True(t, cfg.Debug)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/moodboard.yml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `board:
  - this is invalid
    yaml syntax
`)
	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestParse_DefaultItems(t *testing.T) {
	t.Run("kept when items is absent", func(t *testing.T) {
		cfg, err := Parse([]byte("board:\n  width: 800\n"))
		require.NoError(t, err)
		assert.Equal(t, Default().Items, cfg.Items)
		assert.Equal(t, 800.0, cfg.Board.Width)
		assert.Equal(t, 600.0, cfg.Board.Height)
	})

	t.Run("dropped when items is empty", func(t *testing.T) {
		cfg, err := Parse([]byte("items: []\n"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Items)
	})

	t.Run("empty file is the default config", func(t *testing.T) {
		cfg, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"zero board", func(c *Config) { c.Board.Width = 0 }, "board size must be positive"},
		{"negative window", func(c *Config) { c.Window.Height = -1 }, "window size must not be negative"},
		{"negative step", func(c *Config) { c.Keyboard.PrecisionStep = -1 }, "keyboard steps"},
		{"bad background", func(c *Config) { c.Export.Background = "white" }, "not a hex color"},
		{"missing type", func(c *Config) { c.Items = []ItemConfig{{}} }, "item 0: missing type"},
		{"unknown type", func(c *Config) { c.Items = []ItemConfig{{Type: "video"}} }, `unknown type "video"`},
		{"image without src", func(c *Config) { c.Items = []ItemConfig{{Type: "image", Src: "  "}} }, "requires src"},
		{"negative size", func(c *Config) { c.Items = []ItemConfig{{Type: "color", Width: -5}} }, "size must not be negative"},
		{"duplicate id", func(c *Config) {
			c.Items = []ItemConfig{{Type: "color", ID: "x"}, {Type: "text", ID: "x"}}
		}, `item 1: duplicate id "x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	require.NoError(t, Default().Validate())
}

func TestParse_ValidationError(t *testing.T) {
	cfg, err := Parse([]byte("board:\n  width: -1\n"))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestBoardState(t *testing.T) {
	t.Run("default config matches the default board", func(t *testing.T) {
		state := Default().BoardState(nil)
		want := moodboard.DefaultBoardState()
		assert.Equal(t, want.Board, state.Board)
		assert.Empty(t, state.SelectedItemID)
	})

	t.Run("builds every item type", func(t *testing.T) {
		cfg := Default()
		cfg.Items = []ItemConfig{
			{Type: "color", Hex: "#000000", X: ptr(0), Y: ptr(0), Width: 30, Height: 40},
			{Type: "text", Text: "note"},
			{Type: "image", ID: "pic", Src: " a.png ", ZIndex: 7},
		}
		state := cfg.BoardState(moodboard.SequentialIDs("cfg"))
		require.Len(t, state.Board.Items, 3)

		c, ok := state.Board.Items[0].(moodboard.ColorItem)
		require.True(t, ok)
		assert.Equal(t, "#000000", c.Hex)
		assert.Equal(t, 0.0, c.X)
		assert.Equal(t, 30.0, c.Width)
		assert.NotEmpty(t, c.ID)

		txt, ok := state.Board.Items[1].(moodboard.TextItem)
		require.True(t, ok)
		assert.Equal(t, "note", txt.Text)
		assert.NotEqual(t, c.ID, txt.ID)

		img, ok := state.Board.Items[2].(moodboard.ImageItem)
		require.True(t, ok)
		assert.Equal(t, "pic", img.ID)
		assert.Equal(t, "a.png", img.Src)
		assert.Equal(t, 7, img.ZIndex)
	})
}

func TestBoardState_PartialSize(t *testing.T) {
	cfg := Default()
	cfg.Items = []ItemConfig{
		{Type: "color", ID: "wide", Width: 300},
		{Type: "image", ID: "tall", Src: "a.png", Height: 50},
	}
	state := cfg.BoardState(nil)

	defW, defH := moodboard.ItemSize(moodboard.NewColorItem())
	w, h := moodboard.ItemSize(state.Board.Items[0])
	assert.Equal(t, 300.0, w)
	assert.Equal(t, defH, h)
	assert.NotEqual(t, defW, w)

	imgW, _ := moodboard.ItemSize(moodboard.NewImageItem())
	w, h = moodboard.ItemSize(state.Board.Items[1])
	assert.Equal(t, imgW, w)
	assert.Equal(t, 50.0, h)
}

func TestBackgroundColor(t *testing.T) {
	cfg := Default()
	cfg.Export.Background = "#000000"
	assert.Equal(t, moodboard.Color{A: 1}, cfg.BackgroundColor())

	cfg.Export.Background = ""
	assert.Equal(t, moodboard.Color{R: 1, G: 1, B: 1, A: 1}, cfg.BackgroundColor())
}
