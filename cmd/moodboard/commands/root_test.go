package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/moodboard"
	"github.com/phanxgames/moodboard/internal/printer"
)

// execute runs rootCmd with args and returns what was printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeAll(t, args...)
	return out, err
}

// executeAll runs rootCmd with args and returns stdout and stderr. Flag
// variables are reset first because cobra keeps them between runs.
func executeAll(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	configPath, debugMode = "", false
	replaySummary, replaySequential, replayScript = false, true, ""
	exportActions, exportDir, exportLabel = "", "", ""
	exportTimeout, exportSequential = time.Minute, true

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	prevOut, prevErr, prevColor := printer.Out, printer.ErrOut, color.NoColor
	printer.Out, printer.ErrOut, color.NoColor = out, errOut, true
	t.Cleanup(func() {
		printer.Out, printer.ErrOut, color.NoColor = prevOut, prevErr, prevColor
	})

	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const testConfig = `board:
  id: test-board
  width: 400
  height: 300
items:
  - type: color
    id: swatch
    hex: "#FF0000"
    x: 10
    y: 10
    width: 50
    height: 50
`

func TestRootCommand_ShowsHelpWhenNoSubcommand(t *testing.T) {
	output, err := execute(t)
	assert.NoError(t, err)
	assert.Contains(t, output, "Usage:", "Help should be displayed")
	assert.Contains(t, output, "moodboard")
	for _, sub := range []string{"open", "export", "replay"} {
		assert.Contains(t, output, sub)
	}
}

func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	_, err := execute(t, "--unknown-flag", "value")
	assert.Error(t, err, "Unknown flag should cause an error")
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestRootCommand_StrictFlagParsing(t *testing.T) {
	testRoot := &cobra.Command{
		Use:                "moodboard",
		RunE:               func(cmd *cobra.Command, args []string) error { return nil },
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}
	testRoot.SetArgs([]string{"--label", "x"})
	testRoot.SetOut(new(bytes.Buffer))
	testRoot.SetErr(new(bytes.Buffer))
	assert.Error(t, testRoot.Execute(), "subcommand flags are not accepted by the root")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := execute(t, "replay", "--config", "/nonexistent/moodboard.yml", "log.json")
	require.Error(t, err)
	assert.Equal(t, "Could not load configuration", err.Error())
}

func TestReplay_JSON(t *testing.T) {
	cfg := writeFile(t, "moodboard.yml", testConfig)
	log := writeFile(t, "log.json", `{"actions": [
  {"type": "ADD_COLOR_ITEM"},
  {"type": "MOVE_ITEM", "id": "swatch", "x": 100, "y": 120},
  {"type": "DELETE_ITEM", "id": "missing"}
]}`)

	output, err := execute(t, "replay", "--config", cfg, log)
	require.NoError(t, err)

	var state moodboard.BoardState
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Equal(t, "test-board", state.Board.ID)
	require.Len(t, state.Board.Items, 2)
	assert.Equal(t, "item-1", state.SelectedItemID)

	swatch, ok := state.Board.Item("swatch")
	require.True(t, ok)
	assert.Equal(t, 100.0, swatch.Base().X)
	assert.Equal(t, 120.0, swatch.Base().Y)
}

func TestReplay_Summary(t *testing.T) {
	cfg := writeFile(t, "moodboard.yml", testConfig)
	log := writeFile(t, "log.json", `{"actions": [{"type": "ADD_TEXT_ITEM"}, {"type": "DELETE_ITEM", "id": "nope"}]}`)

	output, err := execute(t, "replay", "--config", cfg, "--summary", log)
	require.NoError(t, err)
	assert.Contains(t, output, "test-board")
	assert.Contains(t, output, "item-1")
	assert.Contains(t, output, "1 of 2 actions changed the board")
}

func TestReplay_Errors(t *testing.T) {
	cfg := writeFile(t, "moodboard.yml", testConfig)

	t.Run("missing argument", func(t *testing.T) {
		_, err := execute(t, "replay", "--config", cfg)
		assert.Error(t, err)
	})

	t.Run("missing log", func(t *testing.T) {
		_, err := execute(t, "replay", "--config", cfg, "/nonexistent/log.json")
		require.Error(t, err)
		assert.Equal(t, "Could not read action log", err.Error())
	})

	t.Run("invalid log", func(t *testing.T) {
		log := writeFile(t, "log.json", `{"actions": [{"type": "TELEPORT"}]}`)
		_, err := execute(t, "replay", "--config", cfg, log)
		require.Error(t, err)
		assert.Equal(t, "Invalid action log", err.Error())
	})
}

func TestReplay_Script(t *testing.T) {
	cfg := writeFile(t, "moodboard.yml", testConfig)
	log := writeFile(t, "log.json", `{"actions": [{"type": "DELETE_ITEM", "id": "nope"}]}`)
	script := writeFile(t, "script.json", `{"steps": [
  {"action": "drag", "fromX": 20, "fromY": 20, "toX": 60, "toY": 50, "frames": 3},
  {"action": "key", "key": "right", "shift": true},
  {"action": "snapshot", "label": "done"}
]}`)

	output, err := execute(t, "replay", "--config", cfg, "--script", script, log)
	require.NoError(t, err)

	var state moodboard.BoardState
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	swatch, ok := state.Board.Item("swatch")
	require.True(t, ok)
	assert.Equal(t, 60.0, swatch.Base().X)
	assert.Equal(t, 40.0, swatch.Base().Y)
	assert.Equal(t, "swatch", state.SelectedItemID)

	output, err = execute(t, "replay", "--config", cfg, "--script", script, "--summary", log)
	require.NoError(t, err)
	assert.Contains(t, output, "snapshot done")
	assert.Contains(t, output, "Played 3 script steps")
}

func TestLoadConfig_DefaultBoardWarning(t *testing.T) {
	// The package directory has no moodboard.yml.
	log := writeFile(t, "log.json", `{"actions": [{"type": "DELETE_ITEM", "id": "nope"}]}`)

	output, errOutput, err := executeAll(t, "replay", log)
	require.NoError(t, err)
	assert.Contains(t, errOutput, "No moodboard.yml found, using the default board")
	assert.NotContains(t, output, "No moodboard.yml")

	var state moodboard.BoardState
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Equal(t, moodboard.DefaultBoardState().Board.ID, state.Board.ID)
}

func TestReplay_InvalidScript(t *testing.T) {
	cfg := writeFile(t, "moodboard.yml", testConfig)
	log := writeFile(t, "log.json", `{"actions": [{"type": "DELETE_ITEM", "id": "nope"}]}`)
	script := writeFile(t, "script.json", `{"steps": [{"action": "fly"}]}`)

	_, err := execute(t, "replay", "--config", cfg, "--script", script, log)
	require.Error(t, err)
	assert.Equal(t, "Invalid script", err.Error())
}

func TestExport_WritesPNG(t *testing.T) {
	cfg := writeFile(t, "moodboard.yml", testConfig)
	dir := t.TempDir()

	_, err := execute(t, "export", "--config", cfg, "--dir", dir, "--label", "snap")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_snap.png"), entries[0].Name())
}

func TestExport_ImageFailure(t *testing.T) {
	cfg := writeFile(t, "moodboard.yml", `board:
  id: broken
  width: 200
  height: 200
items:
  - type: image
    id: pic
    src: /nonexistent/picture.png
`)
	dir := filepath.Join(t.TempDir(), "out")

	_, err := execute(t, "export", "--config", cfg, "--dir", dir)
	require.Error(t, err)
	assert.Equal(t, "Export failed: image could not be loaded", err.Error())
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "nothing is written when an export fails")
}

func TestIDGenerator(t *testing.T) {
	gen := idGenerator(true)
	assert.Equal(t, "item-1", gen())
	assert.Equal(t, "item-2", gen())

	random := idGenerator(false)
	assert.NotEqual(t, random(), random())
}
