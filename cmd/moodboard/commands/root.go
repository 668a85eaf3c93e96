package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/moodboard"
	"github.com/phanxgames/moodboard/internal/config"
	"github.com/phanxgames/moodboard/internal/printer"
)

// DefaultConfigFile is read from the working directory when --config is not
// given and the file exists.
const DefaultConfigFile = "moodboard.yml"

var (
	configPath string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "moodboard",
	Short: "Moodboard - arrange colors, notes and images on a board",
	Long: `Moodboard is a small visual board editor. Color blocks, text notes and
images can be added, dragged, resized, raised and deleted, and the board can
be exported to PNG.

The starting board comes from moodboard.yml (or --config). Every change is an
action, so recorded sessions can be replayed and exported headlessly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version shown by --version.
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./moodboard.yml when present)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Print every dispatched action to stderr")

	rootCmd.AddCommand(openCmd, exportCmd, replayCmd)
}

// loadConfig reads --config, falls back to ./moodboard.yml and finally to
// the built-in default board.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); errors.Is(err, fs.ErrNotExist) {
			printer.Warning("No %s found, using the default board\n", DefaultConfigFile)
			cfg := config.Default()
			cfg.Debug = debugMode
			return cfg, nil
		}
		path = DefaultConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, printer.Error(
			"Could not load configuration",
			err.Error(),
			[]string{
				fmt.Sprintf("Check that %s exists and is valid YAML", path),
				"Run without --config to use the default board",
			},
		)
	}
	if debugMode {
		cfg.Debug = true
	}
	return cfg, nil
}

// loadActions reads an action log, or returns nil for an empty path.
func loadActions(path string) ([]moodboard.Action, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, printer.Error("Could not read action log", err.Error(), []string{"Check the --actions path"})
	}
	actions, err := moodboard.LoadActionLog(data)
	if err != nil {
		return nil, printer.Error("Invalid action log", err.Error(),
			[]string{`Expected {"actions": [{"type": "ADD_COLOR_ITEM"}, ...]}`})
	}
	return actions, nil
}

// loadScript reads an interaction script, or returns nil for an empty path.
func loadScript(path string) (*moodboard.ScriptRunner, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, printer.Error("Could not read script", err.Error(), []string{"Check the --script path"})
	}
	sr, err := moodboard.LoadScript(data)
	if err != nil {
		return nil, printer.Error("Invalid script", err.Error(),
			[]string{`Expected {"steps": [{"action": "click", "x": 100, "y": 80}, ...]}`})
	}
	return sr, nil
}

// idGenerator returns the item id source for headless runs. Sequential ids
// make exports and replays reproducible.
func idGenerator(sequential bool) moodboard.IDGenerator {
	if sequential {
		return moodboard.SequentialIDs("item-")
	}
	return moodboard.NewID
}
