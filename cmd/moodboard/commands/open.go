package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/moodboard"
	"github.com/phanxgames/moodboard/internal/editor"
	"github.com/phanxgames/moodboard/internal/printer"
)

var (
	openActions    string
	openRecord     string
	openScript     string
	openExitScript bool
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the board in the editor window",
	Long: `Open the board in a window.

Keys:
  1 / 2 / 3       add color block / text note / image
  C               give the selected color block the next palette color
  Enter           edit the selected note (Enter commits, Shift+Enter newline, Esc cancels)
  Arrows          nudge the selection by 1 (10 with Shift)
  Delete          remove the selection
  Ctrl+V          add an image from a URL on the clipboard
  Ctrl+C          copy the selection's color, text or URL
  Ctrl+E          export the board to PNG

With --script the window plays an interaction script (clicks, drags, keys,
waits and snapshots) before handing control to the user.`,
	Args: cobra.NoArgs,
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVar(&openActions, "actions", "", "Action log to apply before opening")
	openCmd.Flags().StringVar(&openRecord, "record", "", "Write the session's action log to this file on exit")
	openCmd.Flags().StringVar(&openScript, "script", "", "Interaction script to play in the window")
	openCmd.Flags().BoolVar(&openExitScript, "exit-after-script", false, "Close the window when the script has finished")
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	actions, err := loadActions(openActions)
	if err != nil {
		return err
	}

	script, err := loadScript(openScript)
	if err != nil {
		return err
	}

	state := moodboard.Replay(moodboard.Reducer{}, cfg.BoardState(moodboard.NewID), actions)

	var opts []moodboard.StoreOption
	if openRecord != "" {
		opts = append(opts, moodboard.WithActionLog())
	}
	store := moodboard.NewStore(state, opts...)
	store.SetDebugMode(cfg.Debug)

	images := moodboard.NewHTTPImageSource(nil)
	exporter, err := moodboard.NewExporter(images)
	if err != nil {
		return printer.Error("Could not start editor", err.Error(), nil)
	}
	exporter.Background = cfg.BackgroundColor().RGBA()

	ed, err := editor.New(editor.Options{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Store:         store,
		Images:        images,
		Exporter:      exporter,
		ExportDir:     cfg.Export.Dir,
		Step:          cfg.Keyboard.Step,
		PrecisionStep: cfg.Keyboard.PrecisionStep,
		Debug:         cfg.Debug,

		Script:          script,
		ExitAfterScript: openExitScript,
	})
	if err != nil {
		return printer.Error("Could not start editor", err.Error(), nil)
	}
	if err := ed.Run(); err != nil {
		return printer.Error("Editor stopped with an error", err.Error(), nil)
	}

	if openRecord != "" {
		data, err := moodboard.MarshalActionLog(store.Log())
		if err != nil {
			return printer.Error("Could not encode action log", err.Error(), nil)
		}
		if err := os.WriteFile(openRecord, data, 0o644); err != nil {
			return printer.Error("Could not write action log", err.Error(), nil)
		}
		printer.Success("Recorded %d actions to %s\n", len(store.Log()), openRecord)
	}
	return nil
}
