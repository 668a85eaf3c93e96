package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/moodboard"
	"github.com/phanxgames/moodboard/internal/printer"
)

var (
	exportActions    string
	exportDir        string
	exportLabel      string
	exportTimeout    time.Duration
	exportSequential bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the board to a PNG file without opening a window",
	Long: `Render the configured board, optionally after replaying an action log,
to <dir>/<timestamp>_<label>.png.

Examples:
  moodboard export
  moodboard export --actions session.json --dir out --label final`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportActions, "actions", "", "Action log to replay before exporting")
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Output directory (default from config)")
	exportCmd.Flags().StringVarP(&exportLabel, "label", "l", "", "File name label (default board id)")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", time.Minute, "Give up loading images after this long")
	exportCmd.Flags().BoolVar(&exportSequential, "sequential-ids", true, "Give new items ids item-1, item-2, ...")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	actions, err := loadActions(exportActions)
	if err != nil {
		return err
	}

	ids := idGenerator(exportSequential)
	store := moodboard.NewStore(cfg.BoardState(ids), moodboard.WithReducer(moodboard.Reducer{NewID: ids}))
	store.SetDebugMode(cfg.Debug)
	for _, a := range actions {
		store.Dispatch(a)
	}
	state := store.State()

	exporter, err := moodboard.NewExporter(moodboard.NewHTTPImageSource(nil))
	if err != nil {
		return printer.Error("Export failed", err.Error(), nil)
	}
	exporter.Background = cfg.BackgroundColor().RGBA()

	dir := exportDir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	label := exportLabel
	if label == "" {
		label = state.Board.ID
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, exportTimeout)
	defer cancel()

	printer.Step("Rendering %d items\n", len(state.Board.Items))
	path, err := exporter.SavePNG(ctx, dir, label, state)
	if err != nil {
		var exErr *moodboard.ExportError
		if errors.As(err, &exErr) {
			return printer.Error(
				"Export failed: image could not be loaded",
				err.Error(),
				[]string{
					"Check that " + exErr.Src + " is reachable",
					"Delete item " + exErr.ItemID + " or replace its src",
				},
			)
		}
		return printer.Error("Export failed", err.Error(), nil)
	}
	printer.Success("Exported %s\n", path)
	return nil
}
