package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/moodboard"
	"github.com/phanxgames/moodboard/internal/printer"
)

var (
	replaySummary    bool
	replaySequential bool
	replayScript     string
)

var replayCmd = &cobra.Command{
	Use:   "replay ACTION_LOG",
	Short: "Apply an action log to the board and print the result",
	Long: `Apply every action in ACTION_LOG to the configured board and print the
final state as JSON, or as a table with --summary.

With --sequential-ids (the default) the output depends only on the config and
the log, so replays can be diffed.

With --script an interaction script is played after the log, headlessly, with
screen coordinates equal to board coordinates. Snapshot steps print the board
with --summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&replaySummary, "summary", "s", false, "Print a table instead of JSON")
	replayCmd.Flags().BoolVar(&replaySequential, "sequential-ids", true, "Give new items ids item-1, item-2, ...")
	replayCmd.Flags().StringVar(&replayScript, "script", "", "Interaction script to play after the log")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	actions, err := loadActions(args[0])
	if err != nil {
		return err
	}
	script, err := loadScript(replayScript)
	if err != nil {
		return err
	}

	ids := idGenerator(replaySequential)
	store := moodboard.NewStore(cfg.BoardState(ids), moodboard.WithReducer(moodboard.Reducer{NewID: ids}))
	store.SetDebugMode(cfg.Debug)
	applied := 0
	for _, a := range actions {
		if store.Dispatch(a) {
			applied++
		}
	}
	if script != nil {
		if replaySummary {
			script.Snapshot = func(label string) {
				printer.Step("snapshot %s\n", label)
				printer.Board(store.State())
			}
		}
		script.Run(moodboard.NewRouter(store, nil), moodboard.NewKeyboard(store))
		if replaySummary {
			printer.Info("Played %d script steps\n", script.Len())
		}
	}
	state := store.State()

	if replaySummary {
		printer.Board(state)
		printer.Success("%d of %d actions changed the board\n", applied, len(actions))
		return nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return printer.Error("Could not encode board", err.Error(), nil)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
