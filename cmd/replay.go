package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/currencybox/internal/clipboard"
	"github.com/zjrosen/currencybox/internal/config"
	"github.com/zjrosen/currencybox/internal/keys"
	"github.com/zjrosen/currencybox/internal/numedit"
	"github.com/zjrosen/currencybox/internal/presentation"
)

var (
	replayJSON      bool
	replaySteps     bool
	replayClipboard string
)

var replayCmd = &cobra.Command{
	Use:   "replay [flags] SCRIPT",
	Short: "Feed a key script to the editor and print the result",
	Long: `Replay runs a key script against a number box without a terminal and
prints the final text, value and caret.

Plain characters are typed as is. Special keys are written in angle
brackets, for example:

  currencybox replay '1250'
  currencybox replay --format N0 --max 100 '999'
  currencybox replay --steps '12<left>3<bs><up>'
  currencybox replay --clipboard '1,234.5' '<ctrl+v>'`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "output as JSON")
	replayCmd.Flags().BoolVar(&replaySteps, "steps", false, "include every command and its outcome")
	replayCmd.Flags().StringVar(&replayClipboard, "clipboard", "", "initial clipboard text for paste")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	if err := config.ValidateLog(cfg.Log); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	ctrlCfg, err := cfg.Editor.ControllerConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	script, err := keys.ParseScript(args[0])
	if err != nil {
		return fmt.Errorf("parsing script: %w", err)
	}

	ctrlCfg.Clipboard = clipboard.NewMemory(replayClipboard)
	ctrl, err := numedit.New(ctrlCfg)
	if err != nil {
		return err
	}

	var steps []presentation.StepDTO
	for _, c := range script {
		res := ctrl.Apply(c)
		if replaySteps {
			steps = append(steps, presentation.FromStep(c, res, ctrl))
		}
	}

	result := presentation.FromController(ctrl)
	result.Steps = steps

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	if replayJSON {
		return formatter.FormatReplayJSON(result)
	}
	return formatter.FormatReplay(result)
}
