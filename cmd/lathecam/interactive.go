package main

import (
	"github.com/spf13/cobra"

	"lathecam/internal/app"
	"lathecam/internal/prompt"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Ask for the job parameters, then generate the program",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	jf := cfg.Defaults()
	if err := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).Job(jf); err != nil {
		return err
	}

	opt := runOptions()
	opt.Print = output != app.StdoutPath

	_, err = app.New(log, cmd.OutOrStdout()).Run(jf, opt)
	return err
}
