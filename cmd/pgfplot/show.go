package main

import (
	"github.com/spf13/cobra"
)

var showSet compileSettings

var showCmd = &cobra.Command{
	Use:   "show <manifest>",
	Short: "Compile a figure and open it with the default viewer",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowCmd,
}

func init() {
	showSet.register(showCmd)
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	engine, opts, err := showSet.build()
	if err != nil {
		return err
	}
	fig, err := loadFigure(args[0])
	if err != nil {
		return err
	}
	opts.JobName = fig.Name
	return fig.Picture.ShowPDF(cmd.Context(), engine, opts)
}
