package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	renderBodyOnly bool
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render <manifest>",
	Short: "Print the rendered markup of a figure manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenderCmd,
}

func init() {
	renderCmd.Flags().BoolVar(&renderBodyOnly, "body", false, "print only the tikzpicture environment")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write the markup to a file instead of stdout")
}

func runRenderCmd(cmd *cobra.Command, args []string) error {
	fig, err := loadFigure(args[0])
	if err != nil {
		return err
	}
	doc := fig.Picture.StandaloneString()
	if renderBodyOnly {
		doc = fig.Picture.String()
	}
	if renderOutput != "" {
		return os.WriteFile(renderOutput, []byte(doc+"\n"), 0o600)
	}
	fmt.Fprintln(cmd.OutOrStdout(), doc)
	return nil
}
