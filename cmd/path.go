package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caxiam/model-api/docpath"
)

var pathCmd = &cobra.Command{
	Use:   "path [expression]",
	Short: "Parse a bracket-path expression and print its access steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := docpath.Parse(args[0])
		if err != nil {
			return err
		}
		if len(steps) == 0 {
			fmt.Println("identity path (whole document)")
			return nil
		}
		for i, step := range steps {
			if step.Kind == docpath.StepIndex {
				fmt.Printf("%2d  index %d\n", i, step.Index)
			} else {
				fmt.Printf("%2d  key   %q\n", i, step.Key)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
