package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/pairnum/pkg/cli"
	"mercator-hq/pairnum/pkg/pairnum"
)

var magnitudeCmd = &cobra.Command{
	Use:   "magnitude <number>",
	Short: "Print the magnitude of a number as given",
	Long: `Print the magnitude of a number without reducing it first.

Examples:
  pairnum magnitude '[[1,2],[[3,4],5]]'   # 143
  pairnum magnitude '[9,1]'               # 29`,
	Args: cobra.ExactArgs(1),
	RunE: printMagnitude,
}

func init() {
	rootCmd.AddCommand(magnitudeCmd)
}

func printMagnitude(cmd *cobra.Command, args []string) error {
	nums, err := parseArgs(args)
	if err != nil {
		return err
	}
	mag, err := pairnum.Magnitude(nums[0])
	if err != nil {
		return cli.NewCommandError("magnitude", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), mag)
	return err
}
