package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/pairnum/pkg/cli"
	"mercator-hq/pairnum/pkg/pairnum"
)

var addFlags struct {
	format string
}

var addCmd = &cobra.Command{
	Use:   "add <number> <number>...",
	Short: "Add numbers left to right",
	Long: `Add the numbers left to right, reducing after every addition, and
print the final sum and its magnitude.

Examples:
  pairnum add '[[[[4,3],4],4],[7,[[8,4],9]]]' '[1,1]'
  pairnum add '[1,1]' '[2,2]' '[3,3]' '[4,4]'`,
	Args: cobra.MinimumNArgs(2),
	RunE: addNumbers,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addFlags.format, "format", "text", "output format: text, json")
}

type sumResult struct {
	Count     int    `json:"count"`
	Sum       string `json:"sum"`
	Magnitude int    `json:"magnitude"`
	Explodes  int    `json:"explodes"`
	Splits    int    `json:"splits"`
}

// WriteText prints the sum and its magnitude.
func (s sumResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\nmagnitude %d\n", s.Sum, s.Magnitude)
	return err
}

func addNumbers(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(addFlags.format)
	if err != nil {
		return err
	}
	nums, err := parseArgs(args)
	if err != nil {
		return err
	}

	sum, st, err := pairnum.Sum(nums)
	if err != nil {
		return cli.NewCommandError("add", err)
	}
	mag, err := pairnum.Magnitude(sum)
	if err != nil {
		return cli.NewCommandError("add", err)
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), sumResult{
		Count:     len(args),
		Sum:       sum.String(),
		Magnitude: mag,
		Explodes:  st.Explodes,
		Splits:    st.Splits,
	})
}
