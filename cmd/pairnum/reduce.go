package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/pairnum/pkg/cli"
	"mercator-hq/pairnum/pkg/pairnum"
	"mercator-hq/pairnum/pkg/pairnum/parser"
)

var reduceFlags struct {
	format string
}

var reduceCmd = &cobra.Command{
	Use:   "reduce <number>...",
	Short: "Reduce numbers and print their magnitude",
	Long: `Reduce each number by repeated explodes and splits, then print the
reduced form, its magnitude and the rewrites applied.

Examples:
  pairnum reduce '[[[[[9,8],1],2],3],4]'
  pairnum reduce '[[[[0,7],4],[15,[0,13]]],[1,1]]' --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: reduceNumbers,
}

func init() {
	rootCmd.AddCommand(reduceCmd)

	reduceCmd.Flags().StringVar(&reduceFlags.format, "format", "text", "output format: text, json")
}

// reduction is the outcome of reducing a single number.
type reduction struct {
	Input     string `json:"input"`
	Reduced   string `json:"reduced"`
	Magnitude int    `json:"magnitude"`
	Explodes  int    `json:"explodes"`
	Splits    int    `json:"splits"`
}

type reductions []reduction

// WriteText prints one block per number.
func (rs reductions) WriteText(w io.Writer) error {
	for _, r := range rs {
		if _, err := fmt.Fprintf(w, "%s\nmagnitude %d (explodes %d, splits %d)\n",
			r.Reduced, r.Magnitude, r.Explodes, r.Splits); err != nil {
			return err
		}
	}
	return nil
}

func reduceNumbers(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(reduceFlags.format)
	if err != nil {
		return err
	}
	nums, err := parseArgs(args)
	if err != nil {
		return err
	}

	out := make(reductions, 0, len(nums))
	for i, n := range nums {
		st := pairnum.Reduce(&n)
		mag, err := pairnum.Magnitude(n)
		if err != nil {
			return cli.NewCommandError("reduce", err)
		}
		out = append(out, reduction{
			Input:     args[i],
			Reduced:   n.String(),
			Magnitude: mag,
			Explodes:  st.Explodes,
			Splits:    st.Splits,
		})
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), out)
}

// parseArgs parses every argument as a number, failing on the first
// malformed one.
func parseArgs(args []string) ([]pairnum.Number, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	p := parser.NewParser()
	if cfg.Homework.MaxNesting > 0 {
		p = p.WithMaxNesting(cfg.Homework.MaxNesting)
	}

	nums := make([]pairnum.Number, 0, len(args))
	for i, arg := range args {
		n, err := p.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		nums = append(nums, n)
	}
	return nums, nil
}
