package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <file1> <file2>",
		Short: "Print the minimum alignment penalty only",
		Long: `Computes the least penalty of aligning the first record of file1 against
the first record of file2 without building the alignment. The overhang is
the number of free end gaps the optimum uses.`,
		Args: cobra.ExactArgs(2),
		RunE: runScore,
	}
	engineFlags(cmd.Flags())
	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	c, engine, _, err := setup(cmd)
	if err != nil {
		return err
	}

	r1, r2, err := loadPair(cmd, c, args[0], args[1])
	if err != nil {
		return err
	}

	cost, err := engine.Score(cmd.Context(), r1.Sequence, r2.Sequence)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-25s%4d\n", "penalty:", cost.Penalty)
	fmt.Fprintf(out, "%-25s%4d\n", "overhang:", cost.Overhang)
	return nil
}
