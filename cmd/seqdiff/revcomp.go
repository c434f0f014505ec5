package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aria-lang/seqdiff-go/pkg/seqdiff"
	"github.com/spf13/cobra"
)

func newRevcompCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revcomp <file>",
		Short: "Write the reverse complement of every record as FASTA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, _ := cmd.Flags().GetInt("width")
			return writeRevcomp(cmd.OutOrStdout(), args[0], width)
		},
	}
	cmd.Flags().Int("width", 60, "FASTA line width")
	return cmd
}

func writeRevcomp(w io.Writer, file string, width int) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	reads, err := seqdiff.ParseReads(f)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	for _, r := range reads {
		if _, err := io.WriteString(w, r.Sequence.ReverseComplement().ToFASTA(width)); err != nil {
			return err
		}
	}
	return nil
}
