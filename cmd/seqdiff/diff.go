package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aria-lang/seqdiff-go/internal/report"
	"github.com/aria-lang/seqdiff-go/pkg/seqdiff"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file1> <file2>",
		Short: "Align two sequences and report offsets, errors and diffs",
		Long: `Aligns the first record of file1 against the first record of file2 and
writes the statistics report. Files may be FASTA or FASTQ.

With -l the individual differences are listed as
  pos1 pos2 kind base1 base2
where kind is ins (extra base in seq 2), del (extra base in seq 1),
amb (ambiguity code mismatch) or sub (substitution).`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	flags := cmd.Flags()
	engineFlags(flags)
	flags.StringP("alignment-file", "a", "", "write the alignment blocks to this file (- for stdout)")
	flags.BoolP("list", "l", false, "list each difference")
	flags.BoolP("translate", "t", false, "count codon-level errors and show translations in the alignment")
	flags.String("format", string(report.FormatText), "output format: text, json or yaml")
	flags.Int("width", report.DefaultWidth, "alignment block width")
	flags.Bool("rows", false, "include the gapped alignment rows in json or yaml output")
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	c, engine, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	r1, r2, err := loadPair(cmd, c, args[0], args[1])
	if err != nil {
		return err
	}

	res, err := engine.CompareReads(cmd.Context(), r1, r2)
	if err != nil {
		return err
	}
	logger.Debug("aligned",
		"seq1", res.Name1,
		"seq2", res.Name2,
		"cost", res.Alignment.Cost,
		"columns", res.Alignment.Length())

	out := cmd.OutOrStdout()
	if format := c.OutputFormat(); format != report.FormatText {
		rows, _ := cmd.Flags().GetBool("rows")
		if err := report.Encode(out, format, res.Document(rows)); err != nil {
			return err
		}
	} else {
		if err := report.WriteStats(out, res.Stats, r1.Sequence.Len(), r2.Sequence.Len()); err != nil {
			return err
		}
		if list, _ := cmd.Flags().GetBool("list"); list {
			if err := report.WriteDiffs(out, res.Diffs); err != nil {
				return err
			}
		}
	}

	path, _ := cmd.Flags().GetString("alignment-file")
	if path == "" {
		return nil
	}
	name1, name2 := filepath.Base(args[0]), filepath.Base(args[1])
	if path == "-" {
		return writeAlignment(out, name1, name2, res, c.Translate, c.Width)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating alignment file: %w", err)
	}
	if err := writeAlignment(f, name1, name2, res, c.Translate, c.Width); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeAlignment(w io.Writer, name1, name2 string, res *seqdiff.Result, translate bool, width int) error {
	if translate {
		return report.TranslatedBlocks(w, name1, name2, res.Alignment, width)
	}
	return report.Blocks(w, name1, name2, res.Alignment, width)
}
