package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/aria-lang/seqdiff-go/internal/config"
	"github.com/aria-lang/seqdiff-go/pkg/seqdiff"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seqdiff",
		Short: "Compare two nucleotide reads by least-penalty overlap alignment",
		Long: `Aligns two FASTA or FASTQ reads allowing free overhangs at either end,
tolerating IUPAC ambiguity codes, and reports offsets, substitutions,
indels and ambiguities between them.`,
		Version:      seqdiff.Version(),
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default ./seqdiff.yaml or ~/.config/seqdiff/seqdiff.yaml)")
	root.PersistentFlags().String("log-level", "info", "debug, info, warn or error")

	root.AddCommand(newDiffCmd(), newScoreCmd(), newRevcompCmd(), newVersionCmd())
	return root
}

// engineFlags adds the flags shared by diff and score. Their defaults match
// the config defaults so an unset flag never hides a config file value.
func engineFlags(flags *pflag.FlagSet) {
	p := alignment.DefaultPenalties()
	flags.Int("indel", p.Indel, "penalty of an insertion or deletion")
	flags.Int("substitution", p.Substitution, "penalty of a definite mismatch")
	flags.Int("ambiguity", p.Ambiguity, "penalty of a mismatch compatible through an ambiguity code")
	flags.String("mode", alignment.Dovetail.String(), "end handling: dovetail, bounded or global")
	flags.Int("lead-window", 0, "free leading overhang for bounded mode (0 estimates it)")
	flags.Int("max-align-length", alignment.DefaultMaxAlignLength, "longest alignment produced (0 disables)")
	flags.Int("max-cells", alignment.DefaultMaxCells, "largest edit graph searched (0 disables)")
	flags.Bool("revcomp", false, "compare against the reverse complement of the second read")
	flags.Int("trim", 0, "trim FASTQ read ends below this quality (0 disables)")
}

// setup loads the settings for cmd and builds an engine logging to stderr.
func setup(cmd *cobra.Command) (*config.Config, *seqdiff.Engine, *slog.Logger, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, nil, nil, err
	}

	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(v, path)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: c.Level()}))

	engineCfg, err := c.Engine(logger)
	if err != nil {
		return nil, nil, nil, err
	}
	engine, err := seqdiff.New(engineCfg)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Debug("engine ready", "mode", engine.Mode(), "penalties", fmt.Sprintf("%+v", engine.Penalties()))
	return c, engine, logger, nil
}

// loadPair reads the first record of each file, trimming and reverse
// complementing as configured.
func loadPair(cmd *cobra.Command, c *config.Config, file1, file2 string) (*seqdiff.Read, *seqdiff.Read, error) {
	r1, err := loadRead(file1, c.Trim)
	if err != nil {
		return nil, nil, err
	}
	r2, err := loadRead(file2, c.Trim)
	if err != nil {
		return nil, nil, err
	}

	if revcomp, _ := cmd.Flags().GetBool("revcomp"); revcomp {
		r2 = r2.ReverseComplement()
	}
	return r1, r2, nil
}

func loadRead(file string, trim int) (*seqdiff.Read, error) {
	r, err := seqdiff.ReadFirst(file)
	if err != nil {
		return nil, err
	}

	r, err = r.Trim(trim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
	}
	return r, nil
}
