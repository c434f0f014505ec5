package main

import (
	"fmt"

	"github.com/aria-lang/seqdiff-go/pkg/seqdiff"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), seqdiff.Info())
		},
	}
}
