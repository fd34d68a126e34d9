package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"struct-binder/bindpath"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse PATH",
		Short: "Show the segments of a binding path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := bindpath.ParseWith(args[0], a.opts.Sep())

			out := cmd.OutOrStdout()
			for i, seg := range p.Segments() {
				fmt.Fprintf(out, "%d\t%q\t%d:%d\t%s\n", i, seg.Text, seg.Start, seg.End, seg.Flags)
			}

			fmt.Fprintln(out, p.ToOriginal())

			return nil
		},
	}
}
