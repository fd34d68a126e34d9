package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"struct-binder/bindpath"
	"struct-binder/source"
)

func newKeysCmd(a *app) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "keys [PATH]",
		Short: "List the keys below a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p bindpath.Path
			if len(args) == 1 {
				p = bindpath.ParseWith(args[0], a.opts.Sep())
			}

			s, release, err := src.open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			child, err := source.Get(s, p)
			if err != nil {
				return err
			}

			if child.IsNull() {
				fmt.Fprintln(cmd.OutOrStdout(), "<absent>")
				return nil
			}

			keys, err := child.Keys()
			if err != nil {
				return err
			}

			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}

			return nil
		},
	}

	src.register(cmd)

	return cmd
}
