package main

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"struct-binder/source"
)

func newDiffCmd(a *app) *cobra.Command {
	var (
		src     sourceFlags
		bind    bindFlags
		against string
		context int
	)

	cmd := &cobra.Command{
		Use:   "diff PATH",
		Short: "Compare the value bound at a path in two sources",
		Long: `diff binds PATH from the selected source and from the --against document
and prints a unified diff of both values rendered as YAML. Nothing is
printed when they are equal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, target, err := bind.binder(a)
			if err != nil {
				return err
			}

			s, release, err := src.open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			other, err := source.LoadFile(against)
			if err != nil {
				return err
			}

			left, err := bindAndRender(b, target, args[0], s)
			if err != nil {
				return err
			}

			right, err := bindAndRender(b, target, args[0], other)
			if err != nil {
				return err
			}

			patch, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(left)),
				B:        difflib.SplitLines(string(right)),
				FromFile: src.name(),
				ToFile:   against,
				Context:  context,
			})
			if err != nil {
				return fmt.Errorf("diff: %w", err)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), patch)

			return err
		},
	}

	src.register(cmd)
	bind.register(cmd)
	cmd.Flags().StringVar(&against, "against", "", "YAML or JSON document to compare with")
	cmd.Flags().IntVar(&context, "context", 3, "Lines of context around each change")
	_ = cmd.MarkFlagRequired("against")

	return cmd
}
