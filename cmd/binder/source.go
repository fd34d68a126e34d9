package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"struct-binder/source"
)

// sourceFlags selects the configuration source of a command.
type sourceFlags struct {
	file      string
	envPrefix string
	sqlite    string
	table     string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "YAML or JSON document")
	cmd.Flags().StringVar(&f.envPrefix, "env", "", "Read environment variables with this prefix")
	cmd.Flags().StringVar(&f.sqlite, "sqlite", "", "SQLite database holding a key/value table")
	cmd.Flags().StringVar(&f.table, "table", "properties", "Key/value table of the SQLite database")

	cmd.MarkFlagsMutuallyExclusive("file", "env", "sqlite")
	cmd.MarkFlagsOneRequired("file", "env", "sqlite")
}

// name describes the selected source in diff headers.
func (f *sourceFlags) name() string {
	switch {
	case f.file != "":
		return f.file
	case f.envPrefix != "":
		return "env:" + f.envPrefix
	default:
		return "sqlite:" + f.sqlite + "/" + f.table
	}
}

// open returns the selected source and a function releasing it.
func (f *sourceFlags) open(ctx context.Context) (source.Source, func() error, error) {
	noop := func() error { return nil }

	switch {
	case f.file != "":
		src, err := source.LoadFile(f.file)
		if err != nil {
			return nil, nil, err
		}

		return src, noop, nil
	case f.envPrefix != "":
		return source.Flat(source.EnvResolver{Prefix: f.envPrefix}), noop, nil
	case f.sqlite != "":
		db, err := sql.Open("sqlite3", f.sqlite)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", f.sqlite, err)
		}

		r, err := source.NewSQLResolver(ctx, db, f.table)
		if err != nil {
			return nil, nil, errors.Join(err, db.Close())
		}

		closeAll := func() error {
			return errors.Join(r.Close(), db.Close())
		}

		return source.Flat(r), closeAll, nil
	default:
		return nil, nil, errors.New("no source selected")
	}
}
