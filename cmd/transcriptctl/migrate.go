package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/designemotion/transcript/internal/database"
	"github.com/designemotion/transcript/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending account store migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()
			return migrate(cmd.Context(), cmd.OutOrStdout(), db, schemas.Migrations)
		},
	}
}

func migrate(ctx context.Context, w io.Writer, db *sqlx.DB, migrations fs.FS) error {
	applied, err := database.Migrate(ctx, db, migrations)
	for _, version := range applied {
		_, _ = color.New(color.FgGreen).Fprintf(w, "applied %s\n", version)
	}
	if err != nil {
		return fmt.Errorf("database.Migrate() > %w", err)
	}
	if len(applied) == 0 {
		_, _ = fmt.Fprintln(w, "schema is up to date")
	}
	return nil
}
