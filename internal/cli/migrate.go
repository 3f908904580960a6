package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hongminglow/chama-backend/internal/storage/postgres/migrations"
)

func newMigrateCommand(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := deps.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Up(cmd.Context(), db); err != nil {
				return err
			}
			version, err := migrations.Version(cmd.Context(), db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %s\n", okFmt("✓"), infoFmt(version))
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := deps.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()
			return migrations.Status(cmd.Context(), db)
		},
	}

	cmd.AddCommand(up, status)
	return cmd
}
