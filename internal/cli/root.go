// Package cli implements the chamactl administration commands.
package cli

import (
	"context"
	"database/sql"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hongminglow/chama-backend/internal/models"
)

var (
	okFmt   = color.New(color.FgGreen).SprintFunc()
	infoFmt = color.New(color.FgCyan).SprintFunc()
	warnFmt = color.New(color.FgYellow).SprintFunc()
)

// UserAdmin is the slice of the user store the CLI needs.
type UserAdmin interface {
	UpdateRole(ctx context.Context, email, role string) (models.User, error)
	Close()
}

// Deps opens the resources commands operate on. Each command opens what it
// needs so that --help never touches the database.
type Deps struct {
	OpenUsers func(ctx context.Context) (UserAdmin, error)
	OpenDB    func() (*sql.DB, error)
}

// NewRootCommand builds the chamactl command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "chamactl",
		Short: "Administration CLI for the chama backend",
		Long: `chamactl manages the chama backend database.

It applies schema migrations and changes member roles, including
disabling accounts so they can no longer log in.`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCommand(deps), newUsersCommand(deps))
	return root
}
