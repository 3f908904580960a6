package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hongminglow/chama-backend/internal/auth"
	"github.com/hongminglow/chama-backend/internal/models"
	"github.com/hongminglow/chama-backend/internal/storage"
)

func newUsersCommand(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user roles",
	}
	cmd.AddCommand(newSetRoleCommand(deps), newDisableCommand(deps))
	return cmd
}

func newSetRoleCommand(deps Deps) *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "set-role",
		Short: "Change a user's role",
		Long: `Change a user's role.

Tokens already issued keep the role they were issued with until they expire.`,
		Example: "  chamactl users set-role --email alice@example.com --role secretary",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role = strings.ToLower(strings.TrimSpace(role))
			if !models.IsValidRole(role) {
				return fmt.Errorf("invalid role %q: must be one of %s", role, strings.Join(models.Roles(), ", "))
			}
			return updateRole(cmd, deps, email, role)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user to update")
	cmd.Flags().StringVar(&role, "role", "", "new role")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("role")
	return cmd
}

func newDisableCommand(deps Deps) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:     "disable",
		Short:   "Disable a user account",
		Example: "  chamactl users disable --email mallory@example.com",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return updateRole(cmd, deps, email, models.RoleDisabled)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user to disable")
	cmd.MarkFlagRequired("email")
	return cmd
}

func updateRole(cmd *cobra.Command, deps Deps, email, role string) error {
	email = auth.NormalizeEmail(email)
	if email == "" {
		return errors.New("email is required")
	}

	users, err := deps.OpenUsers(cmd.Context())
	if err != nil {
		return err
	}
	defer users.Close()

	user, err := users.UpdateRole(cmd.Context(), email, role)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no user with email %s", email)
		}
		return fmt.Errorf("update role: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s is now %s\n", okFmt("✓"), user.Email, infoFmt(user.Role))
	if role == models.RoleDisabled {
		fmt.Fprintf(out, "%s outstanding tokens stay valid until they expire\n", warnFmt("!"))
	}
	return nil
}
