package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"printshop/internal/models"
)

var (
	userEmail    string
	userPassword string
	userRole     string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage back-office accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account allowed to trigger syncs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		role := models.Role(userRole)
		if role != models.RoleAdmin && role != models.RoleStaff {
			return fmt.Errorf("unknown role %q (want %s or %s)", userRole, models.RoleAdmin, models.RoleStaff)
		}

		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		u, err := a.users().Create(cmd.Context(), userEmail, userPassword, role)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", u.Email, u.Role)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Account email")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "Account password (min 8 characters)")
	userCreateCmd.Flags().StringVar(&userRole, "role", string(models.RoleAdmin), "Role: admin or staff")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd)
}
