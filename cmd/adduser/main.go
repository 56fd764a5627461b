package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Abburizal/royal-wedding-byullysjah/app/config"
	"github.com/Abburizal/royal-wedding-byullysjah/app/database"
	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

// adduser seeds an admin account, typically the first super_admin on a
// fresh deployment. Further accounts are created through /admin/register.
func main() {
	var username, email, password, role string

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				return fmt.Errorf("username, email and password are required")
			}
			if !models.ValidRole(role) {
				return fmt.Errorf("invalid role %q", role)
			}

			cfg := config.Load()
			if err := cfg.ConnectDB(); err != nil {
				return err
			}
			defer cfg.DB.Close()
			if cfg.Degraded {
				return fmt.Errorf("database unreachable")
			}
			if err := database.RunMigrations(cfg.DB); err != nil {
				return err
			}

			user, err := database.NewUserStore(cfg.DB).Create(username, email, password, role)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
			}).Info("User created")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login username")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", models.RoleSuperAdmin, "account role")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
