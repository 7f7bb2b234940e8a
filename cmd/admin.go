package cmd

import (
	"errors"
	"fmt"

	"SwipeEstate/models"
	"SwipeEstate/services"
	"SwipeEstate/utils"

	"github.com/spf13/cobra"
)

// CreateAdminCmd is the only way to obtain the admin role.
func CreateAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			password, _ := cmd.Flags().GetString("password")
			if email == "" && phone == "" {
				return errors.New("either --email or --phone is required")
			}
			if len(password) < 6 {
				return errors.New("--password must be at least 6 characters")
			}

			cfg, err := loadServerConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, "swipe-estate-cli")
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := openDatabase(cfg, logger)
			if err != nil {
				return err
			}
			tokens, err := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
			if err != nil {
				return err
			}

			accounts := services.NewAccountService(db, tokens, logger)
			user, err := accounts.Register(cmd.Context(), services.RegisterInput{
				Role:     models.RoleAdmin,
				Name:     name,
				Email:    optional(email),
				Phone:    optional(phone),
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin account %d created\n", user.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "Administrator", "Display name")
	cmd.Flags().String("email", "", "Login email")
	cmd.Flags().String("phone", "", "Login phone")
	cmd.Flags().String("password", "", "Login password")

	return cmd
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
