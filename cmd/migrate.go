package cmd

import (
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, "swipe-estate-cli")
			if err != nil {
				return err
			}
			defer logger.Sync()

			_, err = openDatabase(cfg, logger)
			return err
		},
	}
}
