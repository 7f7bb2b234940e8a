package main

import (
	"fmt"
	"os"

	"SwipeEstate/cmd"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "swipe-estate",
		Short:        "Swipe-to-match real estate backend and Telegram bot",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		cmd.ServeCmd(),
		cmd.BotCmd(),
		cmd.CreateAdminCmd(),
		cmd.MigrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
