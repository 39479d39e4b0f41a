package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	starName   string
	followName string
)

var starCmd = &cobra.Command{
	Use:   "star <company-id>",
	Short: "Star a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		r, err := api.CreateStarred(cmd.Context(), args[0], starName)
		if err != nil {
			return err
		}

		zap.L().Info("company starred", zap.String("company_id", args[0]), zap.String("starred_id", r.ID))
		return nil
	},
}

var unstarCmd = &cobra.Command{
	Use:   "unstar <starred-id>",
	Short: "Remove a starred company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		if err := api.DeleteStarred(cmd.Context(), args[0]); err != nil {
			return err
		}

		zap.L().Info("company unstarred", zap.String("starred_id", args[0]))
		return nil
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <company-id>",
	Short: "Follow a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		r, err := api.CreateFollowed(cmd.Context(), args[0], followName)
		if err != nil {
			return err
		}

		zap.L().Info("company followed", zap.String("company_id", args[0]), zap.String("followed_id", r.ID))
		return nil
	},
}

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <followed-id>",
	Short: "Stop following a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		if err := api.DeleteFollowed(cmd.Context(), args[0]); err != nil {
			return err
		}

		zap.L().Info("company unfollowed", zap.String("followed_id", args[0]))
		return nil
	},
}

func init() {
	starCmd.Flags().StringVar(&starName, "name", "", "company name stored with the starred entry")
	followCmd.Flags().StringVar(&followName, "name", "", "company name stored with the followed entry")
	rootCmd.AddCommand(starCmd, unstarCmd, followCmd, unfollowCmd)
}
