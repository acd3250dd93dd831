package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCmd(open opener) *cobra.Command {
	var (
		userID  string
		email   string
		isAdmin bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator access token signed with JWT_SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			token, _, err := a.JWTService.GenerateAccessToken(userID, email, isAdmin)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "operator", "user_id claim")
	cmd.Flags().StringVar(&email, "email", "", "email claim, used as the audit actor")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "grant admin privileges")
	return cmd
}
