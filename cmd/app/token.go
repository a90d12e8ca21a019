package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/tasklists/internal/auth"
	"github.com/BuzzLyutic/tasklists/internal/config"
)

// newTokenCmd mints a session token for an existing user id. Sign-in itself
// belongs to the identity provider in front of the application.
func newTokenCmd() *cobra.Command {
	var (
		userID int64
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a session token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return errors.New("--user must be a positive id")
			}
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			token, err := auth.NewIssuer(cfg.Secret()).Mint(userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id to sign the token for")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
