package commands

import (
	"fmt"
	"time"

	"github.com/campaignkit/marketing-api/internal/auth"
	"github.com/campaignkit/marketing-api/internal/config"
	"github.com/spf13/cobra"
)

// NewHashPasswordCmd creates the hash-password command. The printed hash is
// meant for the AUTH_PASSWORD_HASH environment variable.
func NewHashPasswordCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Generate a bcrypt hash for AUTH_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Println(hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password to hash")
	return cmd
}

// NewIssueTokenCmd creates the issue-token command for minting access tokens
// out of band, using the same secret and TTL as the running server.
func NewIssueTokenCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Issue an access token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if username == "" {
				username = cfg.AuthUsername
			}
			tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
			token, err := tokens.Issue(username)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Subject for the token (defaults to AUTH_USERNAME)")
	return cmd
}
