package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/opportunity-matcher/internal/config"
	"github.com/jonathan/opportunity-matcher/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local testing",
	Long:  "Signs a token with JWT_SECRET for the given user. Tokens are normally issued by the auth provider.",
	RunE:  runToken,
}

var tokenUserID string

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user-id", "u", "", "User ID to put in the token (required)")

	if err := tokenCmd.MarkFlagRequired("user-id"); err != nil {
		panic(fmt.Sprintf("failed to mark user-id flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(tokenUserID)
	if err != nil {
		return fmt.Errorf("invalid --user-id: %w", err)
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}

	jwtConfig, err := config.NewJWTConfig(v)
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	token, err := server.NewTokenAuthority(jwtConfig).Issue(userID)
	if err != nil {
		return err
	}

	if rt.cfg.JSON {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"token": token})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
