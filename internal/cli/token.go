package cli

import (
	"fmt"
	"time"

	"AwarenessSimulator_SecurityProject/internal/auth"
	"AwarenessSimulator_SecurityProject/internal/config"

	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenID   int
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development token",
	Long:  `Signs a participant token with JWT_SECRET_KEY for local testing of the WebSocket endpoint.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "participant username")
	tokenCmd.Flags().IntVar(&tokenID, "id", 0, "participant user id")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenUser == "" && tokenID == 0 {
		return fmt.Errorf("--user or --id is required")
	}
	cfg := config.Load()
	auth.SetSigningKey(cfg.JWTSecret)

	token, err := auth.GenerateToken(tokenUser, tokenID, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
