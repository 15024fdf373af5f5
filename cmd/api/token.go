package main

import (
	"errors"
	"fmt"
	"time"

	"medication-tracker/internal/adapters/auth/jwtlocal"
	"medication-tracker/internal/config"

	"github.com/spf13/cobra"
)

// tokenCmd emite un token HS256 para probar AUTH_MODE=jwt en local.
func tokenCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a signed token for local testing (AUTH_MODE=jwt)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.AuthMode != config.AuthModeJWT {
				return errors.New("AUTH_MODE must be jwt")
			}

			v, err := jwtlocal.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
			if err != nil {
				return err
			}
			tok, err := v.Issue(args[0], email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
