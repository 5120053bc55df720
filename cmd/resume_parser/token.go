package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/server"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the API",
	Long:  `Issue a signed bearer token for POST /v1/parse. Requires AUTH_SECRET to be set; the server validates tokens with the same secret.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "api-client", "Subject claim for the token")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if !cfg.AuthEnabled() {
		return fmt.Errorf("AUTH_SECRET environment variable is required")
	}

	svc := server.NewJWTService(cfg.AuthSecret, cfg.AuthTokenTTL)
	token, err := svc.GenerateToken(tokenSubject)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
