package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	model "post-board-service/internal/domain/models"
)

var (
	tokenName  string
	tokenEmail string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a session token signed with the configured secret",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "display name stored in the session")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email stored in the session")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	codec, err := newCodec(cfg.Auth)
	if err != nil {
		return err
	}

	token, err := codec.Issue(&model.SessionUser{Name: tokenName, Email: tokenEmail}, tokenTTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
