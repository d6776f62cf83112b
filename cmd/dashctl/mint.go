package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/intern-dashboard/internal/auth"
	"github.com/spec-kit/intern-dashboard/internal/domain"
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a development credential",
	Long:  "Signs an HS256 credential for a local API. The dashboard itself never verifies signatures.",
	RunE:  runMint,
}

var (
	mintRole    string
	mintSubject string
	mintTenant  string
	mintName    string
	mintTTL     time.Duration
	mintSecret  string
)

func init() {
	mintCmd.Flags().StringVarP(&mintRole, "role", "r", "", "Role: ADMIN, SUPERVISOR or INTERN (required)")
	mintCmd.Flags().StringVar(&mintSubject, "sub", "", "Subject (user) id")
	mintCmd.Flags().StringVar(&mintTenant, "tenant", "", "Tenant (company) id")
	mintCmd.Flags().StringVar(&mintName, "name", "", "Display name")
	mintCmd.Flags().DurationVar(&mintTTL, "ttl", time.Hour, "Lifetime; 0 mints a credential without expiry")
	mintCmd.Flags().StringVar(&mintSecret, "secret", "", "HS256 secret (default \"dev-secret\")")
	if err := mintCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}
	rootCmd.AddCommand(mintCmd)
}

func runMint(cmd *cobra.Command, _ []string) error {
	role, ok := domain.ParseRole(mintRole)
	if !ok {
		return fmt.Errorf("unknown role %q", mintRole)
	}
	token, err := auth.MintDevCredential(auth.DevCredential{
		SubjectID:   mintSubject,
		TenantID:    mintTenant,
		Role:        role,
		DisplayName: mintName,
		TTL:         mintTTL,
	}, mintSecret)
	if err != nil {
		return fmt.Errorf("failed to mint credential: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
