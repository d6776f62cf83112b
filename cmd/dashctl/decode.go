package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/intern-dashboard/internal/auth"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [credential]",
	Short: "Decode a credential's claims",
	Long:  "Decodes the payload segment of a credential without verifying its signature. Reads stdin when no argument or \"-\" is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDecode,
}

type decodedClaims struct {
	SubjectID string     `json:"subjectId,omitempty"`
	TenantID  string     `json:"tenantId,omitempty"`
	Role      string     `json:"role"`
	Name      string     `json:"name,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Expired   bool       `json:"expired"`
	Home      string     `json:"home"`
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	token := ""
	if len(args) == 1 && args[0] != "-" {
		token = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read credential from stdin: %w", err)
		}
		token = line
	}
	token = strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")

	claims, err := auth.NewDecoder(nil, nil).Parse(token)
	if err != nil {
		return err
	}

	nav := navigation.New(navigation.DefaultEntries())
	out := decodedClaims{
		SubjectID: claims.SubjectID,
		TenantID:  claims.TenantID,
		Role:      string(claims.Role),
		Name:      claims.DisplayName,
		ExpiresAt: claims.ExpiresAt,
		Expired:   claims.Expired(time.Now()),
		Home:      nav.HomeFor(claims.Role),
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
