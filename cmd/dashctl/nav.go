package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
)

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Print the navigation a role sees",
	RunE:  runNav,
}

var navRole string

func init() {
	navCmd.Flags().StringVarP(&navRole, "role", "r", "", "Role: ADMIN, SUPERVISOR or INTERN (required)")
	if err := navCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}
	rootCmd.AddCommand(navCmd)
}

func runNav(cmd *cobra.Command, _ []string) error {
	role, ok := domain.ParseRole(navRole)
	if !ok {
		return fmt.Errorf("unknown role %q", navRole)
	}
	nav := navigation.New(navigation.DefaultEntries())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tLABEL\tPATH\tHOME")
	for _, e := range nav.ForRole(role) {
		home := ""
		if e.Home {
			home = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Key, e.Label, e.Path, home)
	}
	return w.Flush()
}
