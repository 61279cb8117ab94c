package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/discovery/pkg/discovery"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the search index and the repository",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	return withClient(cmd, func(ctx context.Context, c discoveryClient) error {
		h := c.Health(ctx)
		if outputJSON {
			if err := printJSON(cmd, h); err != nil {
				return err
			}
		} else {
			printHealth(cmd, h)
		}
		if h.Status == discovery.StatusError {
			return errors.New("search index unreachable")
		}
		return nil
	})
}

func printHealth(cmd *cobra.Command, h discovery.HealthStatus) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	w := cmd.OutOrStdout()

	cmd.Printf("status: %s\n", h.Status)
	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Printf("  %-12s ", name)
		if h.Checks[name] == "ok" {
			_, _ = ok.Fprintln(w, h.Checks[name])
		} else {
			_, _ = bad.Fprintln(w, h.Checks[name])
		}
	}
}
