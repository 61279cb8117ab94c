package cli

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/discovery/pkg/discovery"
)

var objectCmd = &cobra.Command{
	Use:   "object [pid]",
	Short: "Show a record by PID",
	Args:  cobra.ExactArgs(1),
	RunE:  runObject,
}

var ancestryCmd = &cobra.Command{
	Use:   "ancestry [pid]",
	Short: "Show the collection trail from the root down to a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runAncestry,
}

var manifestCmd = &cobra.Command{
	Use:   "manifest [pid]",
	Short: "Print the viewer manifest of an object",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifest,
}

func init() {
	rootCmd.AddCommand(objectCmd)
	rootCmd.AddCommand(ancestryCmd)
	rootCmd.AddCommand(manifestCmd)
}

func runObject(cmd *cobra.Command, args []string) error {
	return withClient(cmd, func(ctx context.Context, c discoveryClient) error {
		obj, err := c.Object(ctx, args[0])
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, obj)
		}
		printObject(cmd, &obj)
		return nil
	})
}

func printObject(cmd *cobra.Command, obj *discovery.Object) {
	w := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	_, _ = bold.Fprintf(w, "%s\n", obj.Title)
	cmd.Printf("  PID:        %s\n", obj.PID)
	cmd.Printf("  Type:       %s\n", obj.ObjectType)
	if obj.MimeType != "" {
		cmd.Printf("  MIME:       %s\n", obj.MimeType)
	}
	if len(obj.Creator) > 0 {
		cmd.Printf("  Creator:    %s\n", strings.Join(obj.Creator, "; "))
	}
	if len(obj.MemberOf) > 0 {
		cmd.Printf("  Member of:  %s\n", strings.Join(obj.MemberOf, ", "))
	}
	if obj.Abstract != "" {
		cmd.Printf("  Abstract:   %s\n", obj.Abstract)
	}
	for i, p := range obj.Parts {
		cmd.Printf("  Part %d:     %s (%s)\n", i+1, p.Title, p.MimeType)
	}
	if obj.Matches > 1 {
		_, _ = color.New(color.FgYellow).Fprintf(w, "  warning: %d records share this PID\n", obj.Matches)
	}
}

func runAncestry(cmd *cobra.Command, args []string) error {
	return withClient(cmd, func(ctx context.Context, c discoveryClient) error {
		crumbs, err := c.Ancestry(ctx, args[0])
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, crumbs)
		}
		cyan := color.New(color.FgCyan)
		for i, cr := range crumbs {
			cmd.Print(strings.Repeat("  ", i))
			_, _ = cyan.Fprint(cmd.OutOrStdout(), cr.Name)
			cmd.Printf("  %s\n", cr.PID)
		}
		return nil
	})
}

func runManifest(cmd *cobra.Command, args []string) error {
	return withClient(cmd, func(ctx context.Context, c discoveryClient) error {
		m, err := c.Manifest(ctx, args[0])
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, m)
		}
		_, _ = color.New(color.Bold).Fprintf(cmd.OutOrStdout(), "%s\n", m.Title)
		for _, md := range m.Metadata {
			cmd.Printf("  %s: %s\n", md.Label, md.Value)
		}
		for _, ch := range m.Children {
			cmd.Printf("  [%s] %s  %s\n", ch.Sequence, ch.Label, ch.Type)
			cmd.Printf("      %s\n", ch.ResourceURL)
		}
		return nil
	})
}
