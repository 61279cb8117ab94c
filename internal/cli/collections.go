package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/discovery/pkg/discovery"
)

var (
	childrenPage    int
	childrenFilters []string
	childrenSort    string
	childrenDesc    bool
)

var childrenCmd = &cobra.Command{
	Use:   "children [collection-pid]",
	Short: "List the members of a collection",
	Long: `Lists one page of the direct members of a collection with facet counts.
Filters take the form Label=Value and may be repeated.`,
	Args: cobra.ExactArgs(1),
	RunE: runChildren,
}

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List the top-level collections",
	Args:  cobra.NoArgs,
	RunE:  runRoots,
}

var facetsCmd = &cobra.Command{
	Use:   "facets [collection-pid]",
	Short: "Show facet counts for a collection or the whole index",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFacets,
}

func init() {
	childrenCmd.Flags().IntVarP(&childrenPage, "page", "p", 1, "page number (1-based)")
	childrenCmd.Flags().StringArrayVarP(&childrenFilters, "filter", "f", nil, "facet filter Label=Value")
	childrenCmd.Flags().StringVar(&childrenSort, "sort", "", `sort field ("title")`)
	childrenCmd.Flags().BoolVar(&childrenDesc, "desc", false, "sort descending")
	rootCmd.AddCommand(childrenCmd)
	rootCmd.AddCommand(rootsCmd)
	rootCmd.AddCommand(facetsCmd)
}

func listOptions() (discovery.ListOptions, error) {
	opts := discovery.ListOptions{Page: childrenPage, Desc: childrenDesc}
	switch childrenSort {
	case "":
	case "title":
		opts.SortByTitle = true
	default:
		return opts, fmt.Errorf("unknown sort field %q", childrenSort)
	}
	for _, raw := range childrenFilters {
		label, value, ok := strings.Cut(raw, "=")
		if !ok || label == "" || value == "" {
			return opts, fmt.Errorf("filter %q: want Label=Value", raw)
		}
		opts.Filters = append(opts.Filters, discovery.Filter{Facet: label, Value: value})
	}
	return opts, nil
}

func runChildren(cmd *cobra.Command, args []string) error {
	opts, err := listOptions()
	if err != nil {
		return err
	}
	return withClient(cmd, func(ctx context.Context, c discoveryClient) error {
		l, err := c.Children(ctx, args[0], opts)
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, l)
		}
		printListing(cmd, &l)
		printFacets(cmd, l.Facets)
		return nil
	})
}

func runRoots(cmd *cobra.Command, _ []string) error {
	return withClient(cmd, func(ctx context.Context, c discoveryClient) error {
		l, err := c.RootCollections(ctx)
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, l)
		}
		printListing(cmd, &l)
		return nil
	})
}

func runFacets(cmd *cobra.Command, args []string) error {
	var pid string
	if len(args) == 1 {
		pid = args[0]
	}
	return withClient(cmd, func(ctx context.Context, c discoveryClient) error {
		groups, err := c.Facets(ctx, pid)
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, groups)
		}
		printFacets(cmd, groups)
		return nil
	})
}

func printListing(cmd *cobra.Command, l *discovery.Listing) {
	w := cmd.OutOrStdout()
	_, _ = color.New(color.Bold).Fprintf(w, "%s", l.Title)
	cmd.Printf("  (%d total, page %d)\n", l.Total, l.Page)
	if len(l.Items) == 0 {
		cmd.Println("No members found.")
		return
	}

	collection := color.New(color.FgCyan)
	for i := range l.Items {
		it := &l.Items[i]
		title := it.Title
		if title == "" {
			title = it.PID
		}
		cmd.Print("  ")
		if it.IsCollection() {
			_, _ = collection.Fprint(w, title)
		} else {
			cmd.Print(title)
		}
		cmd.Printf("  %s\n", it.PID)
	}
}

func printFacets(cmd *cobra.Command, groups []discovery.FacetGroup) {
	label := color.New(color.FgGreen)
	for _, g := range groups {
		if len(g.Values) == 0 {
			continue
		}
		cmd.Println()
		_, _ = label.Fprintln(cmd.OutOrStdout(), g.Label)
		for _, v := range g.Values {
			name := v.Name
			if name == "" {
				name = v.Value
			}
			cmd.Printf("  %-40s %d\n", name, v.Count)
		}
	}
}
