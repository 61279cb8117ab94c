package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	fetchPart   int
	fetchOutput string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [pid] [datastream]",
	Short: "Download a datastream",
	Long: `Downloads a datastream of an object. The datastream is "tn" for the
thumbnail, a type name such as "jpg" or "mp3", or "object" for the primary file.
Bytes go to stdout unless --output is set.`,
	Args: cobra.ExactArgs(2),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchPart, "part", 0, "compound part number (1-based)")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	return withClient(cmd, func(ctx context.Context, c discoveryClient) (err error) {
		ds, err := c.OpenDatastream(ctx, args[0], args[1], fetchPart)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := ds.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close datastream: %w", cerr)
			}
		}()

		w := cmd.OutOrStdout()
		if fetchOutput != "" {
			f, err := os.Create(fetchOutput)
			if err != nil {
				return fmt.Errorf("create %s: %w", fetchOutput, err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		n, err := io.Copy(w, ds)
		if err != nil {
			return fmt.Errorf("copy datastream: %w", err)
		}
		if fetchOutput != "" {
			cmd.PrintErrf("wrote %d bytes (%s, %s) to %s\n", n, ds.ContentType, ds.Source, fetchOutput)
		}
		return nil
	})
}
