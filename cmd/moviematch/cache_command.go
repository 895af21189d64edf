package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the fetched-review cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show how many titles have cached reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureCache()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cache.Enabled() {
				fmt.Fprintln(out, "The review cache is disabled in the configuration.")
				return nil
			}
			count, err := cache.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Cached reviews for %d title(s).\n", count)
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached review",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureCache()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cache.Enabled() {
				fmt.Fprintln(out, "The review cache is disabled in the configuration.")
				return nil
			}
			if err := cache.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, "Review cache cleared.")
			return nil
		},
	})

	return cacheCmd
}
