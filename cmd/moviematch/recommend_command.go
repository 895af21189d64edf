package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moviematch/internal/recommend"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Match catalog titles against your preference profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd.Context(), cmd.OutOrStdout(), ctx, maxResults)
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max", "n", 0, "Stop after this many accepted titles (default from config)")
	return cmd
}

func runRecommend(cctx context.Context, out io.Writer, ctx *commandContext, maxResults int) error {
	store, err := ctx.ensureStore()
	if err != nil {
		return err
	}
	prefs, err := store.LoadPreferences()
	if err != nil {
		return err
	}
	if prefs.IsEmpty() {
		fmt.Fprintln(out, "Preferences not set. Renew your preference profile first.")
		return nil
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if maxResults <= 0 {
		maxResults = cfg.Matching.MaxResults
	}

	entries, ratings, err := ctx.loadCatalog()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "The catalog is empty; check the configured dataset paths.")
		return nil
	}

	fmt.Fprintf(out, "Matching %d catalog titles...\n", len(entries))
	engine, err := ctx.engine(func(r recommend.Result) {
		fmt.Fprintf(out, "Accepted %q, added to your watch-later list.\n", r.Entry.Title)
	})
	if err != nil {
		return err
	}

	results, err := engine.Recommend(cctx, prefs, entries, ratings, store, maxResults)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No matches this time. Try renewing your preference profile.")
		return nil
	}

	rows := make([][]string, 0, len(results))
	for i, result := range results {
		year := ""
		if result.Entry.Year > 0 {
			year = strconv.Itoa(result.Entry.Year)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			result.Entry.Title,
			year,
			fmt.Sprintf("%.1f", result.Rating.Average),
			strconv.Itoa(result.Rating.Votes),
			strings.Join(result.Emotions, ", "),
		})
	}
	fmt.Fprintln(out, heading(out, "Recommendations"))
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Year", "Rating", "Votes", "Review emotions"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
	return nil
}
