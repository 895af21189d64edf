package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func newWatchedCommand(ctx *commandContext) *cobra.Command {
	watchedCmd := &cobra.Command{
		Use:   "watched",
		Short: "Manage the watched list",
	}

	watchedCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show every watched movie",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listWatched(cmd.OutOrStdout(), ctx)
		},
	})

	watchedCmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Record a watched movie with a review",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return addWatchedInteractive(cmd.Context(), p, cmd.OutOrStdout(), ctx)
		},
	})

	return watchedCmd
}

func listWatched(out io.Writer, ctx *commandContext) error {
	store, err := ctx.ensureStore()
	if err != nil {
		return err
	}
	entries, err := store.LoadWatched()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "The watched list is empty.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.Itoa(entry.Number),
			entry.Title,
			string(entry.Sentiment),
			entry.Review,
		})
	}
	fmt.Fprintln(out, heading(out, "Watched"))
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Sentiment", "Review"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
	return nil
}

func addWatchedInteractive(cctx context.Context, p *prompter, out io.Writer, ctx *commandContext) error {
	store, err := ctx.ensureStore()
	if err != nil {
		return err
	}
	analyzer, err := ctx.analyzer()
	if err != nil {
		return err
	}
	entries, _, err := ctx.loadCatalog()
	if err != nil {
		return err
	}
	if _, err := collectSessionEntry(cctx, p, out, ctx, entries, analyzer, store); err != nil {
		return err
	}
	return nil
}
