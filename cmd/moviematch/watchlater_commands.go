package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moviematch/internal/userdata"
)

func newWatchLaterCommand(ctx *commandContext) *cobra.Command {
	watchLaterCmd := &cobra.Command{
		Use:   "watchlater",
		Short: "Manage the watch-later list",
	}

	watchLaterCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the watch-later list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listWatchLater(cmd.OutOrStdout(), ctx)
		},
	})

	watchLaterCmd.AddCommand(&cobra.Command{
		Use:   "add [title]",
		Short: "Add a title to the watch-later list",
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				answer, err := p.nonEmptyLine("Title to watch later: ")
				if err != nil {
					return err
				}
				title = answer
			}
			return addWatchLater(cmd.OutOrStdout(), ctx, title)
		},
	})

	watchLaterCmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove an entry from the watch-later list",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return removeWatchLaterInteractive(p, cmd.OutOrStdout(), ctx)
		},
	})

	watchLaterCmd.AddCommand(&cobra.Command{
		Use:   "watchednow",
		Short: "Move a watch-later entry to the watched list",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return promoteWatchLaterInteractive(cmd.Context(), p, cmd.OutOrStdout(), ctx)
		},
	})

	return watchLaterCmd
}

func listWatchLater(out io.Writer, ctx *commandContext) error {
	store, err := ctx.ensureStore()
	if err != nil {
		return err
	}
	entries, err := store.LoadWatchLater()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "The watch-later list is empty.")
		return nil
	}
	printWatchLater(out, entries)
	return nil
}

func printWatchLater(out io.Writer, entries []userdata.WatchLaterEntry) {
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), entry.Title})
	}
	fmt.Fprintln(out, heading(out, "Watch later"))
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title"},
		rows,
		[]columnAlignment{alignRight, alignLeft},
	))
}

func addWatchLater(out io.Writer, ctx *commandContext, title string) error {
	store, err := ctx.ensureStore()
	if err != nil {
		return err
	}
	if err := store.AppendWatchLater(title, ""); err != nil {
		return err
	}
	fmt.Fprintf(out, "Added %q to the watch-later list.\n", title)
	return nil
}

// pickWatchLaterIndex shows the list and asks for a 1-based entry number,
// returning the 0-based index. ok is false when the list is empty.
func pickWatchLaterIndex(p *prompter, out io.Writer, store *userdata.Store, prompt string) (int, bool, error) {
	entries, err := store.LoadWatchLater()
	if err != nil {
		return 0, false, err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "The watch-later list is empty.")
		return 0, false, nil
	}
	printWatchLater(out, entries)
	number, err := p.intInRange(prompt, 1, len(entries))
	if err != nil {
		return 0, false, err
	}
	return number - 1, true, nil
}

func removeWatchLaterInteractive(p *prompter, out io.Writer, ctx *commandContext) error {
	store, err := ctx.ensureStore()
	if err != nil {
		return err
	}
	index, ok, err := pickWatchLaterIndex(p, out, store, "Entry to remove: ")
	if err != nil || !ok {
		return err
	}
	removed, err := store.RemoveWatchLaterAt(index)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %q.\n", removed.Title)
	return nil
}

// promoteWatchLaterInteractive records a watch-later entry as watched,
// asking for a review and classifying its sentiment, then removes it
// from the watch-later list.
func promoteWatchLaterInteractive(cctx context.Context, p *prompter, out io.Writer, ctx *commandContext) error {
	store, err := ctx.ensureStore()
	if err != nil {
		return err
	}
	analyzer, err := ctx.analyzer()
	if err != nil {
		return err
	}

	index, ok, err := pickWatchLaterIndex(p, out, store, "Entry you watched: ")
	if err != nil || !ok {
		return err
	}
	entries, err := store.LoadWatchLater()
	if err != nil {
		return err
	}
	entry := entries[index]

	review, err := p.nonEmptyLine("Your review: ")
	if err != nil {
		return err
	}
	sentiment := classifySentiment(cctx, ctx, analyzer, review)

	if _, err := store.AppendWatched(entry.Title, entry.CatalogID, review, sentiment); err != nil {
		return err
	}
	if _, err := store.RemoveWatchLaterAt(index); err != nil {
		return err
	}
	fmt.Fprintf(out, "Moved %q to the watched list as %s.\n", entry.Title, sentiment)
	return nil
}
