package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moviematch/internal/catalog"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <title>",
		Short: "Look a title up in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return errors.New("a title to search for is required")
			}
			return runSearch(cmd.OutOrStdout(), ctx, title)
		},
	}
}

func runSearch(out io.Writer, ctx *commandContext, title string) error {
	entries, ratings, err := ctx.loadCatalog()
	if err != nil {
		return err
	}
	matches := catalog.FindByTitle(entries, title)
	if len(matches) == 0 {
		fmt.Fprintf(out, "No catalog entry matches %q.\n", title)
		return nil
	}

	rows := make([][]string, 0, len(matches))
	for _, match := range matches {
		year := ""
		if match.Year > 0 {
			year = strconv.Itoa(match.Year)
		}
		rating := "-"
		votes := "-"
		if r, ok := ratings[match.ID]; ok {
			rating = fmt.Sprintf("%.1f", r.Average)
			votes = strconv.Itoa(r.Votes)
		}
		rows = append(rows, []string{
			match.ID,
			match.Title,
			year,
			strings.Join(match.Genres, ", "),
			rating,
			votes,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Title", "Year", "Genres", "Rating", "Votes"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight},
	))
	return nil
}
