package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"moviematch/internal/catalog"
	"moviematch/internal/logging"
	"moviematch/internal/recommend"
	"moviematch/internal/services/emotion"
	"moviematch/internal/textutil"
	"moviematch/internal/userdata"
)

// runRenewSession gathers watched movies interactively, appends each to
// the watched list with a classified sentiment, then replaces the
// preference profile with one derived from the whole session.
func runRenewSession(cctx context.Context, p *prompter, out io.Writer, ctx *commandContext) error {
	store, err := ctx.ensureStore()
	if err != nil {
		return err
	}
	analyzer, err := ctx.analyzer()
	if err != nil {
		return err
	}
	deriver, err := ctx.deriver()
	if err != nil {
		return err
	}
	entries, _, err := ctx.loadCatalog()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, heading(out, "Preference renewal"))
	fmt.Fprintln(out, "Tell me about movies you watched recently. Previous preferences will be replaced.")

	var session []recommend.SessionEntry
	for {
		entry, err := collectSessionEntry(cctx, p, out, ctx, entries, analyzer, store)
		if err != nil {
			return err
		}
		session = append(session, entry)

		again, err := p.yesNo("Add another movie?")
		if err != nil {
			return err
		}
		if !again {
			break
		}
	}

	prefs := deriver.Derive(cctx, session)
	if err := store.SavePreferences(prefs); err != nil {
		return err
	}

	fmt.Fprintf(out, "Profile renewed from %d movie(s).\n", len(session))
	return showPreferences(out, ctx)
}

func collectSessionEntry(cctx context.Context, p *prompter, out io.Writer, ctx *commandContext, entries []catalog.Entry, analyzer *emotion.Client, store *userdata.Store) (recommend.SessionEntry, error) {
	var zero recommend.SessionEntry

	title, err := p.nonEmptyLine("Movie title: ")
	if err != nil {
		return zero, err
	}

	entry := recommend.SessionEntry{Title: title}
	matches := catalog.FindByTitle(entries, title)
	switch len(matches) {
	case 0:
		fmt.Fprintln(out, "Not found in the catalog; enter the details by hand.")
		year, err := p.line("Release year: ")
		if err != nil {
			return zero, err
		}
		genresAnswer, err := p.line("Genres (comma-separated): ")
		if err != nil {
			return zero, err
		}
		entry.Year = year
		entry.Genres = textutil.SplitList(genresAnswer)
	case 1:
		entry = sessionEntryFromCatalog(matches[0])
	default:
		chosen, err := chooseCatalogEntry(p, out, matches)
		if err != nil {
			return zero, err
		}
		entry = sessionEntryFromCatalog(chosen)
	}

	review, err := p.nonEmptyLine("Your review: ")
	if err != nil {
		return zero, err
	}
	entry.Review = review

	sentiment := classifySentiment(cctx, ctx, analyzer, review)
	if _, err := store.AppendWatched(entry.Title, entry.CatalogID, review, sentiment); err != nil {
		return zero, err
	}
	fmt.Fprintf(out, "Recorded %q as %s.\n", entry.Title, sentiment)
	return entry, nil
}

func sessionEntryFromCatalog(entry catalog.Entry) recommend.SessionEntry {
	year := ""
	if entry.Year > 0 {
		year = strconv.Itoa(entry.Year)
	}
	return recommend.SessionEntry{
		CatalogID: entry.ID,
		Title:     entry.Title,
		Year:      year,
		Genres:    entry.Genres,
	}
}

func chooseCatalogEntry(p *prompter, out io.Writer, matches []catalog.Entry) (catalog.Entry, error) {
	rows := make([][]string, 0, len(matches))
	for i, match := range matches {
		year := ""
		if match.Year > 0 {
			year = strconv.Itoa(match.Year)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			match.Title,
			year,
			strings.Join(match.Genres, ", "),
		})
	}
	fmt.Fprintln(out, "Several catalog entries share that title:")
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Year", "Genres"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
	))
	index, err := p.intInRange("Which one? ", 1, len(matches))
	if err != nil {
		return catalog.Entry{}, err
	}
	return matches[index-1], nil
}

// classifySentiment maps review polarity to like/dislike. A failed
// service call degrades to dislike rather than aborting the session.
func classifySentiment(cctx context.Context, ctx *commandContext, analyzer *emotion.Client, review string) userdata.Sentiment {
	polarity, err := analyzer.Polarity(cctx, review)
	if err != nil {
		ctx.ensureLogger().Warn("sentiment classification failed", logging.Error(err))
		return userdata.SentimentDislike
	}
	if polarity >= emotion.LikeThreshold {
		return userdata.SentimentLike
	}
	return userdata.SentimentDislike
}
