package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// runMenu is the interactive entry point: a numeric menu loop that keeps
// running until the user exits. Action errors are printed and the menu
// continues; only an ended input stream leaves the loop.
func runMenu(cmd *cobra.Command, ctx *commandContext) error {
	out := cmd.OutOrStdout()
	p := newPrompter(cmd.InOrStdin(), out)

	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, heading(out, "moviematch"))
		fmt.Fprintln(out, "1) Get recommendations")
		fmt.Fprintln(out, "2) Preference profile")
		fmt.Fprintln(out, "3) Watched list")
		fmt.Fprintln(out, "4) Watch-later list")
		fmt.Fprintln(out, "5) Exit")

		choice, err := p.intInRange("Select: ", 1, 5)
		if err != nil {
			return menuExit(err)
		}

		var actionErr error
		switch choice {
		case 1:
			actionErr = runRecommend(cmd.Context(), out, ctx, 0)
		case 2:
			actionErr = preferencesMenu(cmd, ctx, p)
		case 3:
			actionErr = watchedMenu(cmd, ctx, p)
		case 4:
			actionErr = watchLaterMenu(cmd, ctx, p)
		case 5:
			fmt.Fprintln(out, "Bye.")
			return nil
		}
		if actionErr != nil {
			if exitErr := menuExit(actionErr); exitErr == nil {
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n", actionErr)
		}
	}
}

// menuExit converts an ended input stream into a clean exit.
func menuExit(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func preferencesMenu(cmd *cobra.Command, ctx *commandContext, p *prompter) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "1) Show profile")
	fmt.Fprintln(out, "2) Renew profile")
	fmt.Fprintln(out, "3) Back")

	choice, err := p.intInRange("Select: ", 1, 3)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return showPreferences(out, ctx)
	case 2:
		return runRenewSession(cmd.Context(), p, out, ctx)
	}
	return nil
}

func watchedMenu(cmd *cobra.Command, ctx *commandContext, p *prompter) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "1) Show watched movies")
	fmt.Fprintln(out, "2) Add a watched movie")
	fmt.Fprintln(out, "3) Back")

	choice, err := p.intInRange("Select: ", 1, 3)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return listWatched(out, ctx)
	case 2:
		return addWatchedInteractive(cmd.Context(), p, out, ctx)
	}
	return nil
}

func watchLaterMenu(cmd *cobra.Command, ctx *commandContext, p *prompter) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "1) Show watch-later list")
	fmt.Fprintln(out, "2) Add a title")
	fmt.Fprintln(out, "3) Remove a title")
	fmt.Fprintln(out, "4) Mark a title watched")
	fmt.Fprintln(out, "5) Back")

	choice, err := p.intInRange("Select: ", 1, 5)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return listWatchLater(out, ctx)
	case 2:
		title, err := p.nonEmptyLine("Title to watch later: ")
		if err != nil {
			return err
		}
		return addWatchLater(out, ctx, title)
	case 3:
		return removeWatchLaterInteractive(p, out, ctx)
	case 4:
		return promoteWatchLaterInteractive(cmd.Context(), p, out, ctx)
	}
	return nil
}
