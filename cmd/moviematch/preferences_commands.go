package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newPreferencesCommand(ctx *commandContext) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "preferences",
		Short: "Show or renew the preference profile",
	}

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored preference profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPreferences(cmd.OutOrStdout(), ctx)
		},
	})

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "renew",
		Short: "Rebuild the profile from a fresh session of watched movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return runRenewSession(cmd.Context(), p, cmd.OutOrStdout(), ctx)
		},
	})

	return prefsCmd
}

func showPreferences(out io.Writer, ctx *commandContext) error {
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

	fmt.Fprintln(out, heading(out, "Preference profile"))
	fmt.Fprintln(out, renderTable(
		[]string{"Field", "Value"},
		[][]string{
			{"Genres", strings.Join(prefs.Genres, ", ")},
			{"Emotions", strings.Join(prefs.Emotions, ", ")},
			{"Year band", string(prefs.YearBand)},
		},
		[]columnAlignment{alignLeft, alignLeft},
	))
	return nil
}
